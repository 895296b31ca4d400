package models

import "time"

// Статусы платежа. Платеж создается в статусе pending и переходит
// в paid или failed только при сверке со Stripe.
const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

// Payment представляет платеж пользователя за подписку.
//
// Записи платежей являются историей и не удаляются; актуальное состояние
// подписки хранится как флаг IsSubscribed на пользователе.
type Payment struct {
	ID              int       `json:"id"`
	UserUID         string    `json:"user_uid"`
	Amount          float64   `json:"amount"` // Сумма платежа, два знака после запятой
	StripeSessionID string    `json:"stripe_session_id"`
	Status          string    `json:"status"` // pending, paid или failed
	CreatedAt       time.Time `json:"created_at"`
}
