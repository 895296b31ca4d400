// Package payment содержит бизнес-логику оплаты подписки: открытие сессии
// Stripe Checkout и сверку её статуса с локальной записью платежа.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/blog-publisher/internal/config"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
	"github.com/magabrotheeeer/blog-publisher/internal/paymentprovider"
	"github.com/magabrotheeeer/blog-publisher/internal/storage/repository"
)

// PaymentRepository описывает контракт хранилища для платежей и флага подписки.
type PaymentRepository interface {
	// CreatePayment сохраняет новый платеж и возвращает его ID.
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	// GetLastPaymentByUser возвращает последний платеж пользователя
	// или repository.ErrPaymentNotFound.
	GetLastPaymentByUser(ctx context.Context, userUID string) (*models.Payment, error)
	// UpdatePaymentStatus обновляет статус платежа.
	UpdatePaymentStatus(ctx context.Context, id int, status string) error
	// ListPayments возвращает историю платежей пользователя.
	ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error)
	// SetUserSubscribed выставляет флаг подписки пользователя.
	SetUserSubscribed(ctx context.Context, userUID string, subscribed bool) error
}

// GatewayClient описывает операции платежного шлюза.
type GatewayClient interface {
	CreatePrice(ctx context.Context, amount int64, currency, productName string) (*paymentprovider.Price, error)
	CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) (*paymentprovider.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error)
}

// Service реализует оплату подписки и сверку платежей.
type Service struct {
	repo    PaymentRepository
	gateway GatewayClient
	cfg     config.Stripe
	log     *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo PaymentRepository, gateway GatewayClient, cfg config.Stripe, log *slog.Logger) *Service {
	return &Service{
		repo:    repo,
		gateway: gateway,
		cfg:     cfg,
		log:     log,
	}
}

// Subscribe открывает сессию Stripe Checkout на фиксированную сумму подписки
// и сохраняет платеж в статусе pending. Возвращает URL страницы оплаты,
// куда нужно перенаправить пользователя.
//
// Ошибки шлюза возвращаются вызывающему без изменений.
func (s *Service) Subscribe(ctx context.Context, userUID string) (string, error) {
	const op = "payment.Subscribe"

	price, err := s.gateway.CreatePrice(ctx, s.cfg.SubscriptionAmount, s.cfg.Currency, s.cfg.ProductName)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	session, err := s.gateway.CreateCheckoutSession(ctx, price.ID, s.cfg.SuccessURL, s.cfg.CancelURL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	entry := models.Payment{
		UserUID:         userUID,
		Amount:          float64(s.cfg.SubscriptionAmount) / 100,
		StripeSessionID: session.ID,
		Status:          models.PaymentStatusPending,
	}
	id, err := s.repo.CreatePayment(ctx, entry)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("checkout session opened",
		slog.Int("payment_id", id),
		slog.String("session_id", session.ID))
	return session.URL, nil
}

// Reconcile сверяет последний платеж пользователя со Stripe.
//
// Если платежей нет, возвращает false без обращения к шлюзу. Иначе статус
// сессии отображается в локальный: paid -> paid, failed -> failed, всё
// остальное -> pending. При статусе paid флаг подписки пользователя
// выставляется заново, поэтому повторная сверка уже оплаченной сессии
// безопасна. Возвращает true, только если итоговый статус paid.
//
// Обновление платежа и флага подписки — две независимые записи без общей
// транзакции; сбой между ними оставит оплаченный платеж при невыставленном
// флаге до следующей сверки.
func (s *Service) Reconcile(ctx context.Context, userUID string) (bool, error) {
	const op = "payment.Reconcile"

	entry, err := s.repo.GetLastPaymentByUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}

	session, err := s.gateway.GetCheckoutSession(ctx, entry.StripeSessionID)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var status string
	switch session.PaymentStatus {
	case "paid":
		status = models.PaymentStatusPaid
	case "failed":
		status = models.PaymentStatusFailed
	default:
		status = models.PaymentStatusPending
	}

	if err := s.repo.UpdatePaymentStatus(ctx, entry.ID, status); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	if status == models.PaymentStatusPaid {
		if err := s.repo.SetUserSubscribed(ctx, userUID, true); err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("subscription activated", slog.String("user_uid", userUID))
		return true, nil
	}

	s.log.Info("payment reconciled",
		slog.Int("payment_id", entry.ID),
		slog.String("status", status))
	return false, nil
}

// ListPayments возвращает историю платежей пользователя.
func (s *Service) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, userUID)
}
