package paymentprovider

// Price представляет разовую цену, зарегистрированную в Stripe.
type Price struct {
	ID         string `json:"id"`          // ID цены в Stripe
	UnitAmount int64  `json:"unit_amount"` // сумма в минимальных единицах валюты
	Currency   string `json:"currency"`    // валюта, например "rub"
}

// CheckoutSession представляет сессию оплаты Stripe Checkout.
//
// PaymentStatus принимает значения "paid", "unpaid" или "no_payment_required";
// локально всё, что не "paid" и не "failed", трактуется как ожидание оплаты.
type CheckoutSession struct {
	ID            string `json:"id"`             // ID сессии
	URL           string `json:"url"`            // Адрес страницы оплаты для редиректа
	Status        string `json:"status"`         // Статус сессии: open, complete, expired
	PaymentStatus string `json:"payment_status"` // Статус оплаты
}
