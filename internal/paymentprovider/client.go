// Package paymentprovider реализует клиент Stripe API для оплаты подписки:
// регистрация цены, создание сессии Stripe Checkout и получение её статуса.
package paymentprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client клиент Stripe API. Ключ и параметры передаются явно при создании,
// глобального состояния нет.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент Stripe.
func NewClient(secretKey string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     "https://api.stripe.com/v1",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Stripe принимает параметры в формате application/x-www-form-urlencoded.
func (c *Client) newRequest(ctx context.Context, method, path string, form url.Values) (*http.Request, error) {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if method == http.MethodPost {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return errors.New("unexpected status: " + resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// CreatePrice регистрирует в Stripe разовую цену подписки.
// Сумма задается в минимальных единицах валюты (копейках).
func (c *Client) CreatePrice(ctx context.Context, amount int64, currency, productName string) (*Price, error) {
	form := url.Values{}
	form.Set("unit_amount", strconv.FormatInt(amount, 10))
	form.Set("currency", currency)
	form.Set("product_data[name]", productName)

	req, err := c.newRequest(ctx, http.MethodPost, "/prices", form)
	if err != nil {
		return nil, err
	}

	var price Price
	if err := c.do(req, &price); err != nil {
		return nil, err
	}
	return &price, nil
}

// CreateCheckoutSession создает сессию Stripe Checkout для оплаты по цене priceID.
// Возвращенную сессию нужно сохранить, а пользователя перенаправить на её URL.
func (c *Client) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	req, err := c.newRequest(ctx, http.MethodPost, "/checkout/sessions", form)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// GetCheckoutSession возвращает актуальное состояние сессии оплаты по её ID.
func (c *Client) GetCheckoutSession(ctx context.Context, sessionID string) (*CheckoutSession, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/checkout/sessions/"+sessionID, nil)
	if err != nil {
		return nil, err
	}

	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, err
	}
	return &session, nil
}
