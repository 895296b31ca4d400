package paymentprovider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient("sk_test_123")
	client.apiURL = srv.URL
	return client
}

func TestClient_CreatePrice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/prices", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("Idempotency-Key"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "50000", r.PostForm.Get("unit_amount"))
		assert.Equal(t, "rub", r.PostForm.Get("currency"))
		assert.Equal(t, "Subscription", r.PostForm.Get("product_data[name]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "price_123", "unit_amount": 50000, "currency": "rub"}`))
	})

	price, err := client.CreatePrice(context.Background(), 50000, "rub", "Subscription")
	require.NoError(t, err)
	assert.Equal(t, "price_123", price.ID)
	assert.Equal(t, int64(50000), price.UnitAmount)
}

func TestClient_CreateCheckoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/checkout/sessions", r.URL.Path)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "price_123", r.PostForm.Get("line_items[0][price]"))
		assert.Equal(t, "1", r.PostForm.Get("line_items[0][quantity]"))
		assert.Equal(t, "http://localhost/success", r.PostForm.Get("success_url"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cs_test_abc", "url": "https://checkout.stripe.com/pay/cs_test_abc", "status": "open", "payment_status": "unpaid"}`))
	})

	session, err := client.CreateCheckoutSession(context.Background(),
		"price_123", "http://localhost/success", "http://localhost/cancel")
	require.NoError(t, err)
	assert.Equal(t, "cs_test_abc", session.ID)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_abc", session.URL)
}

func TestClient_GetCheckoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/checkout/sessions/cs_test_abc", r.URL.Path)
		assert.Empty(t, r.Header.Get("Idempotency-Key"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cs_test_abc", "status": "complete", "payment_status": "paid"}`))
	})

	session, err := client.GetCheckoutSession(context.Background(), "cs_test_abc")
	require.NoError(t, err)
	assert.Equal(t, "paid", session.PaymentStatus)
}

func TestClient_UnexpectedStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error": {"message": "Invalid API Key"}}`))
	})

	_, err := client.GetCheckoutSession(context.Background(), "cs_test_abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status")
}
