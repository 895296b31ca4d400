package payment

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-publisher/internal/config"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
	"github.com/magabrotheeeer/blog-publisher/internal/paymentprovider"
	"github.com/magabrotheeeer/blog-publisher/internal/storage/repository"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Error(1)
}

func (m *RepoMock) GetLastPaymentByUser(ctx context.Context, userUID string) (*models.Payment, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *RepoMock) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *RepoMock) ListPayments(ctx context.Context, userUID string) ([]*models.Payment, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *RepoMock) SetUserSubscribed(ctx context.Context, userUID string, subscribed bool) error {
	return m.Called(ctx, userUID, subscribed).Error(0)
}

type GatewayMock struct{ mock.Mock }

func (m *GatewayMock) CreatePrice(ctx context.Context, amount int64, currency, productName string) (*paymentprovider.Price, error) {
	args := m.Called(ctx, amount, currency, productName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.Price), args.Error(1)
}

func (m *GatewayMock) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL string) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, priceID, successURL, cancelURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}

func (m *GatewayMock) GetCheckoutSession(ctx context.Context, sessionID string) (*paymentprovider.CheckoutSession, error) {
	args := m.Called(ctx, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*paymentprovider.CheckoutSession), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func testConfig() config.Stripe {
	return config.Stripe{
		StripeSecretKey:    "sk_test_123",
		SubscriptionAmount: 50000,
		Currency:           "rub",
		ProductName:        "Subscription",
		SuccessURL:         "http://localhost:8080/api/v1/subscribe/success",
		CancelURL:          "http://localhost:8080/api/v1/subscribe/cancel",
	}
}

func TestService_Subscribe(t *testing.T) {
	repo := new(RepoMock)
	gateway := new(GatewayMock)
	svc := New(repo, gateway, testConfig(), newNoopLogger())

	gateway.On("CreatePrice", mock.Anything, int64(50000), "rub", "Subscription").
		Return(&paymentprovider.Price{ID: "price_123", UnitAmount: 50000, Currency: "rub"}, nil).Once()
	gateway.On("CreateCheckoutSession", mock.Anything, "price_123",
		"http://localhost:8080/api/v1/subscribe/success",
		"http://localhost:8080/api/v1/subscribe/cancel").
		Return(&paymentprovider.CheckoutSession{
			ID:  "sess_abc",
			URL: "https://checkout.stripe.com/pay/sess_abc",
		}, nil).Once()
	repo.On("CreatePayment", mock.Anything, mock.MatchedBy(func(p models.Payment) bool {
		return p.UserUID == "uid-1" &&
			p.Amount == 500.00 &&
			p.StripeSessionID == "sess_abc" &&
			p.Status == models.PaymentStatusPending
	})).Return(7, nil).Once()

	url, err := svc.Subscribe(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/sess_abc", url)

	repo.AssertExpectations(t)
	gateway.AssertExpectations(t)
}

func TestService_Subscribe_GatewayError(t *testing.T) {
	repo := new(RepoMock)
	gateway := new(GatewayMock)
	svc := New(repo, gateway, testConfig(), newNoopLogger())

	gateway.On("CreatePrice", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("unexpected status: 401 Unauthorized")).Once()

	_, err := svc.Subscribe(context.Background(), "uid-1")
	require.Error(t, err)
	repo.AssertNotCalled(t, "CreatePayment", mock.Anything, mock.Anything)
}

func TestService_Reconcile(t *testing.T) {
	pending := func() *models.Payment {
		return &models.Payment{
			ID:              7,
			UserUID:         "uid-1",
			Amount:          500.00,
			StripeSessionID: "sess_abc",
			Status:          models.PaymentStatusPending,
		}
	}

	tests := []struct {
		name          string
		gatewayStatus string
		wantStatus    string
		wantPaid      bool
		wantSubscribe bool
	}{
		{
			name:          "paid session activates subscription",
			gatewayStatus: "paid",
			wantStatus:    models.PaymentStatusPaid,
			wantPaid:      true,
			wantSubscribe: true,
		},
		{
			name:          "failed session does not touch subscription",
			gatewayStatus: "failed",
			wantStatus:    models.PaymentStatusFailed,
			wantPaid:      false,
			wantSubscribe: false,
		},
		{
			name:          "unpaid session stays pending",
			gatewayStatus: "unpaid",
			wantStatus:    models.PaymentStatusPending,
			wantPaid:      false,
			wantSubscribe: false,
		},
		{
			name:          "unknown status maps to pending",
			gatewayStatus: "no_payment_required",
			wantStatus:    models.PaymentStatusPending,
			wantPaid:      false,
			wantSubscribe: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			gateway := new(GatewayMock)
			svc := New(repo, gateway, testConfig(), newNoopLogger())

			repo.On("GetLastPaymentByUser", mock.Anything, "uid-1").Return(pending(), nil).Once()
			gateway.On("GetCheckoutSession", mock.Anything, "sess_abc").
				Return(&paymentprovider.CheckoutSession{ID: "sess_abc", PaymentStatus: tt.gatewayStatus}, nil).Once()
			repo.On("UpdatePaymentStatus", mock.Anything, 7, tt.wantStatus).Return(nil).Once()
			if tt.wantSubscribe {
				repo.On("SetUserSubscribed", mock.Anything, "uid-1", true).Return(nil).Once()
			}

			paid, err := svc.Reconcile(context.Background(), "uid-1")
			require.NoError(t, err)
			assert.Equal(t, tt.wantPaid, paid)

			if !tt.wantSubscribe {
				repo.AssertNotCalled(t, "SetUserSubscribed", mock.Anything, mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
			gateway.AssertExpectations(t)
		})
	}
}

func TestService_Reconcile_NoPayments(t *testing.T) {
	repo := new(RepoMock)
	gateway := new(GatewayMock)
	svc := New(repo, gateway, testConfig(), newNoopLogger())

	repo.On("GetLastPaymentByUser", mock.Anything, "uid-1").
		Return(nil, repository.ErrPaymentNotFound).Once()

	paid, err := svc.Reconcile(context.Background(), "uid-1")
	require.NoError(t, err)
	assert.False(t, paid)

	gateway.AssertNotCalled(t, "GetCheckoutSession", mock.Anything, mock.Anything)
}

func TestService_Reconcile_IdempotentOnPaid(t *testing.T) {
	repo := new(RepoMock)
	gateway := new(GatewayMock)
	svc := New(repo, gateway, testConfig(), newNoopLogger())

	paidPayment := &models.Payment{
		ID:              7,
		UserUID:         "uid-1",
		StripeSessionID: "sess_abc",
		Status:          models.PaymentStatusPaid,
	}

	// повторная сверка уже оплаченной сессии заново выставляет флаг подписки
	repo.On("GetLastPaymentByUser", mock.Anything, "uid-1").Return(paidPayment, nil).Twice()
	gateway.On("GetCheckoutSession", mock.Anything, "sess_abc").
		Return(&paymentprovider.CheckoutSession{ID: "sess_abc", PaymentStatus: "paid"}, nil).Twice()
	repo.On("UpdatePaymentStatus", mock.Anything, 7, models.PaymentStatusPaid).Return(nil).Twice()
	repo.On("SetUserSubscribed", mock.Anything, "uid-1", true).Return(nil).Twice()

	for range 2 {
		paid, err := svc.Reconcile(context.Background(), "uid-1")
		require.NoError(t, err)
		assert.True(t, paid)
	}

	repo.AssertExpectations(t)
}
