package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-publisher/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/otp"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/password"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sms"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UsersMock) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UsersMock) SaveOTP(ctx context.Context, userUID, code string, createdAt time.Time) error {
	return m.Called(ctx, userUID, code, createdAt).Error(0)
}

func (m *UsersMock) MarkOTPSent(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func (m *UsersMock) ActivateUser(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func (m *UsersMock) ClearOTP(ctx context.Context, userUID string) error {
	return m.Called(ctx, userUID).Error(0)
}

func (m *UsersMock) UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error {
	return m.Called(ctx, userUID, passwordHash).Error(0)
}

type SenderMock struct{ mock.Mock }

func (m *SenderMock) Send(ctx context.Context, phone, code string) error {
	return m.Called(ctx, phone, code).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newService(users *UsersMock, sender *SenderMock) *AuthService {
	return NewAuthService(users, sender, jwt.NewMaker("test-secret", time.Hour), newNoopLogger())
}

func strptr(s string) *string { return &s }

func timeptr(t time.Time) *time.Time { return &t }

func TestAuthService_Register(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	var sentCode string
	users.On("CreateUser", mock.Anything, mock.MatchedBy(func(u models.User) bool {
		return u.Phone == "+71234567890" &&
			u.Name == "Test User" &&
			u.Role == "user" &&
			!u.IsActive &&
			u.PasswordHash != "password123"
	})).Return("uid-1", nil).Once()
	users.On("SaveOTP", mock.Anything, "uid-1", mock.MatchedBy(func(code string) bool {
		sentCode = code
		return len(code) == 6
	}), mock.Anything).Return(nil).Once()
	sender.On("Send", mock.Anything, "+71234567890", mock.MatchedBy(func(code string) bool {
		return code == sentCode
	})).Return(nil).Once()
	users.On("MarkOTPSent", mock.Anything, "uid-1").Return(nil).Once()

	uid, err := svc.Register(context.Background(), "+71234567890", "Test User", "password123")
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	users.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestAuthService_Register_SMSFailure(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	users.On("CreateUser", mock.Anything, mock.Anything).Return("uid-1", nil).Once()
	users.On("SaveOTP", mock.Anything, "uid-1", mock.Anything, mock.Anything).Return(nil).Once()
	sender.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(sms.ErrEmptyPhone).Once()

	_, err := svc.Register(context.Background(), "+71234567890", "Test User", "password123")
	require.Error(t, err)
	// при ошибке доставки код не считается отправленным
	users.AssertNotCalled(t, "MarkOTPSent", mock.Anything, mock.Anything)
}

func TestAuthService_ConfirmRegistration(t *testing.T) {
	code := "482913"

	tests := []struct {
		name         string
		user         *models.User
		submitted    string
		wantValid    bool
		wantReason   string
		wantActivate bool
	}{
		{
			name: "valid code within window activates user",
			user: &models.User{
				UID:          "uid-1",
				Phone:        "+71234567890",
				OTPCode:      strptr(code),
				OTPCreatedAt: timeptr(time.Now().Add(-4 * time.Minute)),
			},
			submitted:    "482913",
			wantValid:    true,
			wantReason:   otp.ReasonVerified,
			wantActivate: true,
		},
		{
			name: "expired code leaves user inactive",
			user: &models.User{
				UID:          "uid-1",
				Phone:        "+71234567890",
				OTPCode:      strptr(code),
				OTPCreatedAt: timeptr(time.Now().Add(-6 * time.Minute)),
			},
			submitted:    "482913",
			wantValid:    false,
			wantReason:   otp.ReasonExpired,
			wantActivate: false,
		},
		{
			name: "wrong code",
			user: &models.User{
				UID:          "uid-1",
				Phone:        "+71234567890",
				OTPCode:      strptr(code),
				OTPCreatedAt: timeptr(time.Now()),
			},
			submitted:    "111111",
			wantValid:    false,
			wantReason:   otp.ReasonMismatch,
			wantActivate: false,
		},
		{
			name: "no code issued",
			user: &models.User{
				UID:   "uid-1",
				Phone: "+71234567890",
			},
			submitted:    "482913",
			wantValid:    false,
			wantReason:   otp.ReasonNotIssued,
			wantActivate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			sender := new(SenderMock)
			svc := newService(users, sender)

			users.On("GetUserByPhone", mock.Anything, "+71234567890").Return(tt.user, nil).Once()
			if tt.wantActivate {
				users.On("ActivateUser", mock.Anything, "uid-1").Return(nil).Once()
			}

			valid, reason, err := svc.ConfirmRegistration(context.Background(), "+71234567890", tt.submitted)
			require.NoError(t, err)
			assert.Equal(t, tt.wantValid, valid)
			assert.Equal(t, tt.wantReason, reason)

			if !tt.wantActivate {
				users.AssertNotCalled(t, "ActivateUser", mock.Anything, mock.Anything)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_ConfirmRegistration_CodeIsOneShot(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	code := "482913"
	withCode := &models.User{
		UID:          "uid-1",
		Phone:        "+71234567890",
		OTPCode:      strptr(code),
		OTPCreatedAt: timeptr(time.Now()),
	}
	// после активации код сброшен
	cleared := &models.User{UID: "uid-1", Phone: "+71234567890", IsActive: true}

	users.On("GetUserByPhone", mock.Anything, "+71234567890").Return(withCode, nil).Once()
	users.On("ActivateUser", mock.Anything, "uid-1").Return(nil).Once()

	valid, _, err := svc.ConfirmRegistration(context.Background(), "+71234567890", code)
	require.NoError(t, err)
	require.True(t, valid)

	users.On("GetUserByPhone", mock.Anything, "+71234567890").Return(cleared, nil).Once()

	valid, reason, err := svc.ConfirmRegistration(context.Background(), "+71234567890", code)
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, otp.ReasonNotIssued, reason)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	tests := []struct {
		name     string
		user     *models.User
		userErr  error
		password string
		wantErr  error
	}{
		{
			name:     "success",
			user:     &models.User{UID: "uid-1", Phone: "+71234567890", PasswordHash: hash, Role: "user", IsActive: true},
			password: "password123",
			wantErr:  nil,
		},
		{
			name:     "inactive user",
			user:     &models.User{UID: "uid-1", Phone: "+71234567890", PasswordHash: hash, Role: "user", IsActive: false},
			password: "password123",
			wantErr:  ErrUserNotActive,
		},
		{
			name:     "wrong password",
			user:     &models.User{UID: "uid-1", Phone: "+71234567890", PasswordHash: hash, Role: "user", IsActive: true},
			password: "wrong",
			wantErr:  ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			sender := new(SenderMock)
			svc := newService(users, sender)

			users.On("GetUserByPhone", mock.Anything, "+71234567890").Return(tt.user, tt.userErr).Once()

			token, err := svc.Login(context.Background(), "+71234567890", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
		})
	}
}

func TestAuthService_RequestPasswordReset(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	oldCode := "111111"
	user := &models.User{
		UID:          "uid-1",
		Phone:        "+71234567890",
		IsActive:     true,
		OTPCode:      &oldCode,
		OTPCreatedAt: timeptr(time.Now().Add(-10 * time.Minute)),
	}

	users.On("GetUserByPhone", mock.Anything, "+71234567890").Return(user, nil).Once()
	users.On("SaveOTP", mock.Anything, "uid-1", mock.MatchedBy(func(code string) bool {
		// прежний код перезаписывается свежим
		return len(code) == 6 && code != oldCode
	}), mock.Anything).Return(nil).Once()
	sender.On("Send", mock.Anything, "+71234567890", mock.Anything).Return(nil).Once()

	err := svc.RequestPasswordReset(context.Background(), "+71234567890")
	require.NoError(t, err)

	users.AssertExpectations(t)
	sender.AssertExpectations(t)
}

func TestAuthService_RequestPasswordReset_InactiveUser(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	users.On("GetUserByPhone", mock.Anything, "+71234567890").
		Return(&models.User{UID: "uid-1", Phone: "+71234567890", IsActive: false}, nil).Once()

	err := svc.RequestPasswordReset(context.Background(), "+71234567890")
	assert.ErrorIs(t, err, ErrUserNotActive)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_ConfirmPasswordReset(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	code := "482913"
	user := &models.User{
		UID:          "uid-1",
		Phone:        "+71234567890",
		IsActive:     true,
		OTPCode:      strptr(code),
		OTPCreatedAt: timeptr(time.Now()),
	}

	users.On("GetUserByPhone", mock.Anything, "+71234567890").Return(user, nil).Once()
	users.On("ClearOTP", mock.Anything, "uid-1").Return(nil).Once()
	users.On("UpdatePasswordHash", mock.Anything, "uid-1", mock.MatchedBy(func(hash string) bool {
		return password.CompareHash(hash, "newpassword") == nil
	})).Return(nil).Once()

	valid, reason, err := svc.ConfirmPasswordReset(context.Background(), "+71234567890", code, "newpassword")
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, otp.ReasonVerified, reason)

	users.AssertExpectations(t)
}

func TestAuthService_ConfirmPasswordReset_BadCode(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	code := "482913"
	user := &models.User{
		UID:          "uid-1",
		Phone:        "+71234567890",
		OTPCode:      strptr(code),
		OTPCreatedAt: timeptr(time.Now()),
	}

	users.On("GetUserByPhone", mock.Anything, "+71234567890").Return(user, nil).Once()

	valid, reason, err := svc.ConfirmPasswordReset(context.Background(), "+71234567890", "000000", "newpassword")
	require.NoError(t, err)
	assert.False(t, valid)
	assert.Equal(t, otp.ReasonMismatch, reason)

	users.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuthService_Register_StorageError(t *testing.T) {
	users := new(UsersMock)
	sender := new(SenderMock)
	svc := newService(users, sender)

	users.On("CreateUser", mock.Anything, mock.Anything).
		Return("", errors.New("duplicate key value violates unique constraint")).Once()

	_, err := svc.Register(context.Background(), "+71234567890", "Test User", "password123")
	require.Error(t, err)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}
