// Package services содержит логику бизнес-уровня для регистрации,
// подтверждения номера телефона, входа и смены пароля.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/blog-publisher/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/otp"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/password"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sms"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

// Ошибки бизнес-уровня аутентификации.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotActive      = errors.New("user is not active")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByPhone возвращает пользователя по номеру телефона или ошибку, если не найден.
	GetUserByPhone(ctx context.Context, phone string) (*models.User, error)

	// SaveOTP сохраняет код подтверждения и время его выдачи, перезаписывая прежний.
	SaveOTP(ctx context.Context, userUID, code string, createdAt time.Time) error

	// MarkOTPSent отмечает, что код при создании учетной записи отправлен.
	MarkOTPSent(ctx context.Context, userUID string) error

	// ActivateUser активирует пользователя и сбрасывает код подтверждения.
	ActivateUser(ctx context.Context, userUID string) error

	// ClearOTP сбрасывает код подтверждения.
	ClearOTP(ctx context.Context, userUID string) error

	// UpdatePasswordHash сохраняет новый хэш пароля.
	UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error
}

// AuthService отвечает за регистрацию, подтверждение номера, вход и смену пароля.
//
// Жизненный цикл учетной записи: создана неактивной -> подтверждена кодом
// из SMS -> активна. Смена пароля использует тот же механизм кода.
type AuthService struct {
	users    UserRepository
	sender   sms.Sender
	jwtMaker jwt.Maker
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sender sms.Sender, jwtMaker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sender:   sender,
		jwtMaker: jwtMaker,
		log:      log,
	}
}

// Register создает нового неактивного пользователя и один раз отправляет
// ему код подтверждения. Ошибка доставки SMS отменяет всю операцию:
// повторов нет, вызывающий получает ошибку как есть.
func (s *AuthService) Register(ctx context.Context, phoneNumber, name, rawPassword string) (string, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user := models.User{
		Phone:        phoneNumber,
		Name:         name,
		PasswordHash: hashed,
		Role:         "user", // дефолтная роль при регистрации
		IsActive:     false,  // до подтверждения номера вход закрыт
	}
	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	code := otp.Generate()
	if err := s.users.SaveOTP(ctx, uid, code, time.Now().UTC()); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sender.Send(ctx, phoneNumber, code); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.MarkOTPSent(ctx, uid); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered, otp sent", slog.String("phone", phoneNumber))
	return uid, nil
}

// ConfirmRegistration проверяет код подтверждения при регистрации.
//
// При успехе активирует пользователя и сбрасывает код. При неуспехе
// состояние пользователя не меняется, причина возвращается вызывающему.
func (s *AuthService) ConfirmRegistration(ctx context.Context, phoneNumber, code string) (bool, string, error) {
	const op = "auth.ConfirmRegistration"

	user, err := s.users.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		return false, "", fmt.Errorf("%s: %w", op, err)
	}

	valid, reason := otp.Verify(user.OTPCode, user.OTPCreatedAt, code)
	if !valid {
		return false, reason, nil
	}

	if err := s.users.ActivateUser(ctx, user.UID); err != nil {
		return false, "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user activated", slog.String("phone", phoneNumber))
	return true, reason, nil
}

// Login проверяет пароль активированного пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, phoneNumber, rawPassword string) (string, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return "", ErrUserNotActive
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.Phone, user.Role, user.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// RequestPasswordReset выдает код подтверждения для смены пароля
// уже зарегистрированному пользователю. Прежний код перезаписывается.
func (s *AuthService) RequestPasswordReset(ctx context.Context, phoneNumber string) error {
	const op = "auth.RequestPasswordReset"

	user, err := s.users.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !user.IsActive {
		return ErrUserNotActive
	}

	code := otp.Generate()
	if err := s.users.SaveOTP(ctx, user.UID, code, time.Now().UTC()); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.sender.Send(ctx, phoneNumber, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("password reset otp sent", slog.String("phone", phoneNumber))
	return nil
}

// ConfirmPasswordReset проверяет код подтверждения и устанавливает новый пароль.
// Код проверяется один раз и при успехе сбрасывается до смены пароля.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, phoneNumber, code, newPassword string) (bool, string, error) {
	const op = "auth.ConfirmPasswordReset"

	user, err := s.users.GetUserByPhone(ctx, phoneNumber)
	if err != nil {
		return false, "", fmt.Errorf("%s: %w", op, err)
	}

	valid, reason := otp.Verify(user.OTPCode, user.OTPCreatedAt, code)
	if !valid {
		return false, reason, nil
	}

	if err := s.users.ClearOTP(ctx, user.UID); err != nil {
		return false, "", fmt.Errorf("%s: %w", op, err)
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return false, "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.users.UpdatePasswordHash(ctx, user.UID, hashed); err != nil {
		return false, "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("password changed", slog.String("phone", phoneNumber))
	return true, reason, nil
}
