package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

const userColumns = `uid, phone, name, email, tg_nick, avatar, password_hash, role,
			      is_active, is_subscribed, otp_code, otp_created_at, is_otp_sent, created_at`

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (phone, name, email, tg_nick, avatar, password_hash, role, is_active)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Phone, user.Name, user.Email, user.TgNick, user.Avatar,
		user.PasswordHash, user.Role, user.IsActive).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// GetUserByPhone возвращает пользователя по номеру телефона.
func (s *Storage) GetUserByPhone(ctx context.Context, phone string) (*models.User, error) {
	const op = "storage.GetUserByPhone"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE phone = $1`
	row := s.DB.QueryRowContext(ctx, query, phone)
	return scanUser(row, op)
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)
	return scanUser(row, op)
}

// SaveOTP сохраняет код подтверждения и время его выдачи.
// Прежний код, если он был, перезаписывается.
func (s *Storage) SaveOTP(ctx context.Context, userUID, code string, createdAt time.Time) error {
	const op = "storage.SaveOTP"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET otp_code = $1,
			      otp_created_at = $2
			  WHERE uid = $3`
	if _, err := s.DB.ExecContext(ctx, query, code, createdAt, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkOTPSent отмечает, что код при создании учетной записи уже отправлен.
// Защищает от повторной отправки SMS для одной регистрации.
func (s *Storage) MarkOTPSent(ctx context.Context, userUID string) error {
	const op = "storage.MarkOTPSent"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_otp_sent = TRUE
			  WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ActivateUser активирует пользователя после успешного подтверждения номера
// и сбрасывает код подтверждения.
func (s *Storage) ActivateUser(ctx context.Context, userUID string) error {
	const op = "storage.ActivateUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_active = TRUE,
			      otp_code = NULL
			  WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// ClearOTP сбрасывает код подтверждения без изменения других полей.
func (s *Storage) ClearOTP(ctx context.Context, userUID string) error {
	const op = "storage.ClearOTP"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET otp_code = NULL
			  WHERE uid = $1`
	if _, err := s.DB.ExecContext(ctx, query, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePasswordHash сохраняет новый хэш пароля пользователя.
func (s *Storage) UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1
			  WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, passwordHash, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// SetUserSubscribed выставляет флаг подписки пользователя.
func (s *Storage) SetUserSubscribed(ctx context.Context, userUID string, subscribed bool) error {
	const op = "storage.SetUserSubscribed"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET is_subscribed = $1
			  WHERE uid = $2`
	if _, err := s.DB.ExecContext(ctx, query, subscribed, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdateProfile обновляет профиль пользователя: имя, почту, ник в Telegram и аватар.
func (s *Storage) UpdateProfile(ctx context.Context, userUID, name string, email, tgNick, avatar *string) error {
	const op = "storage.UpdateProfile"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1,
			      email = $2,
			      tg_nick = $3,
			      avatar = $4
			  WHERE uid = $5`
	if _, err := s.DB.ExecContext(ctx, query, name, email, tgNick, avatar, userUID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// DeleteUser удаляет пользователя по UID.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) error {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, ErrUserNotFound)
	}
	return nil
}

func scanUser(row *sql.Row, op string) (*models.User, error) {
	u := &models.User{}
	var email, tgNick, avatar, otpCode sql.NullString
	var otpCreatedAt sql.NullTime
	if err := row.Scan(&u.UID, &u.Phone, &u.Name, &email, &tgNick, &avatar,
		&u.PasswordHash, &u.Role, &u.IsActive, &u.IsSubscribed,
		&otpCode, &otpCreatedAt, &u.IsOTPSent, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if email.Valid {
		u.Email = &email.String
	}
	if tgNick.Valid {
		u.TgNick = &tgNick.String
	}
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	if otpCode.Valid {
		u.OTPCode = &otpCode.String
	}
	if otpCreatedAt.Valid {
		u.OTPCreatedAt = &otpCreatedAt.Time
	}
	return u, nil
}
