// Package sms описывает транспорт для доставки SMS с кодами подтверждения.
//
// Реальный SMS-шлюз в проекте не подключен: MockSender пишет сообщение в лог.
// Контракт Sender сохраняется для боевой реализации.
package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrEmptyPhone возвращается при попытке отправить SMS на пустой номер.
var ErrEmptyPhone = errors.New("phone number is empty")

// Sender описывает контракт доставки кода подтверждения на номер телефона.
type Sender interface {
	Send(ctx context.Context, phone, code string) error
}

// MockSender имитирует отправку SMS, выводя сообщение в лог.
type MockSender struct {
	log *slog.Logger
}

// NewMockSender создает новый экземпляр MockSender.
func NewMockSender(log *slog.Logger) *MockSender {
	return &MockSender{log: log}
}

// Send пишет сообщение с кодом в лог. Возвращает ошибку, если номер пуст.
func (s *MockSender) Send(_ context.Context, phone, code string) error {
	const op = "sms.Send"
	if phone == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyPhone)
	}
	s.log.Info("sms sent",
		slog.String("phone", phone),
		slog.String("message", "Ваш код подтверждения: "+code),
	)
	return nil
}
