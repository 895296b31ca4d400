// Package services содержит обработку формы обратной связи.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

// Publisher описывает публикацию сообщений в очередь уведомлений.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// ContactService принимает сообщения формы обратной связи и публикует их
// в очередь. Доставка владельцу выполняется отдельным сервисом-потребителем.
type ContactService struct {
	publisher Publisher
	log       *slog.Logger
}

// NewContactService создает новый экземпляр ContactService.
func NewContactService(publisher Publisher, log *slog.Logger) *ContactService {
	return &ContactService{
		publisher: publisher,
		log:       log,
	}
}

// SubmitContactForm публикует сообщение формы обратной связи в очередь.
func (s *ContactService) SubmitContactForm(ctx context.Context, name, phone, text string) error {
	const op = "services.SubmitContactForm"

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	message := models.ContactMessage{
		Name:      name,
		Phone:     phone,
		Message:   text,
		CreatedAt: time.Now(),
	}

	if err := s.publisher.Publish("notifications", "contacts", message); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("contact message queued", slog.String("phone", phone))
	return nil
}
