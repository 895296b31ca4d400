package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
)

// Количество сообщений, обрабатываемых одновременно одним потребителем.
const consumerConcurrency = 10

// Consume подписывается на очередь и передает тело каждого сообщения
// обработчику. Сообщение подтверждается только после успешной обработки,
// при ошибке возвращается в очередь. Подписка живет до отмены контекста
// или закрытия канала.
func Consume(ctx context.Context, ch *amqp.Channel, queueName string, log *slog.Logger, handler func([]byte) error) error {
	const op = "rabbitmq.Consume"

	deliveries, err := ch.Consume(queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	go func() {
		sem := make(chan struct{}, consumerConcurrency)
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					log.Warn("delivery channel closed", slog.String("queue", queueName))
					return
				}
				sem <- struct{}{}
				go func(d amqp.Delivery) {
					defer func() { <-sem }()
					process(d, queueName, log, handler)
				}(d)
			}
		}
	}()
	return nil
}

func process(d amqp.Delivery, queueName string, log *slog.Logger, handler func([]byte) error) {
	if err := handler(d.Body); err != nil {
		log.Error("failed to handle message",
			slog.String("queue", queueName), sl.Err(err))
		if nackErr := d.Nack(false, true); nackErr != nil {
			log.Error("failed to nack message", sl.Err(nackErr))
		}
		return
	}
	if ackErr := d.Ack(false); ackErr != nil {
		log.Error("failed to ack message", sl.Err(ackErr))
	}
}
