package handler

import (
	"context"
	"encoding/json"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

// publishNotification hands a message to the notifier worker via the
// shared queue.
func (h *Handler) publishNotification(msg domain.NotificationMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.notificationChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}
