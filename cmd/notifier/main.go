package main

import (
	"context"
	"encoding/json"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/amandla-civic/address-manager/backend/internal/config"
	"github.com/amandla-civic/address-manager/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/wneessen/go-mail"
)

type notificationKind struct {
	subject  string
	template string
}

var kinds = map[string]notificationKind{
	"reset_password":     {"Address Manager - Password Reset", "./templates/reset_password.html"},
	"booking":            {"Address Manager - Appointment Booked", "./templates/booking.html"},
	"cancellation":       {"Address Manager - Appointment Cancelled", "./templates/cancellation.html"},
	"leader_decision":    {"Address Manager - Application Reviewed", "./templates/leader_decision.html"},
	"certificate_issued": {"Address Manager - Certificate Issued", "./templates/certificate_issued.html"},
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	// without an SMTP host, composed messages go to the log instead of
	// the wire
	var client *mail.Client
	if cfg.Email.SMTP.Host != "" {
		client, err = mail.NewClient(cfg.Email.SMTP.Host,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithSSL(),
			mail.WithPort(cfg.Email.SMTP.Port),
			mail.WithUsername(cfg.Email.SMTP.Username),
			mail.WithPassword(cfg.Email.SMTP.Password),
		)
		if err != nil {
			logger.Error("failed to create mail client", slog.String("error", err.Error()))
			return
		}
		defer client.Close()

		dialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
		defer cancel()
		if err := client.DialWithContext(dialCtx); err != nil {
			logger.Error("failed to connect to mail server", slog.String("error", err.Error()))
			return
		}
	} else {
		logger.Info("no SMTP host configured, notifications will be logged only")
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open rabbitmq channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"notification_queue",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to declare queue", slog.String("error", err.Error()))
		return
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	msgs, err := ch.Consume(
		q.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		logger.Error("failed to start consuming", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-msgs:
				logger.Info("message received", slog.String("message", string(msg.Body)))

				notification := domain.NotificationMessage{}
				if err := json.Unmarshal(msg.Body, &notification); err != nil {
					logger.Error("failed to decode notification", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				kind, ok := kinds[notification.Type]
				if !ok {
					logger.Error("unsupported notification type", slog.String("type", notification.Type))
					_ = msg.Nack(false, false)
					continue
				}

				m := mail.NewMsg()
				if err := m.From(cfg.Email.From); err != nil {
					logger.Error("failed to set sender", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.To(notification.To); err != nil {
					logger.Error("failed to set recipient", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				m.Subject(kind.subject)

				tmpl, err := template.ParseFiles(kind.template)
				if err != nil {
					logger.Error("failed to parse template", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}
				if err := m.SetBodyHTMLTemplate(tmpl, notification.Data); err != nil {
					logger.Error("failed to render body", slog.String("error", err.Error()))
					_ = msg.Nack(false, false)
					continue
				}

				if client != nil {
					if err := client.DialAndSend(m); err != nil {
						logger.Error("failed to send notification", slog.String("error", err.Error()))
						_ = msg.Nack(false, true) // requeue for another attempt
						continue
					}
				} else {
					var sb strings.Builder
					if _, err := m.WriteTo(&sb); err != nil {
						logger.Error("failed to serialize notification", slog.String("error", err.Error()))
						_ = msg.Nack(false, false)
						continue
					}
					logger.Info("notification composed", slog.String("to", notification.To), slog.String("type", notification.Type), slog.String("message", sb.String()))
				}

				_ = msg.Ack(false)
			}
		}
	}()

	logger.Info("waiting for messages... (press CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notifier...")
	cancel()
	wg.Wait()
	slog.Info("notifier shut down")
}
