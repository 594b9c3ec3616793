package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/config"
	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/go-playground/validator/v10"
	"github.com/segmentio/kafka-go"
)

type Notifier interface {
	SendOrderConfirmation(ctx context.Context, event entities.OrderConfirmation) error
}

// HandledEvents remembers event ids that were already delivered.
// Add reserves an id and reports false if it is already taken.
type HandledEvents interface {
	Add(key string, value struct{}) bool
	Delete(key string)
}

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaHandler struct {
	dlq      messageWriter
	reader   messageReader
	logger   *slog.Logger
	validate *validator.Validate
	notifier Notifier
	handled  HandledEvents
}

func NewKafkaHandler(logger *slog.Logger, cfg config.Kafka, notifier Notifier, handled HandledEvents) *kafkaHandler {
	return &kafkaHandler{
		logger: logger.With(slog.String("handler", "kafka")),
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: cfg.Brokers,
			GroupID: cfg.GroupID,
			Topic:   cfg.Topic,
			MaxWait: cfg.ReaderMaxWait,
		}),
		dlq: &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Balancer:     &kafka.LeastBytes{},
			BatchTimeout: cfg.BatchTimeout,
		},
		validate: validator.New(),
		notifier: notifier,
		handled:  handled,
	}
}

func (h *kafkaHandler) Consume(ctx context.Context) {
	for {
		m, err := h.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				break
			}
			h.logger.Error("failed to fetch message", slog.Any("error", err))
			continue
		}

		// Отправка письма не повторяется: неудачные сообщения уходят в DLQ
		if err := h.handleConfirmation(ctx, m); err != nil {
			notificationsFailed.Inc()
			h.logger.Error("failed to handle message", slog.Any("error", err), slog.Int64("offset", m.Offset))

			if err := h.WriteToDLQ(ctx, m); err != nil {
				h.logger.Error("failed to write message to DLQ", slog.Any("error", err))
			}
		}

		if err := h.reader.CommitMessages(ctx, m); err != nil {
			commitErrors.Inc()
			h.logger.Error("failed to commit message", slog.Any("error", err))
		}
	}
}

func (h *kafkaHandler) handleConfirmation(ctx context.Context, m kafka.Message) error {
	start := time.Now()
	defer func() {
		notificationDuration.Observe(time.Since(start).Seconds())
	}()

	var event entities.OrderConfirmation
	if err := json.Unmarshal(m.Value, &event); err != nil {
		return fmt.Errorf("failed to unmarshal confirmation: %w", err)
	}

	if err := h.validate.Struct(event); err != nil {
		return fmt.Errorf("invalid confirmation data: %w", err)
	}

	if !h.handled.Add(event.EventID, struct{}{}) {
		notificationsDuplicate.Inc()
		h.logger.Debug("duplicate confirmation skipped", slog.String("event_id", event.EventID))
		return nil
	}

	if err := h.notifier.SendOrderConfirmation(ctx, event); err != nil {
		// повторная доставка события должна снова попробовать отправить письмо
		h.handled.Delete(event.EventID)
		return err
	}

	notificationsSent.Inc()
	return nil
}

func (h *kafkaHandler) WriteToDLQ(ctx context.Context, m kafka.Message) error {
	msg := kafka.Message{
		Topic:   fmt.Sprintf("%s-dlq", m.Topic),
		Key:     m.Key,
		Value:   m.Value,
		Headers: m.Headers,
	}
	if err := h.dlq.WriteMessages(ctx, msg); err != nil {
		return err
	}
	notificationsDLQ.Inc()
	return nil
}

func (h *kafkaHandler) Close() error {
	if err := h.reader.Close(); err != nil {
		return err
	}
	return h.dlq.Close()
}
