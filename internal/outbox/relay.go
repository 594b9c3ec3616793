// Package outbox publishes messages written by checkout to Kafka.
package outbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/config"
	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/pkg/trm"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/segmentio/kafka-go"
)

var (
	messagesPublished = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "outbox",
		Name:      "messages_published_total",
		Help:      "Total number of outbox messages published to Kafka.",
	})

	publishFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "outbox",
		Name:      "publish_failures_total",
		Help:      "Total number of failed outbox batches.",
	})
)

type Store interface {
	// FetchPending must be called inside a transaction: rows stay locked until it ends.
	FetchPending(ctx context.Context, limit int) ([]entities.OutboxMessage, error)
	MarkSent(ctx context.Context, ids []int64) error
}

type Publisher interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

type relay struct {
	logger    *slog.Logger
	txManager trm.Manager
	store     Store
	publisher Publisher
	interval  time.Duration
	batchSize int
	retry     utils.RetryConfig
}

func NewRelay(logger *slog.Logger, txManager trm.Manager, store Store, publisher Publisher, cfg config.Outbox) *relay {
	return &relay{
		logger:    logger.With(slog.String("service", "outbox")),
		txManager: txManager,
		store:     store,
		publisher: publisher,
		interval:  cfg.PollInterval,
		batchSize: cfg.BatchSize,
		retry: utils.RetryConfig{
			InitialDelay: 100 * time.Millisecond,
			MaxDelay:     2 * time.Second,
			MaxAttempts:  3,
		},
	}
}

// Start polls the outbox until ctx is done.
func (r *relay) Start(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		for {
			n, err := r.Flush(ctx)
			if err != nil {
				if !errors.Is(err, context.Canceled) {
					r.logger.Error("failed to flush outbox", slog.Any("error", err))
				}
				break
			}
			// полная пачка: возможно, есть ещё
			if n < r.batchSize {
				break
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// Flush publishes one batch of pending messages and reports how many were sent.
// Delivery is at least once: a crash between publish and commit resends the batch.
func (r *relay) Flush(ctx context.Context) (int, error) {
	var sent int
	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		pending, err := r.store.FetchPending(ctx, r.batchSize)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}

		msgs := make([]kafka.Message, 0, len(pending))
		ids := make([]int64, 0, len(pending))
		for _, m := range pending {
			msgs = append(msgs, kafka.Message{
				Topic: m.Topic,
				Key:   []byte(m.Key),
				Value: m.Payload,
				Headers: []kafka.Header{
					{Key: "event_id", Value: []byte(m.EventID)},
				},
			})
			ids = append(ids, m.ID)
		}

		publish := func() error { return r.publisher.WriteMessages(ctx, msgs...) }
		if err := utils.Retry(ctx, r.retry, publish, context.Canceled); err != nil {
			publishFailures.Inc()
			return fmt.Errorf("failed to publish outbox batch: %w", err)
		}

		if err := r.store.MarkSent(ctx, ids); err != nil {
			return err
		}
		sent = len(pending)
		return nil
	})
	if err != nil {
		return 0, err
	}

	if sent > 0 {
		messagesPublished.Add(float64(sent))
		r.logger.Debug("outbox batch published", slog.Int("count", sent))
	}
	return sent, nil
}
