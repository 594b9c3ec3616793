package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type outboxRepo struct {
	base
}

func NewOutboxRepo(db *sqlx.DB) *outboxRepo {
	return &outboxRepo{base: newBase(db)}
}

func (r *outboxRepo) Enqueue(ctx context.Context, msg entities.OutboxMessage) error {
	query, args := r.qb.Insert("outbox").
		Columns("event_id", "topic", "key", "payload").
		Values(msg.EventID, msg.Topic, msg.Key, string(msg.Payload)).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to enqueue outbox message: %w", err)
	}
	return nil
}

// FetchPending locks up to limit unsent messages, skipping rows held by other relays.
// Must run inside a transaction.
func (r *outboxRepo) FetchPending(ctx context.Context, limit int) ([]entities.OutboxMessage, error) {
	query, args := r.qb.Select("id", "event_id", "topic", "key", "payload").
		From("outbox").
		Where(sq.Eq{"sent_at": nil}).
		OrderBy("id").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		MustSql()

	var rows []OutboxMessage
	if err := r.selectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select outbox messages: %w", err)
	}

	messages := make([]entities.OutboxMessage, 0, len(rows))
	for _, m := range rows {
		messages = append(messages, entities.OutboxMessage{
			ID:      m.ID,
			EventID: m.EventID,
			Topic:   m.Topic,
			Key:     m.Key,
			Payload: m.Payload,
		})
	}
	return messages, nil
}

func (r *outboxRepo) MarkSent(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query, args := r.qb.Update("outbox").
		Set("sent_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": ids}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark outbox messages sent: %w", err)
	}
	return nil
}
