package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

type paymentRepo struct {
	base
}

func NewPaymentRepo(db *sqlx.DB) *paymentRepo {
	return &paymentRepo{base: newBase(db)}
}

func (r *paymentRepo) CreatePayment(ctx context.Context, p entities.Payment) error {
	query, args := r.qb.Insert("payments").
		Columns(paymentColumns...).
		Values(p.ID, p.OrderID, p.Provider, p.ExternalRef, p.Amount, p.Currency, string(p.Status), p.CreatedAt, p.UpdatedAt).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	return nil
}

// FindByExternalRefForUpdate locks the payment matched by the gateway reference.
func (r *paymentRepo) FindByExternalRefForUpdate(ctx context.Context, ref string) (entities.Payment, error) {
	query, args := r.qb.Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"external_ref": ref}).
		OrderBy("created_at DESC").
		Limit(1).
		Suffix("FOR UPDATE").
		MustSql()

	var payment Payment
	err := r.getContext(ctx, &payment, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Payment{}, entities.ErrPaymentNotFound
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("failed to get payment: %w", err)
	}
	return PaymentToEntity(payment), nil
}

func (r *paymentRepo) UpdatePaymentStatus(ctx context.Context, id string, status entities.PaymentStatus) error {
	query, args := r.qb.Update("payments").
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		MustSql()

	n, err := r.affected(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	if n == 0 {
		return entities.ErrPaymentNotFound
	}
	return nil
}

// MarkEventProcessed records a gateway event id. It reports false for an
// event that was already recorded.
func (r *paymentRepo) MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error) {
	query, args := r.qb.Insert("processed_webhook_events").
		Columns("event_id", "type").
		Values(eventID, eventType).
		Suffix("ON CONFLICT (event_id) DO NOTHING").
		MustSql()

	n, err := r.affected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to record webhook event: %w", err)
	}
	return n == 1, nil
}
