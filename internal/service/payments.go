package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/pricing"
	"github.com/SergeyBogomolovv/storefront-service/pkg/trm"
)

type paymentService struct {
	logger    *slog.Logger
	txManager trm.Manager
	products  ProductRepo
	orders    OrderRepo
	payments  PaymentRepo
	cache     Cache
	gateway   PaymentGateway
	calc      *pricing.Calculator
	currency  string
}

func NewPaymentService(
	logger *slog.Logger,
	txManager trm.Manager,
	repos Repositories,
	cache Cache,
	gateway PaymentGateway,
	calc *pricing.Calculator,
	currency string,
) *paymentService {
	return &paymentService{
		logger:    logger.With(slog.String("service", "payment")),
		txManager: txManager,
		products:  repos.Products,
		orders:    repos.Orders,
		payments:  repos.Payments,
		cache:     cache,
		gateway:   gateway,
		calc:      calc,
		currency:  currency,
	}
}

// CreateIntent prices the cart with the same policy as checkout and opens a
// gateway payment intent for the total.
func (s *paymentService) CreateIntent(
	ctx context.Context,
	items []entities.CheckoutItem,
	method entities.ShippingMethod,
) (entities.PaymentIntent, error) {
	c, err := loadCart(ctx, s.products, items)
	if err != nil {
		return entities.PaymentIntent{}, err
	}

	totals, err := s.calc.Quote(c.lines, method)
	if err != nil {
		return entities.PaymentIntent{}, quoteError(err)
	}

	intent, err := s.gateway.CreateIntent(ctx, pricing.MinorUnits(totals.Total), s.currency, map[string]string{
		"shipping_policy": s.calc.Policy(),
		"subtotal":        totals.Subtotal.StringFixed(2),
	})
	if err != nil {
		return entities.PaymentIntent{}, fmt.Errorf("failed to create payment intent: %w", err)
	}

	intent.Amount = totals.Total
	intent.Currency = s.currency
	return intent, nil
}

// HandleWebhook applies a verified gateway event to the payment and its order.
// Events are processed at most once and never move a paid payment backwards.
func (s *paymentService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.gateway.ParseEvent(payload, signature)
	if err != nil {
		return fmt.Errorf("%w: %w", entities.ErrInvalidSignature, err)
	}

	logger := s.logger.With(slog.String("event_id", event.ID), slog.String("type", event.Type))

	var target entities.PaymentStatus
	switch event.Type {
	case entities.PaymentEventSucceeded:
		target = entities.PaymentPaid
	case entities.PaymentEventFailed:
		target = entities.PaymentFailed
	default:
		logger.Debug("webhook event ignored")
		return nil
	}

	var updated entities.Order
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		fresh, err := s.payments.MarkEventProcessed(ctx, event.ID, event.Type)
		if err != nil {
			return err
		}
		if !fresh {
			logger.Info("duplicate webhook event")
			return nil
		}

		payment, err := s.payments.FindByExternalRefForUpdate(ctx, event.PaymentIntentID)
		if errors.Is(err, entities.ErrPaymentNotFound) {
			// событие всё равно помечено обработанным, повторная доставка ничего не изменит
			logger.Warn("webhook for unknown payment", slog.String("payment_intent", event.PaymentIntentID))
			return nil
		}
		if err != nil {
			return err
		}

		if payment.Status == target {
			return nil
		}
		if !payment.Status.CanTransitionTo(target) {
			logger.Warn("payment transition skipped",
				slog.String("payment_id", payment.ID),
				slog.String("from", string(payment.Status)),
				slog.String("to", string(target)),
			)
			return nil
		}

		if err := s.payments.UpdatePaymentStatus(ctx, payment.ID, target); err != nil {
			return err
		}
		if err := s.orders.UpdatePaymentStatus(ctx, payment.OrderID, target); err != nil {
			return err
		}
		updated, err = s.orders.GetOrder(ctx, payment.OrderID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to apply webhook event: %w", err)
	}

	if updated.ID != "" {
		s.cache.Set(updated.ID, updated)
		logger.Info("payment status updated", slog.String("order_id", updated.ID), slog.String("status", string(target)))
	}
	return nil
}
