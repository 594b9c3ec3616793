package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (s *orderService) GetOrder(ctx context.Context, id string, who entities.Identity) (entities.Order, error) {
	order, err := s.getOrder(ctx, id)
	if err != nil {
		return entities.Order{}, err
	}
	if !order.VisibleTo(who) {
		return entities.Order{}, entities.ErrForbidden
	}
	return order, nil
}

// getOrder читает заказ через кэш.
func (s *orderService) getOrder(ctx context.Context, id string) (entities.Order, error) {
	if order, ok := s.cache.Get(id); ok {
		return order, nil
	}

	var order entities.Order
	fn := func() error {
		var err error
		order, err = s.orders.GetOrder(ctx, id)
		return err
	}
	if err := utils.Retry(ctx, readRetry, fn, entities.ErrOrderNotFound, context.Canceled); err != nil {
		return entities.Order{}, err
	}

	s.cache.Add(id, order)
	return order, nil
}

// ListOrders returns the caller's orders; admins see every order.
func (s *orderService) ListOrders(ctx context.Context, who entities.Identity, filter entities.OrderFilter) ([]entities.Order, error) {
	if !who.Authenticated() {
		return nil, entities.ErrUnauthorized
	}
	if !who.IsAdmin() {
		filter.UserID = who.UserID
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, entities.NewValidationError("status", "unknown status")
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	filter.Limit = min(filter.Limit, maxListLimit)
	filter.Offset = max(filter.Offset, 0)

	orders, err := s.orders.ListOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus moves an order through its lifecycle. Cancelling returns the
// ordered quantities to stock in the same transaction.
func (s *orderService) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) (entities.Order, error) {
	if !status.Valid() {
		return entities.Order{}, entities.NewValidationError("status", "unknown status")
	}

	var updated entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: %s -> %s", entities.ErrInvalidTransition, order.Status, status)
		}

		if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
			return err
		}
		if status == entities.OrderStatusCancelled {
			if err := s.restock(ctx, order.Items); err != nil {
				return err
			}
		}

		updated, err = s.orders.GetOrder(ctx, id)
		return err
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to update order status: %w", err)
	}
	s.cache.Set(id, updated)

	s.logger.Info("order status changed", slog.String("order_id", id), slog.String("status", string(status)))
	return updated, nil
}

func (s *orderService) restock(ctx context.Context, items []entities.OrderItem) error {
	lines := make([]stockLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, stockLine{ProductID: it.ProductID, Size: it.Size, Quantity: it.Quantity})
	}
	sortStockLines(lines)

	for _, l := range lines {
		if err := s.products.IncrementStock(ctx, l.ProductID, l.Size, l.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// UpdateShipping records tracking data and marks the order shipped.
func (s *orderService) UpdateShipping(ctx context.Context, id string, upd entities.ShippingUpdate) (entities.Order, error) {
	upd.Carrier = strings.TrimSpace(upd.Carrier)
	upd.TrackingNumber = strings.TrimSpace(upd.TrackingNumber)
	if upd.Carrier == "" {
		return entities.Order{}, entities.NewValidationError("carrier", "required")
	}
	if upd.TrackingNumber == "" {
		return entities.Order{}, entities.NewValidationError("trackingNumber", "required")
	}

	var updated entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		order, err := s.orders.GetOrderForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(entities.OrderStatusShipped) {
			return fmt.Errorf("%w: %s -> %s", entities.ErrInvalidTransition, order.Status, entities.OrderStatusShipped)
		}

		if err := s.orders.UpdateShipping(ctx, id, upd, s.now().UTC()); err != nil {
			return err
		}

		updated, err = s.orders.GetOrder(ctx, id)
		return err
	})
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to update shipping: %w", err)
	}
	s.cache.Set(id, updated)

	s.logger.Info("order shipped", slog.String("order_id", id), slog.String("carrier", upd.Carrier))
	return updated, nil
}

// WarmUpCache loads the latest orders into the cache.
func (s *orderService) WarmUpCache(ctx context.Context, count int) error {
	orders, err := s.orders.ListOrders(ctx, entities.OrderFilter{Limit: count})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return fmt.Errorf("failed to warm up cache: %w", err)
	}

	for _, order := range orders {
		s.cache.Add(order.ID, order)
	}
	s.logger.Info("cache warmed up", slog.Int("orders", len(orders)))
	return nil
}
