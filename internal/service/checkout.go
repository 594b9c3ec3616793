package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/pricing"
	"github.com/SergeyBogomolovv/storefront-service/pkg/trm"
	"github.com/google/uuid"
)

type Repositories struct {
	Products ProductRepo
	Orders   OrderRepo
	Payments PaymentRepo
	Outbox   Outbox
}

type orderService struct {
	logger    *slog.Logger
	txManager trm.Manager
	products  ProductRepo
	orders    OrderRepo
	payments  PaymentRepo
	outbox    Outbox
	cache     Cache
	calc      *pricing.Calculator
	provider  string
	currency  string
	now       func() time.Time
}

func NewOrderService(
	logger *slog.Logger,
	txManager trm.Manager,
	repos Repositories,
	cache Cache,
	calc *pricing.Calculator,
	provider, currency string,
) *orderService {
	return &orderService{
		logger:    logger.With(slog.String("service", "order")),
		txManager: txManager,
		products:  repos.Products,
		orders:    repos.Orders,
		payments:  repos.Payments,
		outbox:    repos.Outbox,
		cache:     cache,
		calc:      calc,
		provider:  provider,
		currency:  currency,
		now:       time.Now,
	}
}

// Checkout validates the cart, prices it and persists the order aggregate in one
// transaction, taking stock with conditional decrements. The confirmation email
// is only enqueued; its delivery never affects the result.
func (s *orderService) Checkout(ctx context.Context, req entities.CheckoutRequest) (entities.CheckoutResult, error) {
	if err := validateCheckout(req); err != nil {
		return entities.CheckoutResult{}, err
	}

	if req.IdempotencyKey != "" {
		order, err := s.orders.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if err == nil {
			return s.replay(order, req)
		}
		if !errors.Is(err, entities.ErrOrderNotFound) {
			return entities.CheckoutResult{}, fmt.Errorf("failed to check idempotency key: %w", err)
		}
	}

	c, err := loadCart(ctx, s.products, req.Items)
	if err != nil {
		return entities.CheckoutResult{}, err
	}

	totals, err := s.calc.Quote(c.lines, req.ShippingMethod)
	if err != nil {
		return entities.CheckoutResult{}, quoteError(err)
	}

	order := s.newOrder(req, c, totals)
	msg, err := confirmationMessage(order, req)
	if err != nil {
		return entities.CheckoutResult{}, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		for _, d := range c.demand {
			ok, err := s.products.DecrementStock(ctx, d.ProductID, d.Size, d.Quantity)
			if err != nil {
				return err
			}
			if !ok {
				// остаток забрал параллельный заказ после предварительной проверки
				return &entities.InsufficientStockError{
					ProductID: d.ProductID,
					Size:      d.Size,
					Requested: d.Quantity,
					Available: -1,
				}
			}
		}

		if !order.IsGuest() {
			if err := s.orders.CreateAddress(ctx, order.Shipping); err != nil {
				return err
			}
		}
		if err := s.orders.CreateOrder(ctx, order); err != nil {
			return err
		}
		if err := s.payments.CreatePayment(ctx, order.Payment); err != nil {
			return err
		}
		return s.outbox.Enqueue(ctx, msg)
	})

	if errors.Is(err, entities.ErrDuplicateOrder) {
		existing, ferr := s.orders.FindByIdempotencyKey(ctx, req.IdempotencyKey)
		if ferr != nil {
			return entities.CheckoutResult{}, fmt.Errorf("failed to load concurrent order: %w", ferr)
		}
		return s.replay(existing, req)
	}
	if err != nil {
		return entities.CheckoutResult{}, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.Bool("guest", order.IsGuest()),
		slog.String("total", order.Total.StringFixed(2)),
	)
	return entities.CheckoutResult{Order: order}, nil
}

// replay returns the order stored under the request's idempotency key, but only
// to the customer who placed it.
func (s *orderService) replay(order entities.Order, req entities.CheckoutRequest) (entities.CheckoutResult, error) {
	if !order.PlacedBy(req.Identity, req.ContactEmail()) {
		s.logger.Warn("idempotency key reused by another customer",
			slog.String("order_id", order.ID),
			slog.String("user_id", req.Identity.UserID),
		)
		return entities.CheckoutResult{}, entities.ErrIdempotencyKeyUsed
	}

	s.logger.Info("checkout replayed", slog.String("order_id", order.ID))
	return entities.CheckoutResult{Order: order, Replayed: true}, nil
}

type requiredField struct {
	field, value string
}

func validateCheckout(req entities.CheckoutRequest) error {
	ship := req.Shipping
	required := []requiredField{
		{"shipping.fullName", ship.FullName},
		{"shipping.line1", ship.Line1},
		{"shipping.city", ship.City},
		{"shipping.postalCode", ship.PostalCode},
		{"shipping.country", ship.Country},
		{"payment.paymentIntentId", req.PaymentRef},
	}
	if !req.Identity.Authenticated() {
		required = append(required,
			requiredField{"customer.name", req.Customer.Name},
			requiredField{"customer.email", req.Customer.Email},
		)
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return entities.NewValidationError(r.field, "required")
		}
	}

	switch req.ShippingMethod {
	case "", entities.ShippingStandard, entities.ShippingExpress:
	default:
		return entities.NewValidationError("shippingMethod", "unknown shipping method")
	}

	if len(req.Items) == 0 {
		return entities.NewValidationError("items", "at least one item is required")
	}
	return nil
}

func (s *orderService) newOrder(req entities.CheckoutRequest, c cart, totals pricing.Totals) entities.Order {
	now := s.now().UTC()
	method := req.ShippingMethod
	if method == "" {
		method = entities.ShippingStandard
	}

	order := entities.Order{
		ID:             uuid.NewString(),
		UserID:         req.Identity.UserID,
		Shipping:       req.Shipping,
		ShippingMethod: method,
		Subtotal:       totals.Subtotal,
		Tax:            totals.Tax,
		ShippingCost:   totals.ShippingCost,
		Total:          totals.Total,
		Status:         entities.OrderStatusPending,
		PaymentStatus:  entities.PaymentAwaiting,
		IdempotencyKey: req.IdempotencyKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if order.IsGuest() {
		order.Customer = req.Customer
		order.Shipping.ID = ""
	} else {
		order.Shipping.ID = uuid.NewString()
		order.Shipping.UserID = order.UserID
		order.AddressID = order.Shipping.ID
	}

	order.Items = make([]entities.OrderItem, 0, len(c.items))
	for _, it := range c.items {
		it.ID = uuid.NewString()
		order.Items = append(order.Items, it)
	}

	order.Payment = entities.Payment{
		ID:          uuid.NewString(),
		OrderID:     order.ID,
		Provider:    s.provider,
		ExternalRef: req.PaymentRef,
		Amount:      order.Total,
		Currency:    s.currency,
		Status:      entities.PaymentAwaiting,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return order
}

func confirmationMessage(order entities.Order, req entities.CheckoutRequest) (entities.OutboxMessage, error) {
	name := req.Customer.Name
	if name == "" {
		name = order.Shipping.FullName
	}

	event := entities.OrderConfirmation{
		EventID:      uuid.NewString(),
		OrderID:      order.ID,
		Email:        req.ContactEmail(),
		Name:         name,
		Subtotal:     order.Subtotal.StringFixed(2),
		Tax:          order.Tax.StringFixed(2),
		ShippingCost: order.ShippingCost.StringFixed(2),
		Total:        order.Total.StringFixed(2),
		Shipping: entities.ConfirmationShipAddress{
			FullName:   order.Shipping.FullName,
			Line1:      order.Shipping.Line1,
			Line2:      order.Shipping.Line2,
			City:       order.Shipping.City,
			Region:     order.Shipping.Region,
			PostalCode: order.Shipping.PostalCode,
			Country:    order.Shipping.Country,
		},
	}
	for _, it := range order.Items {
		event.Items = append(event.Items, entities.ConfirmationLine{
			Name:      it.ProductName,
			Size:      it.Size,
			Quantity:  it.Quantity,
			UnitPrice: it.Price.StringFixed(2),
			LineTotal: it.LineTotal().StringFixed(2),
		})
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return entities.OutboxMessage{}, fmt.Errorf("failed to marshal confirmation: %w", err)
	}

	return entities.OutboxMessage{
		EventID: event.EventID,
		Topic:   entities.TopicOrderConfirmation,
		Key:     order.ID,
		Payload: payload,
	}, nil
}
