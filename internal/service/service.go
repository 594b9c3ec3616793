package service

import (
	"context"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
)

type ProductRepo interface {
	GetProduct(ctx context.Context, id string) (entities.Product, error)
	ProductsByIDs(ctx context.Context, ids []string) (map[string]entities.Product, error)

	// DecrementStock возвращает false, если остатка не хватило; строка при этом не меняется
	DecrementStock(ctx context.Context, productID, size string, qty int) (bool, error)
	IncrementStock(ctx context.Context, productID, size string, qty int) error
	SetStock(ctx context.Context, productID, size string, stock int) error
}

type OrderRepo interface {
	GetOrder(ctx context.Context, id string) (entities.Order, error)
	GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error)
	FindByIdempotencyKey(ctx context.Context, key string) (entities.Order, error)
	ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error)

	CreateAddress(ctx context.Context, a entities.Address) error
	CreateOrder(ctx context.Context, o entities.Order) error
	UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) error
	UpdateShipping(ctx context.Context, id string, upd entities.ShippingUpdate, shippedAt time.Time) error
	UpdatePaymentStatus(ctx context.Context, id string, status entities.PaymentStatus) error
}

type PaymentRepo interface {
	CreatePayment(ctx context.Context, p entities.Payment) error
	FindByExternalRefForUpdate(ctx context.Context, ref string) (entities.Payment, error)
	UpdatePaymentStatus(ctx context.Context, id string, status entities.PaymentStatus) error
	MarkEventProcessed(ctx context.Context, eventID, eventType string) (bool, error)
}

type Outbox interface {
	Enqueue(ctx context.Context, msg entities.OutboxMessage) error
}

// Cache holds orders by id. Reads fill it with Add and never replace an entry;
// writes store the committed order with Set.
type Cache interface {
	Get(key string) (entities.Order, bool)
	Add(key string, order entities.Order) bool
	Set(key string, order entities.Order)
}

// PaymentGateway is the external payment provider.
type PaymentGateway interface {
	Provider() string
	CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (entities.PaymentIntent, error)
	// ParseEvent verifies the webhook signature and decodes the event.
	ParseEvent(payload []byte, signature string) (entities.PaymentEvent, error)
}

var readRetry = utils.RetryConfig{
	InitialDelay: 50 * time.Millisecond,
	MaxAttempts:  3,
	Multiplier:   2,
}
