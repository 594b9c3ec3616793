package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusConfirmed, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusConfirmed,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether an admin may move an order from s to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

// Customer holds the contact data of whoever placed the order.
// For guest orders it is persisted on the order row itself.
type Customer struct {
	Name  string
	Email string
	Phone string
}

type Address struct {
	ID         string
	UserID     string
	FullName   string
	Phone      string
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
}

type OrderItem struct {
	ID          string
	ProductID   string
	ProductName string
	Size        string
	Quantity    int
	Price       decimal.Decimal
}

func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Order struct {
	ID     string
	UserID string

	// заполняется только для гостевых заказов
	Customer Customer

	AddressID string
	Shipping  Address

	ShippingMethod ShippingMethod
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	ShippingCost   decimal.Decimal
	Total          decimal.Decimal

	Status        OrderStatus
	PaymentStatus PaymentStatus

	Carrier        string
	TrackingNumber string
	ShippedAt      *time.Time

	IdempotencyKey string
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Items   []OrderItem
	Payment Payment
}

func (o Order) IsGuest() bool {
	return o.UserID == ""
}

// VisibleTo reports whether the requester may read the order.
// Guest orders are addressed by their unguessable id only.
func (o Order) VisibleTo(who Identity) bool {
	if o.IsGuest() || who.IsAdmin() {
		return true
	}
	return who.UserID != "" && who.UserID == o.UserID
}

// PlacedBy reports whether the order was placed by the same customer: the same
// account, or for guest orders an anonymous caller with the same contact email.
func (o Order) PlacedBy(who Identity, email string) bool {
	if o.IsGuest() {
		return !who.Authenticated() && strings.EqualFold(o.Customer.Email, email)
	}
	return who.UserID == o.UserID
}

type ShippingUpdate struct {
	Carrier        string
	TrackingNumber string
}

type OrderFilter struct {
	UserID string
	Status OrderStatus
	Limit  int
	Offset int
}
