package repo

import (
	"database/sql"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/shopspring/decimal"
)

// Order is an orders row joined with the saved address of authenticated orders.
type Order struct {
	ID             string          `db:"id"`
	UserID         sql.NullString  `db:"user_id"`
	AddressID      sql.NullString  `db:"address_id"`
	GuestName      sql.NullString  `db:"guest_name"`
	GuestEmail     sql.NullString  `db:"guest_email"`
	GuestPhone     sql.NullString  `db:"guest_phone"`
	ShipFullName   sql.NullString  `db:"ship_full_name"`
	ShipPhone      sql.NullString  `db:"ship_phone"`
	ShipLine1      sql.NullString  `db:"ship_line1"`
	ShipLine2      sql.NullString  `db:"ship_line2"`
	ShipCity       sql.NullString  `db:"ship_city"`
	ShipRegion     sql.NullString  `db:"ship_region"`
	ShipPostalCode sql.NullString  `db:"ship_postal_code"`
	ShipCountry    sql.NullString  `db:"ship_country"`
	ShippingMethod string          `db:"shipping_method"`
	Subtotal       decimal.Decimal `db:"subtotal"`
	Tax            decimal.Decimal `db:"tax"`
	ShippingCost   decimal.Decimal `db:"shipping_cost"`
	Total          decimal.Decimal `db:"total"`
	Status         string          `db:"status"`
	PaymentStatus  string          `db:"payment_status"`
	Carrier        sql.NullString  `db:"carrier"`
	TrackingNumber sql.NullString  `db:"tracking_number"`
	ShippedAt      sql.NullTime    `db:"shipped_at"`
	IdempotencyKey sql.NullString  `db:"idempotency_key"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedAt      time.Time       `db:"updated_at"`
}

type Item struct {
	ID          string          `db:"id"`
	OrderID     string          `db:"order_id"`
	ProductID   string          `db:"product_id"`
	ProductName string          `db:"product_name"`
	Size        string          `db:"size"`
	Quantity    int             `db:"quantity"`
	Price       decimal.Decimal `db:"price"`
	Position    int             `db:"position"`
}

type Payment struct {
	ID          string          `db:"id"`
	OrderID     string          `db:"order_id"`
	Provider    string          `db:"provider"`
	ExternalRef string          `db:"external_ref"`
	Amount      decimal.Decimal `db:"amount"`
	Currency    string          `db:"currency"`
	Status      string          `db:"status"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

type Product struct {
	ID       string          `db:"id"`
	Name     string          `db:"name"`
	Price    decimal.Decimal `db:"price"`
	HasSizes bool            `db:"has_sizes"`
	Stock    int             `db:"stock"`
}

type ProductSize struct {
	ProductID string `db:"product_id"`
	Size      string `db:"size"`
	Stock     int    `db:"stock"`
}

type OutboxMessage struct {
	ID      int64  `db:"id"`
	EventID string `db:"event_id"`
	Topic   string `db:"topic"`
	Key     string `db:"key"`
	Payload []byte `db:"payload"`
}

func ItemToEntity(i Item) entities.OrderItem {
	return entities.OrderItem{
		ID:          i.ID,
		ProductID:   i.ProductID,
		ProductName: i.ProductName,
		Size:        i.Size,
		Quantity:    i.Quantity,
		Price:       i.Price,
	}
}

func PaymentToEntity(p Payment) entities.Payment {
	return entities.Payment{
		ID:          p.ID,
		OrderID:     p.OrderID,
		Provider:    p.Provider,
		ExternalRef: p.ExternalRef,
		Amount:      p.Amount,
		Currency:    p.Currency,
		Status:      entities.PaymentStatus(p.Status),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func OrderToEntity(o Order, p Payment, items []Item) entities.Order {
	order := entities.Order{
		ID:        o.ID,
		UserID:    nullStringToString(o.UserID),
		AddressID: nullStringToString(o.AddressID),
		Customer: entities.Customer{
			Name:  nullStringToString(o.GuestName),
			Email: nullStringToString(o.GuestEmail),
			Phone: nullStringToString(o.GuestPhone),
		},
		Shipping: entities.Address{
			ID:         nullStringToString(o.AddressID),
			UserID:     nullStringToString(o.UserID),
			FullName:   nullStringToString(o.ShipFullName),
			Phone:      nullStringToString(o.ShipPhone),
			Line1:      nullStringToString(o.ShipLine1),
			Line2:      nullStringToString(o.ShipLine2),
			City:       nullStringToString(o.ShipCity),
			Region:     nullStringToString(o.ShipRegion),
			PostalCode: nullStringToString(o.ShipPostalCode),
			Country:    nullStringToString(o.ShipCountry),
		},
		ShippingMethod: entities.ShippingMethod(o.ShippingMethod),
		Subtotal:       o.Subtotal,
		Tax:            o.Tax,
		ShippingCost:   o.ShippingCost,
		Total:          o.Total,
		Status:         entities.OrderStatus(o.Status),
		PaymentStatus:  entities.PaymentStatus(o.PaymentStatus),
		Carrier:        nullStringToString(o.Carrier),
		TrackingNumber: nullStringToString(o.TrackingNumber),
		IdempotencyKey: nullStringToString(o.IdempotencyKey),
		CreatedAt:      o.CreatedAt,
		UpdatedAt:      o.UpdatedAt,
		Payment:        PaymentToEntity(p),
	}
	if o.ShippedAt.Valid {
		shippedAt := o.ShippedAt.Time
		order.ShippedAt = &shippedAt
	}

	order.Items = make([]entities.OrderItem, 0, len(items))
	for _, it := range items {
		order.Items = append(order.Items, ItemToEntity(it))
	}

	return order
}

func ProductToEntity(p Product, sizes []ProductSize) entities.Product {
	product := entities.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    p.Price,
		HasSizes: p.HasSizes,
		Stock:    p.Stock,
	}
	if !p.HasSizes {
		return product
	}

	product.Sizes = make([]entities.ProductSize, 0, len(sizes))
	for _, s := range sizes {
		product.Sizes = append(product.Sizes, entities.ProductSize{Size: s.Size, Stock: s.Stock})
	}
	product.Stock = entities.SumSizes(product.Sizes)
	return product
}

func nullStringToString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
