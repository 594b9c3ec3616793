package repo

import (
	"database/sql"
	"testing"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestProductToEntity_SizedStockIsComputed(t *testing.T) {
	p := Product{ID: "p1", Name: "Tee", Price: decimal.NewFromInt(20), HasSizes: true, Stock: 999}
	sizes := []ProductSize{{ProductID: "p1", Size: "S", Stock: 2}, {ProductID: "p1", Size: "M", Stock: 3}}

	got := ProductToEntity(p, sizes)

	assert.Equal(t, 5, got.Stock)
	assert.Len(t, got.Sizes, 2)
}

func TestProductToEntity_PlainKeepsColumn(t *testing.T) {
	got := ProductToEntity(Product{ID: "p2", Stock: 7}, nil)

	assert.Equal(t, 7, got.Stock)
	assert.Nil(t, got.Sizes)
}

func TestOrderToEntity_Guest(t *testing.T) {
	shipped := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	o := Order{
		ID:             "o1",
		GuestName:      sql.NullString{String: "Ann", Valid: true},
		GuestEmail:     sql.NullString{String: "ann@example.com", Valid: true},
		ShipLine1:      sql.NullString{String: "1 Main St", Valid: true},
		ShippingMethod: "express",
		Total:          decimal.RequireFromString("10.50"),
		Status:         "shipped",
		PaymentStatus:  "paid",
		ShippedAt:      sql.NullTime{Time: shipped, Valid: true},
	}
	items := []Item{{ID: "i1", OrderID: "o1", ProductID: "p1", Quantity: 2, Price: decimal.NewFromInt(3)}}

	got := OrderToEntity(o, Payment{ID: "pay1", OrderID: "o1", Status: "paid"}, items)

	assert.True(t, got.IsGuest())
	assert.Equal(t, "ann@example.com", got.Customer.Email)
	assert.Equal(t, "1 Main St", got.Shipping.Line1)
	assert.Equal(t, entities.ShippingExpress, got.ShippingMethod)
	assert.Equal(t, entities.OrderStatusShipped, got.Status)
	assert.Equal(t, entities.PaymentPaid, got.Payment.Status)
	assert.Equal(t, shipped, *got.ShippedAt)
	assert.Len(t, got.Items, 1)
	assert.True(t, got.Items[0].LineTotal().Equal(decimal.NewFromInt(6)))
}

func TestOrderToEntity_NoItems(t *testing.T) {
	got := OrderToEntity(Order{ID: "o2", UserID: sql.NullString{String: "u1", Valid: true}}, Payment{}, nil)

	assert.False(t, got.IsGuest())
	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Nil(t, got.ShippedAt)
}
