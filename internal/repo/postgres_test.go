package repo

import (
	"context"
	"fmt"
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Репозитории без подключения: невалидные id не должны доходить до базы.

func TestProductRepo_ProductsByIDs_SkipsMalformedIDs(t *testing.T) {
	products, err := NewProductRepo(nil).ProductsByIDs(context.Background(), []string{"P1", "mug"})

	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestProductRepo_GetProduct_MalformedID(t *testing.T) {
	_, err := NewProductRepo(nil).GetProduct(context.Background(), "P1")

	assert.ErrorIs(t, err, entities.ErrProductNotFound)
}

func TestProductRepo_SetStock_MalformedID(t *testing.T) {
	err := NewProductRepo(nil).SetStock(context.Background(), "P1", "", 3)

	assert.ErrorIs(t, err, entities.ErrProductNotFound)
}

func TestOrderRepo_GetOrder_MalformedID(t *testing.T) {
	repo := NewOrderRepo(nil)

	_, err := repo.GetOrder(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)

	_, err = repo.GetOrderForUpdate(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, entities.ErrOrderNotFound)
}

func TestUUIDsOnly(t *testing.T) {
	got := uuidsOnly([]string{"P1", "11111111-1111-1111-1111-111111111111", "", "22222222-2222-2222-2222-222222222222"})

	assert.Equal(t, []string{"11111111-1111-1111-1111-111111111111", "22222222-2222-2222-2222-222222222222"}, got)
}

func TestIsInvalidText(t *testing.T) {
	assert.True(t, isInvalidText(fmt.Errorf("failed to get order: %w", &pq.Error{Code: invalidText})))
	assert.False(t, isInvalidText(&pq.Error{Code: uniqueViolation}))
	assert.False(t, isInvalidText(nil))
}

func TestOrderRepo_ItemsKeepCartOrder(t *testing.T) {
	repo := NewOrderRepo(nil)
	items := []entities.OrderItem{
		{ID: "i1", ProductID: "33333333-3333-3333-3333-333333333333", ProductName: "Lamp", Quantity: 1, Price: decimal.NewFromInt(40)},
		{ID: "i2", ProductID: "11111111-1111-1111-1111-111111111111", ProductName: "Mug", Size: "L", Quantity: 2, Price: decimal.NewFromInt(10)},
	}

	_, args, err := repo.insertItems("o1", items).ToSql()
	require.NoError(t, err)
	require.Len(t, args, len(items)*len(itemColumns))
	assert.Equal(t, 0, args[len(itemColumns)-1])
	assert.Equal(t, 1, args[2*len(itemColumns)-1])

	query, _, err := repo.selectItems([]string{"o1"}).ToSql()
	require.NoError(t, err)
	assert.Contains(t, query, "ORDER BY order_id, position")
}
