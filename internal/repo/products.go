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

type productRepo struct {
	base
}

func NewProductRepo(db *sqlx.DB) *productRepo {
	return &productRepo{base: newBase(db)}
}

var productColumns = []string{"id", "name", "price", "has_sizes", "stock"}

func (r *productRepo) GetProduct(ctx context.Context, id string) (entities.Product, error) {
	products, err := r.ProductsByIDs(ctx, []string{id})
	if err != nil {
		return entities.Product{}, err
	}
	product, ok := products[id]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	return product, nil
}

// ProductsByIDs loads products with their sizes. Unknown ids are absent from the result.
func (r *productRepo) ProductsByIDs(ctx context.Context, ids []string) (map[string]entities.Product, error) {
	ids = uuidsOnly(ids)
	if len(ids) == 0 {
		return map[string]entities.Product{}, nil
	}

	query, args := r.qb.Select(productColumns...).
		From("products").
		Where(sq.Eq{"id": ids}).
		MustSql()

	var products []Product
	if err := r.selectContext(ctx, &products, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select products: %w", err)
	}

	query, args = r.qb.Select("product_id", "size", "stock").
		From("product_sizes").
		Where(sq.Eq{"product_id": ids}).
		OrderBy("product_id", "size").
		MustSql()

	var sizes []ProductSize
	if err := r.selectContext(ctx, &sizes, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select product sizes: %w", err)
	}
	sizesMap := make(map[string][]ProductSize, len(products))
	for _, s := range sizes {
		sizesMap[s.ProductID] = append(sizesMap[s.ProductID], s)
	}

	result := make(map[string]entities.Product, len(products))
	for _, p := range products {
		result[p.ID] = ProductToEntity(p, sizesMap[p.ID])
	}
	return result, nil
}

// DecrementStock atomically takes qty units. It reports false when the row
// does not have enough stock, leaving it untouched.
func (r *productRepo) DecrementStock(ctx context.Context, productID, size string, qty int) (bool, error) {
	query, args := r.stockUpdate(productID, size, sq.Expr("stock - ?", qty)).
		Where(sq.GtOrEq{"stock": qty}).
		MustSql()

	n, err := r.affected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to decrement stock: %w", err)
	}
	return n == 1, nil
}

func (r *productRepo) IncrementStock(ctx context.Context, productID, size string, qty int) error {
	query, args := r.stockUpdate(productID, size, sq.Expr("stock + ?", qty)).MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to increment stock: %w", err)
	}
	return nil
}

func (r *productRepo) SetStock(ctx context.Context, productID, size string, stock int) error {
	if !isUUID(productID) {
		return entities.ErrProductNotFound
	}
	query, args := r.stockUpdate(productID, size, stock).MustSql()

	n, err := r.affected(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to set stock: %w", err)
	}
	if n == 0 {
		return r.missingStockRow(ctx, productID, size)
	}
	return nil
}

func (r *productRepo) stockUpdate(productID, size string, value any) sq.UpdateBuilder {
	if size != "" {
		return r.qb.Update("product_sizes").
			Set("stock", value).
			Where(sq.Eq{"product_id": productID, "size": size})
	}
	return r.qb.Update("products").
		Set("stock", value).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": productID, "has_sizes": false})
}

// missingStockRow explains why a stock update matched nothing.
func (r *productRepo) missingStockRow(ctx context.Context, productID, size string) error {
	query, args := r.qb.Select("has_sizes").From("products").Where(sq.Eq{"id": productID}).MustSql()

	var hasSizes bool
	err := r.getContext(ctx, &hasSizes, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get product: %w", err)
	}
	if hasSizes && size == "" {
		return entities.NewValidationError("size", "required for sized product")
	}
	if hasSizes {
		return entities.NewValidationError("size", "unknown size")
	}
	return entities.NewValidationError("size", "product has no sizes")
}
