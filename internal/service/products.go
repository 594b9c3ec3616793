package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
)

type productService struct {
	logger   *slog.Logger
	products ProductRepo
}

func NewProductService(logger *slog.Logger, products ProductRepo) *productService {
	return &productService{
		logger:   logger.With(slog.String("service", "product")),
		products: products,
	}
}

func (s *productService) GetProduct(ctx context.Context, id string) (entities.Product, error) {
	return s.products.GetProduct(ctx, id)
}

// SetStock overwrites the stock of a size, or of the product itself when size is empty.
func (s *productService) SetStock(ctx context.Context, id, size string, stock int) (entities.Product, error) {
	if stock < 0 {
		return entities.Product{}, entities.NewValidationError("stock", "must not be negative")
	}

	if err := s.products.SetStock(ctx, id, size, stock); err != nil {
		return entities.Product{}, fmt.Errorf("failed to set stock: %w", err)
	}

	s.logger.Info("stock set", slog.String("product_id", id), slog.String("size", size), slog.Int("stock", stock))
	return s.products.GetProduct(ctx, id)
}
