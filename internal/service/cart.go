package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/pricing"
	"github.com/SergeyBogomolovv/storefront-service/pkg/utils"
)

type stockLine struct {
	ProductID string
	Size      string
	Quantity  int
}

// cart is a checkout request resolved against the catalog.
type cart struct {
	lines []pricing.LineItem
	items []entities.OrderItem
	// суммарный спрос по (товар, размер), отсортирован для одинакового порядка блокировок
	demand []stockLine
}

// loadCart prices the requested items from the catalog and checks that
// every product/size exists and has enough stock.
func loadCart(ctx context.Context, products ProductRepo, requested []entities.CheckoutItem) (cart, error) {
	if len(requested) == 0 {
		return cart{}, entities.NewValidationError("items", "at least one item is required")
	}

	ids := make([]string, 0, len(requested))
	seen := make(map[string]struct{}, len(requested))
	for i, it := range requested {
		if it.ProductID == "" {
			return cart{}, entities.NewValidationError(fmt.Sprintf("items[%d].productId", i), "required")
		}
		if it.Quantity <= 0 {
			return cart{}, entities.NewValidationError(fmt.Sprintf("items[%d].quantity", i), "must be positive")
		}
		if _, ok := seen[it.ProductID]; !ok {
			seen[it.ProductID] = struct{}{}
			ids = append(ids, it.ProductID)
		}
	}

	var catalog map[string]entities.Product
	err := utils.Retry(ctx, readRetry, func() error {
		var err error
		catalog, err = products.ProductsByIDs(ctx, ids)
		return err
	}, context.Canceled, context.DeadlineExceeded)
	if err != nil {
		return cart{}, fmt.Errorf("failed to load products: %w", err)
	}

	c := cart{
		lines: make([]pricing.LineItem, 0, len(requested)),
		items: make([]entities.OrderItem, 0, len(requested)),
	}
	totals := make(map[stockLine]int)

	for i, it := range requested {
		p, ok := catalog[it.ProductID]
		if !ok {
			return cart{}, entities.NewValidationError(fmt.Sprintf("items[%d].productId", i), "unknown product")
		}
		if err := checkSize(p, it.Size); err != nil {
			return cart{}, entities.NewValidationError(fmt.Sprintf("items[%d].size", i), err.Error())
		}

		c.lines = append(c.lines, pricing.LineItem{Price: p.Price, Quantity: it.Quantity})
		c.items = append(c.items, entities.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			Size:        it.Size,
			Quantity:    it.Quantity,
			Price:       p.Price,
		})
		totals[stockLine{ProductID: p.ID, Size: it.Size}] += it.Quantity
	}

	c.demand = make([]stockLine, 0, len(totals))
	for line, qty := range totals {
		line.Quantity = qty
		c.demand = append(c.demand, line)
	}
	sortStockLines(c.demand)

	for _, d := range c.demand {
		available, _ := catalog[d.ProductID].Available(d.Size)
		if available < d.Quantity {
			return cart{}, &entities.InsufficientStockError{
				ProductID: d.ProductID,
				Size:      d.Size,
				Requested: d.Quantity,
				Available: available,
			}
		}
	}

	return c, nil
}

func checkSize(p entities.Product, size string) error {
	if _, ok := p.Available(size); ok {
		return nil
	}
	switch {
	case p.HasSizes && size == "":
		return errors.New("required for this product")
	case !p.HasSizes:
		return errors.New("product has no sizes")
	default:
		return errors.New("unknown size")
	}
}

func sortStockLines(lines []stockLine) {
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].ProductID != lines[j].ProductID {
			return lines[i].ProductID < lines[j].ProductID
		}
		return lines[i].Size < lines[j].Size
	})
}

// quoteError converts calculator errors into request validation errors.
func quoteError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrUnknownShippingMethod):
		return entities.NewValidationError("shippingMethod", "unknown shipping method")
	case errors.Is(err, pricing.ErrInvalidLineItem):
		return entities.NewValidationError("items", err.Error())
	}
	return fmt.Errorf("failed to price order: %w", err)
}
