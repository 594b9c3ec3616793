package entities

import "github.com/shopspring/decimal"

type ProductSize struct {
	Size  string
	Stock int
}

type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	HasSizes bool
	// для товаров с размерами это сумма по Sizes
	Stock int
	Sizes []ProductSize
}

// Available returns the stock that can be sold for the given size.
// The second value is false when the size does not fit the product.
func (p Product) Available(size string) (int, bool) {
	if !p.HasSizes {
		return p.Stock, size == ""
	}
	for _, s := range p.Sizes {
		if s.Size == size {
			return s.Stock, true
		}
	}
	return 0, false
}

func SumSizes(sizes []ProductSize) int {
	total := 0
	for _, s := range sizes {
		total += s.Stock
	}
	return total
}
