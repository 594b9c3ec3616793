// Package pricing computes order totals from line items and a shipping policy.
package pricing

import (
	"errors"
	"fmt"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/shopspring/decimal"
)

// TaxRate is the flat sales tax applied to every order subtotal.
var TaxRate = decimal.RequireFromString("0.115")

var (
	ErrInvalidLineItem       = errors.New("invalid line item")
	ErrUnknownShippingMethod = errors.New("unknown shipping method")
	ErrUnknownPolicy         = errors.New("unknown shipping policy")
)

type LineItem struct {
	Price    decimal.Decimal
	Quantity int
}

type Totals struct {
	Subtotal     decimal.Decimal
	Tax          decimal.Decimal
	ShippingCost decimal.Decimal
	Total        decimal.Decimal
}

// ShippingPolicy prices delivery for an order.
type ShippingPolicy interface {
	Name() string
	Cost(method entities.ShippingMethod, subtotal decimal.Decimal) (decimal.Decimal, error)
}

// FlatRate charges a fixed fee per shipping method.
type FlatRate struct {
	Standard decimal.Decimal
	Express  decimal.Decimal
}

func (FlatRate) Name() string { return "flat" }

func (p FlatRate) Cost(method entities.ShippingMethod, _ decimal.Decimal) (decimal.Decimal, error) {
	switch method {
	case entities.ShippingStandard, "":
		return p.Standard, nil
	case entities.ShippingExpress:
		return p.Express, nil
	}
	return decimal.Zero, fmt.Errorf("%w: %q", ErrUnknownShippingMethod, method)
}

// FreeOverThreshold ships for free once the subtotal reaches Threshold.
type FreeOverThreshold struct {
	Threshold decimal.Decimal
	Fee       decimal.Decimal
}

func (FreeOverThreshold) Name() string { return "threshold" }

func (p FreeOverThreshold) Cost(_ entities.ShippingMethod, subtotal decimal.Decimal) (decimal.Decimal, error) {
	if subtotal.GreaterThanOrEqual(p.Threshold) {
		return decimal.Zero, nil
	}
	return p.Fee, nil
}

func DefaultFlatRate() FlatRate {
	return FlatRate{Standard: decimal.NewFromInt(5), Express: decimal.NewFromInt(15)}
}

func DefaultThreshold() FreeOverThreshold {
	return FreeOverThreshold{Threshold: decimal.NewFromInt(100), Fee: decimal.NewFromInt(10)}
}

// PolicyByName resolves a configured policy name.
func PolicyByName(name string) (ShippingPolicy, error) {
	switch name {
	case "flat", "":
		return DefaultFlatRate(), nil
	case "threshold":
		return DefaultThreshold(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

type Calculator struct {
	taxRate  decimal.Decimal
	shipping ShippingPolicy
}

func NewCalculator(shipping ShippingPolicy) *Calculator {
	return &Calculator{
		taxRate:  TaxRate,
		shipping: shipping,
	}
}

func (c *Calculator) Policy() string {
	return c.shipping.Name()
}

func (c *Calculator) Quote(items []LineItem, method entities.ShippingMethod) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, fmt.Errorf("%w: no items", ErrInvalidLineItem)
	}

	subtotal := decimal.Zero
	for i, it := range items {
		if it.Quantity <= 0 {
			return Totals{}, fmt.Errorf("%w: item %d has quantity %d", ErrInvalidLineItem, i, it.Quantity)
		}
		if it.Price.IsNegative() {
			return Totals{}, fmt.Errorf("%w: item %d has negative price", ErrInvalidLineItem, i)
		}
		subtotal = subtotal.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	subtotal = subtotal.Round(2)

	shipping, err := c.shipping.Cost(method, subtotal)
	if err != nil {
		return Totals{}, err
	}
	shipping = shipping.Round(2)

	tax := subtotal.Mul(c.taxRate).Round(2)

	return Totals{
		Subtotal:     subtotal,
		Tax:          tax,
		ShippingCost: shipping,
		Total:        subtotal.Add(tax).Add(shipping).Round(2),
	}, nil
}

// MinorUnits converts an amount to cents for payment gateways.
func MinorUnits(amount decimal.Decimal) int64 {
	return amount.Shift(2).Round(0).IntPart()
}
