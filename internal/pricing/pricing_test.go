package pricing_test

import (
	"testing"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/pricing"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculator_Quote(t *testing.T) {
	testCases := []struct {
		name   string
		policy pricing.ShippingPolicy
		items  []pricing.LineItem
		method entities.ShippingMethod
		want   pricing.Totals
	}{
		{
			name:   "standard flat rate",
			policy: pricing.DefaultFlatRate(),
			items:  []pricing.LineItem{{Price: dec("25.00"), Quantity: 2}},
			method: entities.ShippingStandard,
			want: pricing.Totals{
				Subtotal: dec("50.00"), Tax: dec("5.75"), ShippingCost: dec("5.00"), Total: dec("60.75"),
			},
		},
		{
			name:   "express flat rate",
			policy: pricing.DefaultFlatRate(),
			items:  []pricing.LineItem{{Price: dec("10.00"), Quantity: 1}, {Price: dec("3.33"), Quantity: 3}},
			method: entities.ShippingExpress,
			want: pricing.Totals{
				Subtotal: dec("19.99"), Tax: dec("2.30"), ShippingCost: dec("15.00"), Total: dec("37.29"),
			},
		},
		{
			name:   "threshold below limit",
			policy: pricing.DefaultThreshold(),
			items:  []pricing.LineItem{{Price: dec("99.99"), Quantity: 1}},
			method: entities.ShippingExpress,
			want: pricing.Totals{
				Subtotal: dec("99.99"), Tax: dec("11.50"), ShippingCost: dec("10.00"), Total: dec("121.49"),
			},
		},
		{
			name:   "threshold reached ships free",
			policy: pricing.DefaultThreshold(),
			items:  []pricing.LineItem{{Price: dec("50.00"), Quantity: 2}},
			method: entities.ShippingStandard,
			want: pricing.Totals{
				Subtotal: dec("100.00"), Tax: dec("11.50"), ShippingCost: dec("0"), Total: dec("111.50"),
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := pricing.NewCalculator(tc.policy).Quote(tc.items, tc.method)
			require.NoError(t, err)

			assert.True(t, tc.want.Subtotal.Equal(got.Subtotal), "subtotal %s", got.Subtotal)
			assert.True(t, tc.want.Tax.Equal(got.Tax), "tax %s", got.Tax)
			assert.True(t, tc.want.ShippingCost.Equal(got.ShippingCost), "shipping %s", got.ShippingCost)
			assert.True(t, tc.want.Total.Equal(got.Total), "total %s", got.Total)
		})
	}
}

func TestCalculator_QuoteInvariants(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultFlatRate())

	prices := []string{"0.01", "0.99", "1.05", "7.77", "19.95", "249.50", "1000.00"}
	for _, p := range prices {
		for qty := 1; qty <= 7; qty++ {
			items := []pricing.LineItem{
				{Price: dec(p), Quantity: qty},
				{Price: dec("2.49"), Quantity: 1},
			}
			got, err := calc.Quote(items, entities.ShippingStandard)
			require.NoError(t, err)

			wantSubtotal := dec(p).Mul(decimal.NewFromInt(int64(qty))).Add(dec("2.49")).Round(2)
			assert.True(t, wantSubtotal.Equal(got.Subtotal))
			assert.True(t, got.Subtotal.Mul(pricing.TaxRate).Round(2).Equal(got.Tax))
			assert.True(t, got.Subtotal.Add(got.Tax).Add(got.ShippingCost).Equal(got.Total))
		}
	}
}

func TestCalculator_QuoteErrors(t *testing.T) {
	calc := pricing.NewCalculator(pricing.DefaultFlatRate())

	_, err := calc.Quote(nil, entities.ShippingStandard)
	assert.ErrorIs(t, err, pricing.ErrInvalidLineItem)

	_, err = calc.Quote([]pricing.LineItem{{Price: dec("1"), Quantity: 0}}, entities.ShippingStandard)
	assert.ErrorIs(t, err, pricing.ErrInvalidLineItem)

	_, err = calc.Quote([]pricing.LineItem{{Price: dec("-1"), Quantity: 1}}, entities.ShippingStandard)
	assert.ErrorIs(t, err, pricing.ErrInvalidLineItem)

	_, err = calc.Quote([]pricing.LineItem{{Price: dec("1"), Quantity: 1}}, "drone")
	assert.ErrorIs(t, err, pricing.ErrUnknownShippingMethod)
}

func TestPolicyByName(t *testing.T) {
	p, err := pricing.PolicyByName("threshold")
	require.NoError(t, err)
	assert.Equal(t, "threshold", p.Name())

	p, err = pricing.PolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, "flat", p.Name())

	_, err = pricing.PolicyByName("free-for-all")
	assert.ErrorIs(t, err, pricing.ErrUnknownPolicy)
}

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(6075), pricing.MinorUnits(dec("60.75")))
	assert.Equal(t, int64(100), pricing.MinorUnits(dec("1")))
}
