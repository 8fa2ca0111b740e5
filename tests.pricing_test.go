package main

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSubtotal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		items    []CartItem
		expected string
	}{
		{
			name:     "empty cart",
			items:    nil,
			expected: "0",
		},
		{
			name: "single line single unit",
			items: []CartItem{
				{ID: 1, Price: decimal.RequireFromString("13.99"), Quantity: 1},
			},
			expected: "13.99",
		},
		{
			name: "single line multiple units",
			items: []CartItem{
				{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 3},
			},
			expected: "30",
		},
		{
			name: "multiple lines",
			items: []CartItem{
				{ID: 1, Price: decimal.RequireFromString("9.99"), Quantity: 1},
				{ID: 2, Price: decimal.RequireFromString("14.50"), Quantity: 2},
			},
			expected: "38.99",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, Subtotal(tc.items).Equal(decimal.RequireFromString(tc.expected)))
		})
	}
}

func TestTaxAmount(t *testing.T) {
	t.Parallel()
	items := []CartItem{
		{ID: 1, Price: decimal.RequireFromString("9.99"), Quantity: 1},
		{ID: 2, Price: decimal.RequireFromString("14.50"), Quantity: 2},
	}
	// 8% of 38.99 kept at full precision.
	assert.True(t, TaxAmount(items).Equal(decimal.RequireFromString("3.1192")))
}

func TestShippingAmount(t *testing.T) {
	t.Parallel()
	// shipping stays zero below and above the advertised threshold.
	assert.True(t, ShippingAmount(nil).IsZero())
	assert.True(t, ShippingAmount([]CartItem{
		{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 1},
	}).IsZero())
	assert.True(t, ShippingAmount([]CartItem{
		{ID: 1, Price: decimal.RequireFromString("100.00"), Quantity: 5},
	}).IsZero())
}

func TestTotal(t *testing.T) {
	t.Parallel()
	items := []CartItem{
		{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 3},
	}
	total := Total(items)
	assert.True(t, total.Equal(Subtotal(items).Add(TaxAmount(items)).Add(ShippingAmount(items))))
	assert.True(t, total.Equal(decimal.RequireFromString("32.40")))
}

func TestTotalItemCount(t *testing.T) {
	t.Parallel()
	items := []CartItem{
		{ID: 1, Quantity: 2},
		{ID: 2, Quantity: 5},
	}
	assert.Equal(t, 7, TotalItemCount(items))
	assert.Equal(t, 0, TotalItemCount(nil))
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		items    []CartItem
		expected CartSummary
	}{
		{
			name:  "empty cart",
			items: nil,
			expected: CartSummary{
				Subtotal:       "0.00",
				TaxAmount:      "0.00",
				ShippingAmount: "0.00",
				Total:          "0.00",
				TotalItemCount: 0,
			},
		},
		{
			name: "round subtotal",
			items: []CartItem{
				{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 3},
			},
			expected: CartSummary{
				Subtotal:       "30.00",
				TaxAmount:      "2.40",
				ShippingAmount: "0.00",
				Total:          "32.40",
				TotalItemCount: 3,
			},
		},
		{
			// tax of 38.99 is 3.1192 so a single rounding at display
			// time must yield 3.12 and keep the total at 42.11.
			name: "rounding happens once at display time",
			items: []CartItem{
				{ID: 1, Price: decimal.RequireFromString("9.99"), Quantity: 1},
				{ID: 2, Price: decimal.RequireFromString("14.50"), Quantity: 2},
			},
			expected: CartSummary{
				Subtotal:       "38.99",
				TaxAmount:      "3.12",
				ShippingAmount: "0.00",
				Total:          "42.11",
				TotalItemCount: 3,
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, Summarize(tc.items))
		})
	}
}
