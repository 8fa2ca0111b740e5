package main

import "github.com/shopspring/decimal"

// Flat tax rate applied on every cart subtotal.
var taxRate = decimal.New(8, -2)

// FreeShippingThreshold is the amount above which the storefront advertises
// free shipping. It is informational only: the computed shipping amount is
// zero for every order regardless of its size. Do not turn this constant
// into an enforcement rule without a product decision.
var FreeShippingThreshold = decimal.NewFromInt(25)

// FreeShippingNotice is the informational text displayed next to the totals.
const FreeShippingNotice = "Free shipping on orders over $25"

// Subtotal computes the sum of price times quantity over the line items.
// The result keeps full precision. Rounding happens once at display time.
func Subtotal(items []CartItem) decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return subtotal
}

// TaxAmount computes the flat 8% tax on the full precision subtotal.
func TaxAmount(items []CartItem) decimal.Decimal {
	return Subtotal(items).Mul(taxRate)
}

// ShippingAmount always returns zero. The storefront observes a flat free
// shipping policy even below the advertised threshold.
func ShippingAmount(_ []CartItem) decimal.Decimal {
	return decimal.Zero
}

// Total computes subtotal plus tax plus shipping at full precision.
func Total(items []CartItem) decimal.Decimal {
	return Subtotal(items).Add(TaxAmount(items)).Add(ShippingAmount(items))
}

// TotalItemCount computes the sum of line item quantities.
func TotalItemCount(items []CartItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// CartSummary carries the display-ready totals of a cart. Amounts are
// rounded to 2 fractional digits here and only here.
type CartSummary struct {
	Subtotal       string `json:"subtotal"`
	TaxAmount      string `json:"taxAmount"`
	ShippingAmount string `json:"shippingAmount"`
	Total          string `json:"total"`
	TotalItemCount int    `json:"totalItemCount"`
}

// Summarize computes all derived totals from the line items and performs
// the single display rounding pass on each amount independently.
func Summarize(items []CartItem) CartSummary {
	return CartSummary{
		Subtotal:       Subtotal(items).StringFixed(2),
		TaxAmount:      TaxAmount(items).StringFixed(2),
		ShippingAmount: ShippingAmount(items).StringFixed(2),
		Total:          Total(items).StringFixed(2),
		TotalItemCount: TotalItemCount(items),
	}
}
