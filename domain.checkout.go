package main

import (
	"context"

	"github.com/shopspring/decimal"
)

// CheckoutState tells where a session stands inside the checkout flow.
type CheckoutState string

const (
	StateCart         CheckoutState = "cart"
	StateCheckoutForm CheckoutState = "checkout-form"
	StateConfirmed    CheckoutState = "confirmed"
)

// OrderSnapshot is the immutable copy of the cart taken when checkout
// begins. The amounts keep full precision, display rounding happens when
// the snapshot is turned into an order. It never shares storage with the
// live cart, so aborting the flow cannot leak mutations back.
type OrderSnapshot struct {
	Items          []CartItem
	Subtotal       decimal.Decimal
	TaxAmount      decimal.Decimal
	ShippingAmount decimal.Decimal
	Total          decimal.Decimal
	TotalItemCount int
}

// TakeOrderSnapshot captures the given line items and their derived
// totals. The caller passes an already detached copy of the items.
func TakeOrderSnapshot(items []CartItem) OrderSnapshot {
	return OrderSnapshot{
		Items:          items,
		Subtotal:       Subtotal(items),
		TaxAmount:      TaxAmount(items),
		ShippingAmount: ShippingAmount(items),
		Total:          Total(items),
		TotalItemCount: TotalItemCount(items),
	}
}

// CheckoutFlow is the cart to confirmation state machine of one session.
// Transitions: cart -> checkout-form (guarded on a non-empty snapshot),
// checkout-form -> cart (abort), checkout-form -> confirmed (submission).
type CheckoutFlow struct {
	state    CheckoutState
	snapshot *OrderSnapshot
}

// NewCheckoutFlow provides a flow in its initial cart state.
func NewCheckoutFlow() *CheckoutFlow {
	return &CheckoutFlow{state: StateCart}
}

// State returns the current flow state.
func (f *CheckoutFlow) State() CheckoutState {
	return f.state
}

// Begin enters the checkout form with the given snapshot. It refuses with
// ErrCartEmpty when the snapshot holds no line item and leaves the flow in
// its prior state. A previously confirmed flow starts over.
func (f *CheckoutFlow) Begin(snapshot OrderSnapshot) error {
	if f.state == StateCheckoutForm {
		return ErrCheckoutInProgress
	}
	if len(snapshot.Items) == 0 {
		return ErrCartEmpty
	}
	f.snapshot = &snapshot
	f.state = StateCheckoutForm
	return nil
}

// Abort leaves the checkout form and discards the snapshot without any
// other effect. Aborting outside the form is a no-op.
func (f *CheckoutFlow) Abort() {
	if f.state != StateCheckoutForm {
		return
	}
	f.snapshot = nil
	f.state = StateCart
}

// Snapshot returns the order snapshot captured at checkout entry.
func (f *CheckoutFlow) Snapshot() (OrderSnapshot, error) {
	if f.state != StateCheckoutForm || f.snapshot == nil {
		return OrderSnapshot{}, ErrNotInCheckout
	}
	return *f.snapshot, nil
}

// Complete marks the flow confirmed after a successful order submission
// and discards the snapshot. Only valid from the checkout form.
func (f *CheckoutFlow) Complete() error {
	if f.state != StateCheckoutForm {
		return ErrNotInCheckout
	}
	f.snapshot = nil
	f.state = StateConfirmed
	return nil
}

// OrderForm carries the customer and shipping fields of the checkout form.
// Field validation belongs to the submission side, not to the cart engine.
type OrderForm struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	City     string `json:"city"`
	ZipCode  string `json:"zipCode"`
	Country  string `json:"country"`
}

// Order is a confirmed order built from a checkout snapshot. Amounts are
// display-rounded since the order is what customers and ops read back.
type Order struct {
	ID             string     `json:"id"`
	SessionID      string     `json:"sessionId"`
	Items          []CartItem `json:"items"`
	Subtotal       string     `json:"subtotal"`
	TaxAmount      string     `json:"taxAmount"`
	ShippingAmount string     `json:"shippingAmount"`
	Total          string     `json:"total"`
	TotalItemCount int        `json:"totalItemCount"`
	Customer       OrderForm  `json:"customer"`
	CreatedAt      string     `json:"createdAt"`
}

// BuildOrder turns a checkout snapshot into an order ready for submission.
func BuildOrder(id, sessionID string, snapshot OrderSnapshot, form OrderForm, createdAt string) Order {
	return Order{
		ID:             id,
		SessionID:      sessionID,
		Items:          snapshot.Items,
		Subtotal:       snapshot.Subtotal.StringFixed(2),
		TaxAmount:      snapshot.TaxAmount.StringFixed(2),
		ShippingAmount: snapshot.ShippingAmount.StringFixed(2),
		Total:          snapshot.Total.StringFixed(2),
		TotalItemCount: snapshot.TotalItemCount,
		Customer:       form,
		CreatedAt:      createdAt,
	}
}

// OrderSubmitter is the external order submission collaborator. The cart
// engine treats it as an opaque call: on success the flow completes and
// the cart clears, on failure snapshot and cart stay untouched.
type OrderSubmitter interface {
	Submit(ctx context.Context, order Order) error
}

// OrderStorage defines operations on the archive of confirmed orders.
type OrderStorage interface {
	Add(ctx context.Context, id string, order Order) error
	GetOne(ctx context.Context, id string) (Order, error)
}
