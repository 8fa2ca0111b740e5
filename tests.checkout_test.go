package main

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckoutFlowBegin(t *testing.T) {
	t.Parallel()

	t.Run("refuses an empty snapshot", func(t *testing.T) {
		t.Parallel()
		flow := NewCheckoutFlow()
		err := flow.Begin(TakeOrderSnapshot(nil))
		assert.ErrorIs(t, err, ErrCartEmpty)
		assert.Equal(t, StateCart, flow.State())
	})

	t.Run("enters the form with a non-empty snapshot", func(t *testing.T) {
		t.Parallel()
		flow := NewCheckoutFlow()
		items := []CartItem{{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 2}}
		require.NoError(t, flow.Begin(TakeOrderSnapshot(items)))
		assert.Equal(t, StateCheckoutForm, flow.State())
		snapshot, err := flow.Snapshot()
		require.NoError(t, err)
		assert.True(t, snapshot.Subtotal.Equal(decimal.RequireFromString("20.00")))
		assert.Equal(t, 2, snapshot.TotalItemCount)
	})

	t.Run("refuses to begin twice", func(t *testing.T) {
		t.Parallel()
		flow := NewCheckoutFlow()
		items := []CartItem{{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 1}}
		require.NoError(t, flow.Begin(TakeOrderSnapshot(items)))
		assert.ErrorIs(t, flow.Begin(TakeOrderSnapshot(items)), ErrCheckoutInProgress)
	})

	t.Run("a confirmed flow starts over", func(t *testing.T) {
		t.Parallel()
		flow := NewCheckoutFlow()
		items := []CartItem{{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 1}}
		require.NoError(t, flow.Begin(TakeOrderSnapshot(items)))
		require.NoError(t, flow.Complete())
		assert.Equal(t, StateConfirmed, flow.State())
		require.NoError(t, flow.Begin(TakeOrderSnapshot(items)))
		assert.Equal(t, StateCheckoutForm, flow.State())
	})
}

func TestCheckoutFlowAbort(t *testing.T) {
	t.Parallel()
	flow := NewCheckoutFlow()
	// aborting outside the form is a no-op.
	flow.Abort()
	assert.Equal(t, StateCart, flow.State())

	items := []CartItem{{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 1}}
	require.NoError(t, flow.Begin(TakeOrderSnapshot(items)))
	flow.Abort()
	assert.Equal(t, StateCart, flow.State())
	_, err := flow.Snapshot()
	assert.ErrorIs(t, err, ErrNotInCheckout)
}

func TestCheckoutFlowComplete(t *testing.T) {
	t.Parallel()
	flow := NewCheckoutFlow()
	assert.ErrorIs(t, flow.Complete(), ErrNotInCheckout)

	items := []CartItem{{ID: 1, Price: decimal.RequireFromString("10.00"), Quantity: 1}}
	require.NoError(t, flow.Begin(TakeOrderSnapshot(items)))
	require.NoError(t, flow.Complete())
	assert.Equal(t, StateConfirmed, flow.State())
	_, err := flow.Snapshot()
	assert.ErrorIs(t, err, ErrNotInCheckout)
}

func TestSessionProceedToCheckout(t *testing.T) {
	t.Parallel()

	t.Run("empty cart is blocked and state stays put", func(t *testing.T) {
		t.Parallel()
		session := NewCartSession("s:xyz")
		session.Navigate(PageCart)
		update, err := session.ProceedToCheckout()
		assert.ErrorIs(t, err, ErrCartEmpty)
		assert.Equal(t, PageCart, update.Page)
		assert.Equal(t, StateCart, update.Checkout)
	})

	t.Run("non-empty cart enters the form", func(t *testing.T) {
		t.Parallel()
		session := NewCartSession("s:xyz")
		session.AddItem(testBook(1, "A", "9.99"), 1)
		session.AddItem(testBook(2, "B", "14.50"), 2)
		update, err := session.ProceedToCheckout()
		require.NoError(t, err)
		assert.Equal(t, PageCheckout, update.Page)
		assert.Equal(t, StateCheckoutForm, update.Checkout)
		assert.Equal(t, "38.99", update.Subtotal)
		assert.Equal(t, "3.12", update.TaxAmount)
		assert.Equal(t, "42.11", update.Total)
	})
}

func TestSessionSnapshotIsolation(t *testing.T) {
	t.Parallel()
	session := NewCartSession("s:xyz")
	session.AddItem(testBook(1, "A", "10.00"), 2)
	session.AddItem(testBook(2, "B", "14.50"), 1)
	_, err := session.ProceedToCheckout()
	require.NoError(t, err)

	snapshot, err := session.CheckoutSnapshot()
	require.NoError(t, err)
	// mutating the snapshot items never reaches the live cart.
	snapshot.Items[0].Quantity = 99

	update := session.BackToCart()
	assert.Equal(t, PageCart, update.Page)
	assert.Equal(t, StateCart, update.Checkout)
	require.Len(t, update.Items, 2)
	assert.Equal(t, 2, update.Items[0].Quantity)
	assert.Equal(t, "34.50", update.Subtotal)
}

func TestSessionConfirmOrder(t *testing.T) {
	t.Parallel()
	session := NewCartSession("s:xyz")
	session.AddItem(testBook(1, "A", "10.00"), 2)
	_, err := session.ProceedToCheckout()
	require.NoError(t, err)

	update, err := session.ConfirmOrder()
	require.NoError(t, err)
	assert.Empty(t, update.Items)
	assert.Equal(t, "0.00", update.Subtotal)
	assert.Equal(t, PageHome, update.Page)
	assert.Equal(t, StateConfirmed, update.Checkout)
}

func TestBuildOrder(t *testing.T) {
	t.Parallel()
	items := []CartItem{
		{ID: 1, Price: decimal.RequireFromString("9.99"), Quantity: 1},
		{ID: 2, Price: decimal.RequireFromString("14.50"), Quantity: 2},
	}
	form := OrderForm{FullName: "Jerome Amon", Email: "jerome@cloudmentor.scale", Address: "1 Main St", City: "Porto", ZipCode: "4000"}
	order := BuildOrder("o:abc", "s:xyz", TakeOrderSnapshot(items), form, "2023-07-02 00:00:00 +0000 UTC")
	assert.Equal(t, "o:abc", order.ID)
	assert.Equal(t, "s:xyz", order.SessionID)
	assert.Equal(t, "38.99", order.Subtotal)
	assert.Equal(t, "3.12", order.TaxAmount)
	assert.Equal(t, "0.00", order.ShippingAmount)
	assert.Equal(t, "42.11", order.Total)
	assert.Equal(t, 3, order.TotalItemCount)
	assert.Equal(t, form, order.Customer)
}

func TestCartServiceAddToCart(t *testing.T) {
	t.Parallel()

	catalog := &MockBookStorage{
		GetOneFunc: func(_ context.Context, id int) (Book, error) {
			if id != 1 {
				return Book{}, ErrBookNotFound
			}
			return testBook(1, "A", "13.99"), nil
		},
	}
	service := NewCartService(zap.NewNop(), &Config{}, NewMockClocker(), NewMockUIDHandler("uid", true),
		NewMemorySessionStore(), catalog, &MockOrderSubmitter{}, &MockOrderStorage{})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		_, err := service.AddToCart(context.TODO(), "s:xyz", 1, 0)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("propagates missing book", func(t *testing.T) {
		_, err := service.AddToCart(context.TODO(), "s:xyz", 42, 1)
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("adds from the catalog", func(t *testing.T) {
		update, err := service.AddToCart(context.TODO(), "s:xyz", 1, 2)
		require.NoError(t, err)
		require.Len(t, update.Items, 1)
		assert.Equal(t, "27.98", update.Subtotal)
	})
}

func TestCartServiceSubmitOrder(t *testing.T) {
	t.Parallel()

	newService := func(submitter OrderSubmitter) CartServiceProvider {
		catalog := &MockBookStorage{
			GetOneFunc: func(_ context.Context, id int) (Book, error) {
				return testBook(id, "A", "10.00"), nil
			},
		}
		return NewCartService(zap.NewNop(), &Config{}, NewMockClocker(), NewMockUIDHandler("uid", true),
			NewMemorySessionStore(), catalog, submitter, &MockOrderStorage{})
	}

	form := OrderForm{FullName: "Jerome Amon", Email: "jerome@cloudmentor.scale", Address: "1 Main St", City: "Porto", ZipCode: "4000"}

	t.Run("rejected outside checkout", func(t *testing.T) {
		t.Parallel()
		service := newService(&MockOrderSubmitter{})
		_, update, err := service.SubmitOrder(context.TODO(), "s:xyz", form)
		assert.ErrorIs(t, err, ErrNotInCheckout)
		assert.Equal(t, StateCart, update.Checkout)
	})

	t.Run("submission failure leaves cart and snapshot untouched", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("submission backend unavailable")
		service := newService(&MockOrderSubmitter{
			SubmitFunc: func(context.Context, Order) error { return boom },
		})
		_, err := service.AddToCart(context.TODO(), "s:xyz", 1, 2)
		require.NoError(t, err)
		_, err = service.ProceedToCheckout(context.TODO(), "s:xyz")
		require.NoError(t, err)

		_, update, err := service.SubmitOrder(context.TODO(), "s:xyz", form)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, StateCheckoutForm, update.Checkout)
		require.Len(t, update.Items, 1)
		assert.Equal(t, "20.00", update.Subtotal)

		// a retry right after the failure goes through.
		_, _, err = service.SubmitOrder(context.TODO(), "s:xyz", form)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("successful submission clears the cart", func(t *testing.T) {
		t.Parallel()
		var submitted Order
		service := newService(&MockOrderSubmitter{
			SubmitFunc: func(_ context.Context, order Order) error {
				submitted = order
				return nil
			},
		})
		_, err := service.AddToCart(context.TODO(), "s:xyz", 1, 3)
		require.NoError(t, err)
		_, err = service.ProceedToCheckout(context.TODO(), "s:xyz")
		require.NoError(t, err)

		order, update, err := service.SubmitOrder(context.TODO(), "s:xyz", form)
		require.NoError(t, err)
		assert.Equal(t, "o:uid", order.ID)
		assert.Equal(t, "s:xyz", order.SessionID)
		assert.Equal(t, "30.00", order.Subtotal)
		assert.Equal(t, "32.40", order.Total)
		assert.Equal(t, "2023-07-02 00:00:00 +0000 UTC", order.CreatedAt)
		assert.Equal(t, order, submitted)

		assert.Empty(t, update.Items)
		assert.Equal(t, PageHome, update.Page)
		assert.Equal(t, StateConfirmed, update.Checkout)
	})
}

func TestQueueOrderSubmitter(t *testing.T) {
	t.Parallel()

	order := Order{
		ID:        "o:abc",
		SessionID: "s:xyz",
		Customer:  OrderForm{FullName: "Jerome Amon", Email: "jerome@cloudmentor.scale", Address: "1 Main St", City: "Porto", ZipCode: "4000"},
	}

	t.Run("rejects an invalid form", func(t *testing.T) {
		t.Parallel()
		submitter := NewQueueOrderSubmitter(zap.NewNop(), &MockQueuer{})
		bad := order
		bad.Customer.Email = "not-an-email"
		var fieldErr missingFieldError
		assert.ErrorAs(t, submitter.Submit(context.TODO(), bad), &fieldErr)
	})

	t.Run("pushes a valid order onto the queue", func(t *testing.T) {
		t.Parallel()
		var qid string
		var pushed Order
		submitter := NewQueueOrderSubmitter(zap.NewNop(), &MockQueuer{
			PushFunc: func(_ context.Context, q string, o Order) error {
				qid, pushed = q, o
				return nil
			},
		})
		require.NoError(t, submitter.Submit(context.TODO(), order))
		assert.Equal(t, OrdersQueue, qid)
		assert.Equal(t, order, pushed)
	})
}
