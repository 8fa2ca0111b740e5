package main

import (
	"sync"

	"github.com/shopspring/decimal"
)

// PageState tells which storefront page the session is currently on.
type PageState string

const (
	PageHome        PageState = "home"
	PageBookDetails PageState = "book-details"
	PageCart        PageState = "cart"
	PageCheckout    PageState = "checkout"
)

// CartItem is one line item of a shopping cart. The price is a snapshot
// taken when the book was first added. Later catalog price changes never
// affect existing line items.
type CartItem struct {
	ID       int             `json:"id"`
	Title    string          `json:"title"`
	Author   string          `json:"author"`
	Image    string          `json:"image"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

// CartUpdate is the immutable state snapshot emitted after every cart or
// checkout operation. Views re-render from it and never hold a mutable
// reference into the live cart.
type CartUpdate struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"cartItems"`
	CartSummary
	Page     PageState     `json:"page"`
	Checkout CheckoutState `json:"checkoutState"`
}

// CartObserver is notified synchronously with a fresh snapshot
// after each mutating operation.
type CartObserver func(update CartUpdate)

// Cart owns the ordered line items of a single shopping session.
// All mutation goes through its methods. It is not safe for concurrent
// use on its own, the owning CartSession serializes access.
type Cart struct {
	items []CartItem
}

// NewCart provides an empty cart.
func NewCart() *Cart {
	return &Cart{}
}

// AddItem merges the book into the cart. An existing line item with the
// same book id has its quantity increased by count. Otherwise a new line
// item is appended with the book price captured at this instant.
func (c *Cart) AddItem(book Book, count int) {
	for i := range c.items {
		if c.items[i].ID == book.ID {
			c.items[i].Quantity += count
			return
		}
	}
	c.items = append(c.items, CartItem{
		ID:       book.ID,
		Title:    book.Title,
		Author:   book.Author,
		Image:    book.Image,
		Price:    book.Price,
		Quantity: count,
	})
}

// RemoveItem deletes the line item with that book id. Removing an
// absent id is a no-op so the operation stays idempotent.
func (c *Cart) RemoveItem(bookID int) {
	for i := range c.items {
		if c.items[i].ID == bookID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the line item with that book id.
// A quantity of zero or below removes the line item. An absent id is a
// no-op, the operation never creates a new line item.
func (c *Cart) UpdateQuantity(bookID, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(bookID)
		return
	}
	for i := range c.items {
		if c.items[i].ID == bookID {
			c.items[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart. Called after a successful order submission.
func (c *Cart) Clear() {
	c.items = nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []CartItem {
	items := make([]CartItem, len(c.items))
	copy(items, c.items)
	return items
}

// Len returns the number of distinct line items.
func (c *Cart) Len() int {
	return len(c.items)
}

// CartSession binds one cart, its checkout flow and the current page state
// for a single shopping session. A mutex serializes all operations so that
// each one observes and produces a consistent snapshot.
type CartSession struct {
	id        string
	mu        sync.Mutex
	cart      *Cart
	flow      *CheckoutFlow
	page      PageState
	observers []CartObserver
}

// NewCartSession provides a session with an empty cart on the home page.
func NewCartSession(id string, observers ...CartObserver) *CartSession {
	return &CartSession{
		id:        id,
		cart:      NewCart(),
		flow:      NewCheckoutFlow(),
		page:      PageHome,
		observers: observers,
	}
}

// ID returns the session identifier.
func (s *CartSession) ID() string {
	return s.id
}

// Subscribe registers an observer notified after each mutating operation.
func (s *CartSession) Subscribe(observer CartObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, observer)
}

// AddItem merges the book into the cart with the given count and
// emits the resulting snapshot.
func (s *CartSession) AddItem(book Book, count int) CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.AddItem(book, count)
	return s.emit()
}

// RemoveItem deletes the line item with that book id and emits
// the resulting snapshot.
func (s *CartSession) RemoveItem(bookID int) CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.RemoveItem(bookID)
	return s.emit()
}

// UpdateQuantity applies the new quantity to the line item with that
// book id and emits the resulting snapshot.
func (s *CartSession) UpdateQuantity(bookID, quantity int) CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.UpdateQuantity(bookID, quantity)
	return s.emit()
}

// Clear empties the cart and emits the resulting snapshot.
func (s *CartSession) Clear() CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart.Clear()
	return s.emit()
}

// View returns the current snapshot without mutating anything.
func (s *CartSession) View() CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

// Navigate moves the session to the given page. Entering or leaving the
// checkout page goes through ProceedToCheckout, BackToCart or BackToHome
// instead so the checkout flow stays consistent.
func (s *CartSession) Navigate(page PageState) CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page != PageCheckout {
		s.page = page
	}
	return s.emit()
}

// ProceedToCheckout enters the checkout flow. It refuses with ErrCartEmpty
// when the cart holds no line item, leaving page and cart untouched. On
// success the flow captures an immutable order snapshot of the current
// items and totals.
func (s *CartSession) ProceedToCheckout() (CartUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := s.cart.Items()
	if err := s.flow.Begin(TakeOrderSnapshot(items)); err != nil {
		return s.snapshot(), err
	}
	s.page = PageCheckout
	return s.emit(), nil
}

// BackToCart leaves the checkout form and returns to the cart page.
// The captured order snapshot is discarded, the live cart is untouched.
func (s *CartSession) BackToCart() CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flow.Abort()
	s.page = PageCart
	return s.emit()
}

// BackToHome leaves the checkout form and returns to the home page.
// Same semantics as BackToCart regarding the snapshot and the live cart.
func (s *CartSession) BackToHome() CartUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flow.Abort()
	s.page = PageHome
	return s.emit()
}

// CheckoutSnapshot returns the order snapshot captured at checkout entry.
// It fails with ErrNotInCheckout when the session is not on the form.
func (s *CartSession) CheckoutSnapshot() (OrderSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.flow.Snapshot()
}

// ConfirmOrder completes the checkout flow after a successful submission.
// The live cart is cleared and the session leaves the checkout page.
func (s *CartSession) ConfirmOrder() (CartUpdate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.flow.Complete(); err != nil {
		return s.snapshot(), err
	}
	s.cart.Clear()
	s.page = PageHome
	return s.emit(), nil
}

// snapshot builds an immutable view of the current session state.
func (s *CartSession) snapshot() CartUpdate {
	items := s.cart.Items()
	return CartUpdate{
		SessionID:   s.id,
		Items:       items,
		CartSummary: Summarize(items),
		Page:        s.page,
		Checkout:    s.flow.State(),
	}
}

// emit builds the current snapshot and notifies all observers with it
// synchronously before returning it to the caller.
func (s *CartSession) emit() CartUpdate {
	update := s.snapshot()
	for _, observer := range s.observers {
		observer(update)
	}
	return update
}

// SessionStore defines operations on the in-memory sessions registry.
// Carts live only for the process lifetime, there is no persistence.
type SessionStore interface {
	GetOrCreate(id string) *CartSession
	Get(id string) (*CartSession, bool)
	Len() int
}

// memorySessionStore implements SessionStore with a mutex-guarded map.
type memorySessionStore struct {
	mu        sync.RWMutex
	sessions  map[string]*CartSession
	observers []CartObserver
}

// NewMemorySessionStore provides an empty registry. The given observers
// are attached to every session it creates.
func NewMemorySessionStore(observers ...CartObserver) SessionStore {
	return &memorySessionStore{
		sessions:  make(map[string]*CartSession),
		observers: observers,
	}
}

// GetOrCreate returns the session registered under that id,
// creating it on first use.
func (ms *memorySessionStore) GetOrCreate(id string) *CartSession {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if session, ok := ms.sessions[id]; ok {
		return session
	}
	session := NewCartSession(id, ms.observers...)
	ms.sessions[id] = session
	return session
}

// Get returns the session registered under that id if any.
func (ms *memorySessionStore) Get(id string) (*CartSession, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	session, ok := ms.sessions[id]
	return session, ok
}

// Len returns the number of live sessions.
func (ms *memorySessionStore) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.sessions)
}
