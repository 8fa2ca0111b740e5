package main

import (
	"context"

	"go.uber.org/zap"
)

// BookServiceProvider describes the catalog operations exposed to handlers.
type BookServiceProvider interface {
	Add(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int) (Book, error)
	Delete(ctx context.Context, id int) error
	Update(ctx context.Context, id int, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
}

type BookService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage BookStorage
}

func NewBookService(logger *zap.Logger, config *Config, clock Clocker, storage BookStorage) BookServiceProvider {
	return &BookService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
	}
}

func (bs *BookService) Add(ctx context.Context, book Book) (Book, error) {
	return bs.storage.Add(ctx, book)
}

func (bs *BookService) GetOne(ctx context.Context, id int) (Book, error) {
	book, err := bs.storage.GetOne(ctx, id)
	return book, err
}

func (bs *BookService) Delete(ctx context.Context, id int) error {
	return bs.storage.Delete(ctx, id)
}

func (bs *BookService) Update(ctx context.Context, id int, book Book) (Book, error) {
	book.UpdatedAt = bs.clock.Now().UTC().String()
	return bs.storage.Update(ctx, id, book)
}

func (bs *BookService) GetAll(ctx context.Context) ([]Book, error) {
	books, err := bs.storage.GetAll(ctx)
	return books, err
}

// CartServiceProvider describes the cart and checkout event interface
// exposed to handlers. Each call acts on the cart session matching the
// given session id and returns the resulting immutable snapshot.
type CartServiceProvider interface {
	AddToCart(ctx context.Context, sessionID string, bookID, quantity int) (CartUpdate, error)
	RemoveFromCart(ctx context.Context, sessionID string, bookID int) CartUpdate
	UpdateQuantity(ctx context.Context, sessionID string, bookID, quantity int) CartUpdate
	ClearCart(ctx context.Context, sessionID string) CartUpdate
	ViewCart(ctx context.Context, sessionID string) CartUpdate
	ProceedToCheckout(ctx context.Context, sessionID string) (CartUpdate, error)
	BackToCart(ctx context.Context, sessionID string) CartUpdate
	BackToHome(ctx context.Context, sessionID string) CartUpdate
	SubmitOrder(ctx context.Context, sessionID string, form OrderForm) (Order, CartUpdate, error)
	GetOrder(ctx context.Context, id string) (Order, error)
}

type CartService struct {
	logger    *zap.Logger
	config    *Config
	clock     Clocker
	ids       UIDHandler
	sessions  SessionStore
	catalog   BookStorage
	submitter OrderSubmitter
	orders    OrderStorage
}

func NewCartService(logger *zap.Logger, config *Config, clock Clocker, ids UIDHandler,
	sessions SessionStore, catalog BookStorage, submitter OrderSubmitter, orders OrderStorage,
) CartServiceProvider {
	return &CartService{
		logger:    logger,
		config:    config,
		clock:     clock,
		ids:       ids,
		sessions:  sessions,
		catalog:   catalog,
		submitter: submitter,
		orders:    orders,
	}
}

// AddToCart captures the book from the catalog at this instant and merges
// it into the session cart. The catalog is never read again afterwards so
// later price changes do not touch existing line items.
func (cs *CartService) AddToCart(ctx context.Context, sessionID string, bookID, quantity int) (CartUpdate, error) {
	if quantity < 1 {
		return CartUpdate{}, ErrInvalidQuantity
	}
	book, err := cs.catalog.GetOne(ctx, bookID)
	if err != nil {
		return CartUpdate{}, err
	}
	session := cs.sessions.GetOrCreate(sessionID)
	update := session.AddItem(book, quantity)
	cs.logger.Info("service: book added to cart",
		zap.String("session.id", sessionID),
		zap.Int("book.id", bookID),
		zap.Int("quantity", quantity),
	)
	return update, nil
}

func (cs *CartService) RemoveFromCart(_ context.Context, sessionID string, bookID int) CartUpdate {
	return cs.sessions.GetOrCreate(sessionID).RemoveItem(bookID)
}

func (cs *CartService) UpdateQuantity(_ context.Context, sessionID string, bookID, quantity int) CartUpdate {
	return cs.sessions.GetOrCreate(sessionID).UpdateQuantity(bookID, quantity)
}

func (cs *CartService) ClearCart(_ context.Context, sessionID string) CartUpdate {
	return cs.sessions.GetOrCreate(sessionID).Clear()
}

func (cs *CartService) ViewCart(_ context.Context, sessionID string) CartUpdate {
	return cs.sessions.GetOrCreate(sessionID).Navigate(PageCart)
}

func (cs *CartService) ProceedToCheckout(_ context.Context, sessionID string) (CartUpdate, error) {
	update, err := cs.sessions.GetOrCreate(sessionID).ProceedToCheckout()
	if err != nil {
		cs.logger.Info("service: checkout blocked", zap.String("session.id", sessionID), zap.Error(err))
		return update, err
	}
	return update, nil
}

func (cs *CartService) BackToCart(_ context.Context, sessionID string) CartUpdate {
	return cs.sessions.GetOrCreate(sessionID).BackToCart()
}

func (cs *CartService) BackToHome(_ context.Context, sessionID string) CartUpdate {
	return cs.sessions.GetOrCreate(sessionID).BackToHome()
}

// SubmitOrder hands the checkout snapshot to the order submission
// collaborator. On failure the snapshot and the live cart stay untouched.
// On success the flow completes, which clears the cart.
func (cs *CartService) SubmitOrder(ctx context.Context, sessionID string, form OrderForm) (Order, CartUpdate, error) {
	session := cs.sessions.GetOrCreate(sessionID)
	snapshot, err := session.CheckoutSnapshot()
	if err != nil {
		return Order{}, session.View(), err
	}

	order := BuildOrder(cs.ids.Generate(OrderIDPrefix), sessionID, snapshot, form, cs.clock.Now().UTC().String())
	if err = cs.submitter.Submit(ctx, order); err != nil {
		cs.logger.Error("service: order submission failed",
			zap.String("session.id", sessionID),
			zap.String("order.id", order.ID),
			zap.Error(err),
		)
		return Order{}, session.View(), err
	}

	update, err := session.ConfirmOrder()
	if err != nil {
		return Order{}, update, err
	}
	cs.logger.Info("service: order submitted",
		zap.String("session.id", sessionID),
		zap.String("order.id", order.ID),
		zap.String("order.total", order.Total),
	)
	return order, update, nil
}

func (cs *CartService) GetOrder(ctx context.Context, id string) (Order, error) {
	return cs.orders.GetOne(ctx, id)
}

// Ensure queueOrderSubmitter implements OrderSubmitter.
var _ OrderSubmitter = (*queueOrderSubmitter)(nil)

// queueOrderSubmitter is the order submission collaborator. It validates
// the checkout form fields then pushes the order onto the orders queue
// where the archive consumer picks it up.
type queueOrderSubmitter struct {
	logger *zap.Logger
	queue  Queuer
}

func NewQueueOrderSubmitter(logger *zap.Logger, queue Queuer) OrderSubmitter {
	return &queueOrderSubmitter{logger: logger, queue: queue}
}

func (qs *queueOrderSubmitter) Submit(ctx context.Context, order Order) error {
	if err := ValidateOrderForm(&order.Customer); err != nil {
		return err
	}
	if err := qs.queue.Push(ctx, OrdersQueue, order); err != nil {
		qs.logger.Error("submitter: failed to push order to queue", zap.String("qid", OrdersQueue), zap.Error(err))
		return err
	}
	return nil
}
