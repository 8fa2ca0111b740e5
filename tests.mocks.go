package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc    func(ctx context.Context, book Book) (Book, error)
	GetOneFunc func(ctx context.Context, id int) (Book, error)
	DeleteFunc func(ctx context.Context, id int) error
	UpdateFunc func(ctx context.Context, id int, book Book) (Book, error)
	GetAllFunc func(ctx context.Context) ([]Book, error)
	CountFunc  func(ctx context.Context) (int, error)
}

// Add mocks the behavior of book creation by the catalog repository.
func (m *MockBookStorage) Add(ctx context.Context, book Book) (Book, error) {
	return m.AddFunc(ctx, book)
}

// GetOne mocks the behavior of retrieving a book by the catalog repository.
func (m *MockBookStorage) GetOne(ctx context.Context, id int) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// Delete mocks the behavior of deleting a book by the catalog repository.
func (m *MockBookStorage) Delete(ctx context.Context, id int) error {
	return m.DeleteFunc(ctx, id)
}

// Update mocks the behavior of updating a book by the catalog repository.
func (m *MockBookStorage) Update(ctx context.Context, id int, book Book) (Book, error) {
	return m.UpdateFunc(ctx, id, book)
}

// GetAll mocks the behavior of retrieving all books by the catalog repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// Count mocks the behavior of counting books by the catalog repository.
func (m *MockBookStorage) Count(ctx context.Context) (int, error) {
	return m.CountFunc(ctx)
}

// MockOrderStorage implements a fake orders archive.
type MockOrderStorage struct {
	AddFunc    func(ctx context.Context, id string, order Order) error
	GetOneFunc func(ctx context.Context, id string) (Order, error)
}

// Add mocks the archiving of a confirmed order.
func (m *MockOrderStorage) Add(ctx context.Context, id string, order Order) error {
	return m.AddFunc(ctx, id, order)
}

// GetOne mocks the retrieval of an archived order.
func (m *MockOrderStorage) GetOne(ctx context.Context, id string) (Order, error) {
	return m.GetOneFunc(ctx, id)
}

// MockQueuer implements a fake orders queue.
type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, order Order) error
	PopFunc  func(ctx context.Context, qids ...string) (string, Order, error)
}

// Push mocks the enqueueing of an order.
func (m *MockQueuer) Push(ctx context.Context, qid string, order Order) error {
	return m.PushFunc(ctx, qid, order)
}

// Pop mocks the dequeueing of an order.
func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, Order, error) {
	return m.PopFunc(ctx, qids...)
}

// MockOrderSubmitter implements a fake order submission collaborator.
type MockOrderSubmitter struct {
	SubmitFunc func(ctx context.Context, order Order) error
}

// Submit mocks the submission of an order.
func (m *MockOrderSubmitter) Submit(ctx context.Context, order Order) error {
	return m.SubmitFunc(ctx, order)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}
