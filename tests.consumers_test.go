package main

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestBoltOrderConsumer ensures popped orders land in the archive
// and the consumer exits once the context is done.
func TestBoltOrderConsumer(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	pending := make(chan Order, 1)
	pending <- Order{ID: "o:0", SessionID: "s:0", Total: "21.60"}

	queue := &MockQueuer{
		PopFunc: func(ctx context.Context, qids ...string) (string, Order, error) {
			select {
			case order := <-pending:
				return OrdersQueue, order, nil
			case <-ctx.Done():
				return "", Order{}, ctx.Err()
			}
		},
	}

	var mu sync.Mutex
	archived := make(map[string]Order)
	repo := &MockOrderStorage{
		AddFunc: func(_ context.Context, id string, order Order) error {
			mu.Lock()
			defer mu.Unlock()
			archived[id] = order
			cancel()
			return nil
		},
	}

	consumer := NewBoltOrderConsumer(zap.NewNop(), queue, repo)
	done := make(chan error, 1)
	go func() {
		done <- consumer.Consume(ctx, OrdersQueue)
	}()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("consumer did not exit after context cancellation")
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, archived, 1)
	assert.Equal(t, "21.60", archived["o:0"].Total)
}
