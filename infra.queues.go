package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Queue IDs of the orders pipeline.
const (
	OrdersQueue = "orders"
)

// Ensure *redisQueue implements Queuer.
var _ Queuer = (*redisQueue)(nil)

// Queuer describes the queue carrying confirmed orders from the
// submission collaborator to the archive consumer.
type Queuer interface {
	Push(ctx context.Context, qid string, order Order) error
	Pop(ctx context.Context, qids ...string) (string, Order, error)
}

// redisQueue represents a queue which implements the Queuer interface.
type redisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) Queuer {
	return &redisQueue{client: client}
}

// Push enqueues an order onto the queue identified by qid.
func (q *redisQueue) Push(ctx context.Context, qid string, order Order) error {
	orderBytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, qid, orderBytes).Err()
}

// Pop returns the first dequeued order from the list of queue ids.
func (q *redisQueue) Pop(ctx context.Context, qids ...string) (string, Order, error) {
	var order Order
	var qid string
	infos, err := q.client.BLPop(ctx, 0*time.Second, qids...).Result()
	if err != nil {
		return qid, order, err
	}

	if err = json.Unmarshal([]byte(infos[1]), &order); err != nil {
		return qid, order, err
	}
	qid = infos[0]
	return qid, order, nil
}
