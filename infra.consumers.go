package main

import (
	"context"

	"go.uber.org/zap"
)

type Consumer interface {
	Consume(ctx context.Context, qids ...string) error
}

// boltOrderConsumer drains the orders queue and archives each
// confirmed order into the bolt bucket.
type boltOrderConsumer struct {
	logger *zap.Logger
	queue  Queuer
	repo   OrderStorage
}

func NewBoltOrderConsumer(logger *zap.Logger, q Queuer, repo OrderStorage) Consumer {
	return &boltOrderConsumer{logger, q, repo}
}

func (bc *boltOrderConsumer) Consume(ctx context.Context, qids ...string) error {
	var order Order
	var err error
	var qid string
	for {
		qid, order, err = bc.queue.Pop(ctx, qids...)
		if err != nil && ctx.Err() != nil {
			bc.logger.Info("consumer: queue pop call: context is done: exit", zap.String("reason", ctx.Err().Error()))
			return nil
		}

		if err != nil {
			bc.logger.Error("consumer: error on queue pop call", zap.Error(err))
			continue
		}

		switch qid {
		case OrdersQueue:
			if err = bc.repo.Add(ctx, order.ID, order); err != nil {
				bc.logger.Error("consumer: failed to archive order", zap.String("order.id", order.ID), zap.Error(err))
				continue
			}
			bc.logger.Info("consumer: order archived",
				zap.String("order.id", order.ID),
				zap.String("session.id", order.SessionID),
				zap.String("order.total", order.Total),
			)
		default:
			bc.logger.Warn("consumer: received order on unknown queue id", zap.String("qid", qid), zap.String("order.id", order.ID))
		}
	}
}
