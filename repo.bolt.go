package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

type boltOrderStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the bucket then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.BucketName)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.BucketName, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up bucket: %v", err)
	}
	return db, nil
}

// NewBoltOrderStorage provides an instance of bolt-based orders archive.
func NewBoltOrderStorage(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) OrderStorage {
	return &boltOrderStorage{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based orders archive.
func (bs *boltOrderStorage) Close() error {
	return bs.client.Close()
}

// Add inserts a confirmed order record into the archive bucket.
func (bs *boltOrderStorage) Add(_ context.Context, id string, order Order) error {
	orderBytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	err = bs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(bs.config.BucketName)).Put([]byte(id), orderBytes)
	})
	return err
}

// GetOne retrieves an archived order record based on its ID.
func (bs *boltOrderStorage) GetOne(_ context.Context, id string) (Order, error) {
	var order Order
	err := bs.client.View(func(tx *bolt.Tx) error {
		orderBytes := tx.Bucket([]byte(bs.config.BucketName)).Get([]byte(id))
		if orderBytes == nil {
			return ErrOrderNotFound
		}
		return json.Unmarshal(orderBytes, &order)
	})
	return order, err
}
