package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltStore returns a new orders archive backed by a temporary file.
func newTestBoltStore() (*boltOrderStorage, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.orders",
		},
	}

	client, err := GetBoltDBClient(testConfig)

	return &boltOrderStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.BoltDB,
	}, err
}

// closeTestBoltStore closes the temporary archive and removes the underlying data file.
func (bs *boltOrderStorage) closeTestBoltStore() error {
	defer os.Remove(bs.config.FilePath)
	return bs.Close()
}

// Ensure the archive can store and serve back a confirmed order.
func TestBoltStore_AddOrder(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()
	testOrderID := "o:0"

	// Archive a confirmed order.
	o := Order{
		ID:        testOrderID,
		SessionID: "s:0",
		Items: []CartItem{
			{ID: 1, Title: "Bolt test book title", Quantity: 2},
		},
		Subtotal:       "20.00",
		TaxAmount:      "1.60",
		ShippingAmount: "0.00",
		Total:          "21.60",
		TotalItemCount: 2,
		Customer:       OrderForm{FullName: "Jerome Amon", Email: "jerome@cloudmentor.scale"},
	}
	err = bs.Add(context.TODO(), testOrderID, o)
	assert.NoError(t, err)

	// Verify the order can be retrieved.
	order, err := bs.GetOne(context.TODO(), testOrderID)
	assert.NoError(t, err)
	assert.Equal(t, testOrderID, order.ID)
	assert.Equal(t, "21.60", order.Total)
	assert.Equal(t, 2, order.TotalItemCount)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Bolt test book title", order.Items[0].Title)
}

// Ensure the archive reports a missing order.
func TestBoltStore_GetOne_MissingOrder(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	_, err = bs.GetOne(context.TODO(), "o:missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
