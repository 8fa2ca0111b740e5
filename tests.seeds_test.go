package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

// TestSeedCatalog ensures the featured books are loaded once only.
func TestSeedCatalog(t *testing.T) {
	t.Run("empty catalog gets seeded", func(t *testing.T) {
		var added []Book
		storage := &MockBookStorage{
			CountFunc: func(context.Context) (int, error) {
				return 0, nil
			},
			AddFunc: func(_ context.Context, book Book) (Book, error) {
				added = append(added, book)
				return book, nil
			},
		}
		err := SeedCatalog(context.TODO(), zap.NewNop(), storage)
		assert.NoError(t, err)
		assert.Equal(t, len(FeaturedBooks), len(added))
	})

	t.Run("populated catalog is left alone", func(t *testing.T) {
		storage := &MockBookStorage{
			CountFunc: func(context.Context) (int, error) {
				return 6, nil
			},
			AddFunc: func(_ context.Context, book Book) (Book, error) {
				t.Fatal("seeding must not touch a populated catalog")
				return book, nil
			},
		}
		err := SeedCatalog(context.TODO(), zap.NewNop(), storage)
		assert.NoError(t, err)
	})
}
