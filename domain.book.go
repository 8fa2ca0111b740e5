package main

import (
	"context"

	"github.com/shopspring/decimal"
)

// Book represents a catalog book entity. The cart engine only captures
// the id, title, author, image and price fields at add-to-cart time.
type Book struct {
	ID            int             `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Genre         string          `json:"genre"`
	Price         decimal.Decimal `json:"price"`
	Image         string          `json:"image"`
	Description   string          `json:"description"`
	ISBN          string          `json:"isbn"`
	Pages         int             `json:"pages"`
	Publisher     string          `json:"publisher"`
	PublishedDate string          `json:"publishedDate"`
	Rating        decimal.Decimal `json:"rating"`
	CreatedAt     string          `json:"createdAt"`
	UpdatedAt     string          `json:"updatedAt"`
}

// Upper bound of the catalog rating scale.
var maxBookRating = decimal.NewFromInt(5)

// BookStorage defines possible operations on the book catalog.
type BookStorage interface {
	Add(ctx context.Context, book Book) (Book, error)
	GetOne(ctx context.Context, id int) (Book, error)
	Delete(ctx context.Context, id int) error
	Update(ctx context.Context, id int, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	Count(ctx context.Context) (int, error)
}
