// Package store provides the product record model and storage operations.
package store

import (
	"context"

	"github.com/shopspring/decimal"
)

// Product represents a product entity in the store.
type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int32
	Category    string
}

// Fields holds the mutable part of a Product. Updates replace all of them at once.
type Fields struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Quantity    int32
	Category    string
}

// ProductStore is an interface for product storage operations.
// Every returned Product is a copy; changing it never changes the store.
type ProductStore interface {
	// Insert assigns the next ID in sequence and stores the product.
	Insert(ctx context.Context, fields Fields) *Product

	// FindByID retrieves a single product by its unique identifier.
	// Returns ErrProductNotFound if no product exists with the given ID.
	FindByID(ctx context.Context, id int64) (*Product, error)

	// ListAll returns a snapshot of all products in insertion order.
	// Returns an empty slice if no products exist.
	ListAll(ctx context.Context) []Product

	// Update replaces the mutable fields of an existing product, keeping its ID.
	// Returns ErrProductNotFound if no product exists with the given ID.
	Update(ctx context.Context, id int64, fields Fields) (*Product, error)

	// DeleteByID removes a product by its ID. The ID is never handed out again.
	// Returns ErrProductNotFound if no product exists with the given ID.
	DeleteByID(ctx context.Context, id int64) error
}
