// Package service provides the implementation of product-related business logic.
package service

import (
	"context"
	"errors"
	"fmt"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/abgdnv/gocatalog/internal/product/store"
	"github.com/abgdnv/gocatalog/internal/product/validation"
	"github.com/shopspring/decimal"
)

// ProductService defines the methods for managing products.
// Write operations validate the candidate before the store is touched.
type ProductService interface {
	// Create validates and stores a new product.
	// Returns a *ValidationError if the candidate is rejected.
	Create(ctx context.Context, candidate validation.Candidate) (*ProductDto, error)

	// Get retrieves a single product by its unique identifier.
	// Returns a *NotFoundError if no product exists with the given ID.
	Get(ctx context.Context, id int64) (*ProductDto, error)

	// ListAll returns all available products.
	// Returns an empty slice if no products exist.
	ListAll(ctx context.Context) ([]ProductDto, error)

	// Update replaces all mutable fields of an existing product.
	// Returns a *ValidationError if the candidate is rejected,
	// or a *NotFoundError if no product exists with the given ID.
	Update(ctx context.Context, id int64, candidate validation.Candidate) (*ProductDto, error)

	// Delete removes a product by its ID.
	// Returns a *NotFoundError if no product exists with the given ID.
	Delete(ctx context.Context, id int64) error
}

// Service implements ProductService on top of a store.ProductStore.
type Service struct {
	repository store.ProductStore
}

// NewService creates a new instance of ProductService with the provided repository.
func NewService(repo store.ProductStore) *Service {
	return &Service{
		repository: repo,
	}
}

// ProductDto represents the data transfer object for a product.
type ProductDto struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Quantity    int32           `json:"quantity"`
	Category    string          `json:"category"`
}

// Create validates the candidate and stores it as a new product.
func (s *Service) Create(ctx context.Context, candidate validation.Candidate) (*ProductDto, error) {
	if err := validation.Validate(candidate); err != nil {
		return nil, err
	}
	return toDto(s.repository.Insert(ctx, toFields(candidate))), nil
}

// Get retrieves a product by its ID and returns it as a ProductDto.
func (s *Service) Get(ctx context.Context, id int64) (*ProductDto, error) {
	product, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, notFound(id, err)
	}
	return toDto(product), nil
}

// ListAll retrieves a list of all products and returns them as ProductDTOs.
func (s *Service) ListAll(ctx context.Context) ([]ProductDto, error) {
	products := s.repository.ListAll(ctx)
	productDTOs := make([]ProductDto, len(products))

	for i, item := range products {
		productDTOs[i] = *toDto(&item)
	}

	return productDTOs, nil
}

// Update validates the candidate and overwrites the product with the given ID.
func (s *Service) Update(ctx context.Context, id int64, candidate validation.Candidate) (*ProductDto, error) {
	if err := validation.Validate(candidate); err != nil {
		return nil, err
	}
	updated, err := s.repository.Update(ctx, id, toFields(candidate))
	if err != nil {
		return nil, notFound(id, err)
	}
	return toDto(updated), nil
}

// Delete deletes a product by its ID.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repository.DeleteByID(ctx, id); err != nil {
		return notFound(id, err)
	}
	return nil
}

// notFound turns the store's miss signal into a NotFoundError for id.
// Any other store error is passed through wrapped.
func notFound(id int64, err error) error {
	if errors.Is(err, perrors.ErrProductNotFound) {
		return &perrors.NotFoundError{ID: id}
	}
	return fmt.Errorf("product %d: %w", id, err)
}

// toFields converts a validated candidate to store fields.
func toFields(c validation.Candidate) store.Fields {
	return store.Fields{
		Name:        c.Name,
		Description: c.Description,
		Price:       *c.Price,
		Quantity:    *c.Quantity,
		Category:    c.Category,
	}
}

// toDto converts a store.Product to a ProductDto.
func toDto(product *store.Product) *ProductDto {
	return &ProductDto{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Quantity:    product.Quantity,
		Category:    product.Category,
	}
}
