package store

import (
	"context"
	"slices"
	"sync"

	"github.com/abgdnv/gocatalog/internal/product/errors"
)

// inMemory implements ProductStore using an in-memory map.
// mu guards products, order and nextID as a single unit.
type inMemory struct {
	mu       sync.RWMutex
	products map[int64]Product
	order    []int64 // insertion order of live IDs
	nextID   int64
}

// NewInMemoryStore creates a new instance of ProductStore
func NewInMemoryStore() ProductStore {
	return &inMemory{
		products: make(map[int64]Product),
		nextID:   1,
	}
}

// Insert stores a new product under the next ID.
func (s *inMemory) Insert(_ context.Context, fields Fields) *Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	product := Product{ID: s.nextID}
	product.apply(fields)
	s.nextID++
	s.products[product.ID] = product
	s.order = append(s.order, product.ID)

	return &product
}

// FindByID retrieves a product by its ID.
func (s *inMemory) FindByID(_ context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	return &p, nil
}

// ListAll retrieves all products.
func (s *inMemory) ListAll(_ context.Context) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Product, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, s.products[id])
	}
	return list
}

// Update overwrites the mutable fields of a product.
func (s *inMemory) Update(_ context.Context, id int64, fields Fields) (*Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return nil, errors.ErrProductNotFound
	}
	p.apply(fields)
	s.products[id] = p
	return &p, nil
}

// DeleteByID deletes a product by its ID.
func (s *inMemory) DeleteByID(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.products[id]; !exists {
		return errors.ErrProductNotFound
	}
	delete(s.products, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return nil
}

func (p *Product) apply(f Fields) {
	p.Name = f.Name
	p.Description = f.Description
	p.Price = f.Price
	p.Quantity = f.Quantity
	p.Category = f.Category
}
