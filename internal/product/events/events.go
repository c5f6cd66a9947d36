// Package events publishes product change notifications.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/abgdnv/gocatalog/internal/product/service"
)

const (
	StreamName     = "PRODUCTS"
	StreamSubjects = "products.>"
	SubjectCreated = "products.created"
	SubjectUpdated = "products.updated"
	SubjectDeleted = "products.deleted"
)

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type ProductCreated struct {
	Product    service.ProductDto `json:"product"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func (e ProductCreated) Subject() string {
	return SubjectCreated
}

func (e ProductCreated) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductUpdated struct {
	Product    service.ProductDto `json:"product"`
	OccurredAt time.Time          `json:"occurred_at"`
}

func (e ProductUpdated) Subject() string {
	return SubjectUpdated
}

func (e ProductUpdated) Payload() ([]byte, error) {
	return json.Marshal(e)
}

type ProductDeleted struct {
	ProductID  int64     `json:"product_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e ProductDeleted) Subject() string {
	return SubjectDeleted
}

func (e ProductDeleted) Payload() ([]byte, error) {
	return json.Marshal(e)
}
