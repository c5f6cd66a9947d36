// Package errors provides custom error types for product-related operations.
package errors

import (
	"errors"
	"fmt"
)

var ErrProductNotFound = errors.New("product not found")
var ErrInvalidProduct = errors.New("invalid product")

// ValidationError reports the first field check a product candidate failed.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// Is makes errors.Is(err, ErrInvalidProduct) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidProduct
}

// NotFoundError reports a product ID that does not exist in the store.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Product not found with id: %d", e.ID)
}

// Is makes errors.Is(err, ErrProductNotFound) match any NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}
