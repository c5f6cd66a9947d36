// Package validation decides whether a product candidate may be written.
package validation

import (
	"errors"
	"reflect"
	"strings"

	perrors "github.com/abgdnv/gocatalog/internal/product/errors"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Candidate holds caller-supplied product fields prior to validation.
// Nil Price or Quantity means the field was not supplied.
type Candidate struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Quantity    *int32           `json:"quantity"`
	Category    string           `json:"category"`
}

// checks is the trimmed view of a Candidate that the rules run against.
// Field order, then tag order, is the order violations are reported in.
type checks struct {
	Name        string           `validate:"required,max=100"`
	Description string           `validate:"required"`
	Price       *decimal.Decimal `validate:"required,gt=0"`
	Quantity    *int32           `validate:"required,min=0"`
	Category    string           `validate:"required"`
}

var reasons = map[string]string{
	"Name.required":        "Product name is required and cannot be empty",
	"Name.max":             "Product name cannot exceed 100 characters",
	"Description.required": "Product description is required and cannot be empty",
	"Price.required":       "Product price is required",
	"Price.gt":             "Product price must be greater than 0",
	"Quantity.required":    "Product quantity is required",
	"Quantity.min":         "Product quantity cannot be negative",
	"Category.required":    "Product category is required and cannot be empty",
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// a decimal is checked through its sign, so gt=0 means strictly positive
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.Sign()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate reports the first rule c violates as a *errors.ValidationError,
// or nil when c can be written.
func Validate(c Candidate) error {
	err := validate.Struct(checks{
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		Price:       c.Price,
		Quantity:    c.Quantity,
		Category:    strings.TrimSpace(c.Category),
	})
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &perrors.ValidationError{Reason: err.Error()}
	}
	first := fieldErrs[0]
	reason, ok := reasons[first.StructField()+"."+first.Tag()]
	if !ok {
		reason = first.Error()
	}
	return &perrors.ValidationError{Reason: reason}
}
