package products

import (
	"bytes"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Input creates a product. Nil IsActive defaults to active.
type Input struct {
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    *string
	Order       int
	IsActive    *bool
	Type        enums.ProductType
}

// UpdateInput carries the fields to change; nil fields are left untouched.
type UpdateInput struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	ImageURL    *string
	Order       *int
	IsActive    *bool
	Type        *enums.ProductType
}

type TranslationInput struct {
	Language    string
	Name        string
	Description string
}

// VariationInput creates a variation. A null Price inherits the product price.
type VariationInput struct {
	Name     string
	Price    decimal.NullDecimal
	ImageURL *string
	Order    int
	IsActive *bool
}

type VariationUpdateInput struct {
	Name     *string
	Price    OptionalPrice
	ImageURL *string
	Order    *int
	IsActive *bool
}

// OptionalPrice tells an absent price apart from an explicit null, which
// clears a variation override.
type OptionalPrice struct {
	Set   bool
	Price decimal.NullDecimal
}

func (o *OptionalPrice) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Price = decimal.NullDecimal{}
		return nil
	}
	return o.Price.UnmarshalJSON(b)
}
