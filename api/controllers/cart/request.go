package cart

import (
	cartsvc "github.com/angelmondragon/storefront-backend/internal/cart"
)

type createCartRequest struct {
	Token string `json:"token" validate:"omitempty,max=64"`
}

type addItemRequest struct {
	ProductID   uint  `json:"product_id" validate:"required"`
	VariationID *uint `json:"variation_id" validate:"omitempty,min=1"`
	Quantity    int   `json:"quantity"`
}

func (r addItemRequest) toInput() cartsvc.AddItemInput {
	return cartsvc.AddItemInput{
		ProductID:   r.ProductID,
		VariationID: r.VariationID,
		Quantity:    r.Quantity,
	}
}

// A quantity of zero or less removes the line.
type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
