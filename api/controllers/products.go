package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	productsvc "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxSearchLen = 100

// PublicListProducts returns active products with their active variations.
func PublicListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "product")
			return
		}

		filter, err := productFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.ActiveOnly = true

		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productsvc.NewProductDTOs(rows, validators.Language(r), false))
	}
}

func PublicGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "product")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}

		product, err := svc.GetActive(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productsvc.NewProductDTO(*product, validators.Language(r)))
	}
}

// AdminListProducts includes inactive products and variations.
func AdminListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "product")
			return
		}

		filter, err := productFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productsvc.NewProductDTOs(rows, "", true))
	}
}

func productFilter(r *http.Request) (productsvc.ListFilter, error) {
	productType, err := optionalEnum(r, "type", enums.ParseProductType)
	if err != nil {
		return productsvc.ListFilter{}, err
	}
	tagIDs, err := validators.ParseQueryIDs(r, "tag_ids")
	if err != nil {
		return productsvc.ListFilter{}, err
	}
	return productsvc.ListFilter{
		Type:   productType,
		Search: validators.QueryString(r, "search", maxSearchLen),
		TagIDs: tagIDs,
	}, nil
}

type productRequest struct {
	Name        string             `json:"name" validate:"required,max=255"`
	Description string             `json:"description"`
	Price       decimal.Decimal    `json:"price"`
	ImageURL    *string            `json:"image_url" validate:"omitempty,max=2048"`
	Order       int                `json:"order"`
	IsActive    *bool              `json:"is_active"`
	Type        *enums.ProductType `json:"type" validate:"omitempty,oneof=product service housekeeping"`
}

func (p productRequest) toInput() productsvc.Input {
	input := productsvc.Input{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
		Order:       p.Order,
		IsActive:    p.IsActive,
	}
	if p.Type != nil {
		input.Type = *p.Type
	}
	return input
}

type productUpdateRequest struct {
	Name        *string            `json:"name" validate:"omitempty,max=255"`
	Description *string            `json:"description"`
	Price       *decimal.Decimal   `json:"price"`
	ImageURL    *string            `json:"image_url" validate:"omitempty,max=2048"`
	Order       *int               `json:"order"`
	IsActive    *bool              `json:"is_active"`
	Type        *enums.ProductType `json:"type" validate:"omitempty,oneof=product service housekeeping"`
}

type productTranslationRequest struct {
	Language    string `json:"language" validate:"required,max=16"`
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type variationRequest struct {
	Name     string              `json:"name" validate:"required,max=255"`
	Price    decimal.NullDecimal `json:"price"`
	ImageURL *string             `json:"image_url" validate:"omitempty,max=2048"`
	Order    int                 `json:"order"`
	IsActive *bool               `json:"is_active"`
}

type variationUpdateRequest struct {
	Name     *string                  `json:"name" validate:"omitempty,max=255"`
	Price    productsvc.OptionalPrice `json:"price"`
	ImageURL *string                  `json:"image_url" validate:"omitempty,max=2048"`
	Order    *int                     `json:"order"`
	IsActive *bool                    `json:"is_active"`
}

type variationTranslationRequest struct {
	Language string `json:"language" validate:"required,max=16"`
	Name     string `json:"name" validate:"required,max=255"`
}

// productHandler wraps the admin endpoints that answer with the full product.
type productHandler func(r *http.Request) (*models.Product, error)

func adminProductResponse(svc productsvc.Service, logg *logger.Logger, status int, fn productHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "product")
			return
		}
		product, err := fn(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, status, productsvc.NewAdminProductDTO(*product))
	}
}
