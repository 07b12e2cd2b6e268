package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	productsvc "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func AdminGetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		return svc.Get(r.Context(), id)
	})
}

func AdminCreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusCreated, func(r *http.Request) (*models.Product, error) {
		var req productRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.Create(r.Context(), req.toInput())
	})
}

func AdminUpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		var req productUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.Update(r.Context(), id, productsvc.UpdateInput{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			ImageURL:    req.ImageURL,
			Order:       req.Order,
			IsActive:    req.IsActive,
			Type:        req.Type,
		})
	})
}

func AdminDeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "product")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// AdminCloneProduct copies a product into a new inactive one.
func AdminCloneProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusCreated, func(r *http.Request) (*models.Product, error) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		return svc.Clone(r.Context(), id)
	})
}

// AdminReorderProducts applies the positions and answers with the full admin listing.
func AdminReorderProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "product")
			return
		}
		var req reorderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Reorder(r.Context(), req.Items); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), productsvc.ListFilter{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, productsvc.NewProductDTOs(rows, "", true))
	}
}

func AdminUpsertProductTranslation(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		var req productTranslationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.UpsertTranslation(r.Context(), id, productsvc.TranslationInput{
			Language:    req.Language,
			Name:        req.Name,
			Description: req.Description,
		})
	})
}

func AdminDeleteProductTranslation(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		return svc.DeleteTranslation(r.Context(), id, languageParam(r))
	})
}

func AdminCreateVariation(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusCreated, func(r *http.Request) (*models.Product, error) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		var req variationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.CreateVariation(r.Context(), id, productsvc.VariationInput{
			Name:     req.Name,
			Price:    req.Price,
			ImageURL: req.ImageURL,
			Order:    req.Order,
			IsActive: req.IsActive,
		})
	})
}

func AdminUpdateVariation(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, vid, err := variationParams(r)
		if err != nil {
			return nil, err
		}
		var req variationUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.UpdateVariation(r.Context(), id, vid, productsvc.VariationUpdateInput{
			Name:     req.Name,
			Price:    req.Price,
			ImageURL: req.ImageURL,
			Order:    req.Order,
			IsActive: req.IsActive,
		})
	})
}

func AdminDeleteVariation(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, vid, err := variationParams(r)
		if err != nil {
			return nil, err
		}
		return svc.DeleteVariation(r.Context(), id, vid)
	})
}

func AdminReorderVariations(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, err := validators.ParseIDParam(r, "id")
		if err != nil {
			return nil, err
		}
		var req reorderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.ReorderVariations(r.Context(), id, req.Items)
	})
}

func AdminUpsertVariationTranslation(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, vid, err := variationParams(r)
		if err != nil {
			return nil, err
		}
		var req variationTranslationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			return nil, err
		}
		return svc.UpsertVariationTranslation(r.Context(), id, vid, req.Language, req.Name)
	})
}

func AdminDeleteVariationTranslation(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return adminProductResponse(svc, logg, http.StatusOK, func(r *http.Request) (*models.Product, error) {
		id, vid, err := variationParams(r)
		if err != nil {
			return nil, err
		}
		return svc.DeleteVariationTranslation(r.Context(), id, vid, languageParam(r))
	})
}

func variationParams(r *http.Request) (uint, uint, error) {
	id, err := validators.ParseIDParam(r, "id")
	if err != nil {
		return 0, 0, err
	}
	vid, err := validators.ParseIDParam(r, "vid")
	if err != nil {
		return 0, 0, err
	}
	return id, vid, nil
}
