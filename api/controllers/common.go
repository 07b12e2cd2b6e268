package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	"github.com/angelmondragon/storefront-backend/internal/repo"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type reorderRequest struct {
	Items []repo.OrderUpdate `json:"items" validate:"required,dive"`
}

func serviceUnavailable(w http.ResponseWriter, r *http.Request, logg *logger.Logger, name string) {
	responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, name+" service unavailable"))
}

// optionalEnum parses an enum query parameter; an absent value yields nil.
func optionalEnum[T any](r *http.Request, key string, parse func(string) (T, error)) (*T, error) {
	raw := validators.QueryString(r, key, 64)
	if raw == "" {
		return nil, nil
	}
	value, err := parse(raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid "+key).WithDetails(map[string]any{"field": key})
	}
	return &value, nil
}

func idParam(w http.ResponseWriter, r *http.Request, logg *logger.Logger, key string) (uint, bool) {
	id, err := validators.ParseIDParam(r, key)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return 0, false
	}
	return id, true
}

func languageParam(r *http.Request) string {
	return strings.ToLower(validators.SanitizeString(chi.URLParam(r, "language"), 16))
}
