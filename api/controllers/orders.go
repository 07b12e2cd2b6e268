package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	ordersvc "github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxNotesLen = 2000

type checkoutRequest struct {
	CartToken string  `json:"cart_token" validate:"required,max=64"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

type orderStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

type orderLabelRequest struct {
	Label *string `json:"label" validate:"omitempty,max=255"`
}

// Checkout converts a cart into a confirmed order and answers 201 with the order.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "checkout")
			return
		}
		var req checkoutRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var notes *string
		if req.Notes != nil {
			cleaned := validators.SanitizeString(*req.Notes, maxNotesLen)
			notes = &cleaned
		}

		ctx := logg.WithCartToken(r.Context(), req.CartToken)
		order, err := svc.Checkout(ctx, checkoutsvc.Input{CartToken: strings.TrimSpace(req.CartToken), Notes: notes})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, ordersvc.NewOrderDTO(*order, validators.Language(r)))
	}
}

// GetOrder is public: the ULID is the only capability needed to read an order.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "orders")
			return
		}
		order, err := svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ordersvc.NewOrderDTO(*order, validators.Language(r)))
	}
}

// AdminListOrders lists confirmed, then processed, then cancelled orders.
func AdminListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "orders")
			return
		}
		status, err := optionalEnum(r, "status", enums.ParseOrderStatus)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), ordersvc.ListFilter{Status: status})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ordersvc.NewOrderDTOs(rows, validators.Language(r)))
	}
}

func AdminGetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return GetOrder(svc, logg)
}

func AdminUpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "orders")
			return
		}
		var req orderStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		id := chi.URLParam(r, "id")
		ctx := logg.WithOrderID(r.Context(), id)
		order, err := svc.UpdateStatus(ctx, id, req.Status)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, ordersvc.NewOrderDTO(*order, ""))
	}
}

// AdminUpdateOrder sets or clears the admin label. A null or blank label clears it.
func AdminUpdateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "orders")
			return
		}
		var req orderLabelRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		label := ""
		if req.Label != nil {
			label = *req.Label
		}
		order, err := svc.SetLabel(r.Context(), chi.URLParam(r, "id"), label)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ordersvc.NewOrderDTO(*order, ""))
	}
}
