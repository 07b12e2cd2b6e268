package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	tipsvc "github.com/angelmondragon/storefront-backend/internal/tips"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type tipRequest struct {
	Title       string         `json:"title" validate:"required,max=255"`
	Description string         `json:"description"`
	ImageURL    *string        `json:"image_url" validate:"omitempty,max=2048"`
	Order       int            `json:"order"`
	IsActive    *bool          `json:"is_active"`
	TipType     *enums.TipType `json:"tip_type" validate:"omitempty,oneof=quick_tip business"`
}

type tipUpdateRequest struct {
	Title       *string        `json:"title" validate:"omitempty,max=255"`
	Description *string        `json:"description"`
	ImageURL    *string        `json:"image_url" validate:"omitempty,max=2048"`
	Order       *int           `json:"order"`
	IsActive    *bool          `json:"is_active"`
	TipType     *enums.TipType `json:"tip_type" validate:"omitempty,oneof=quick_tip business"`
}

type tipTranslationRequest struct {
	Language    string  `json:"language" validate:"required,max=16"`
	Title       *string `json:"title" validate:"omitempty,max=255"`
	Description string  `json:"description"`
}

func PublicListTips(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return listTips(svc, logg, false)
}

func AdminListTips(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return listTips(svc, logg, true)
}

func listTips(svc tipsvc.Service, logg *logger.Logger, admin bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
			return
		}
		tipType, err := optionalEnum(r, "tip_type", enums.ParseTipType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tagIDs, err := validators.ParseQueryIDs(r, "tag_ids")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), tipsvc.ListFilter{ActiveOnly: !admin, TipType: tipType, TagIDs: tagIDs})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		language := validators.Language(r)
		if admin {
			language = ""
		}
		responses.WriteSuccess(w, tipsvc.NewTipDTOs(rows, language, admin))
	}
}

func AdminGetTip(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		tip, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tipsvc.NewAdminTipDTO(*tip))
	}
}

// AdminCreateTip appends the tip after the current maximum when order is 0.
func AdminCreateTip(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
			return
		}
		var req tipRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := tipsvc.Input{
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Order:       req.Order,
			IsActive:    req.IsActive,
		}
		if req.TipType != nil {
			input.TipType = *req.TipType
		}
		tip, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tipsvc.NewAdminTipDTO(*tip))
	}
}

func AdminUpdateTip(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		var req tipUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tip, err := svc.Update(r.Context(), id, tipsvc.UpdateInput{
			Title:       req.Title,
			Description: req.Description,
			ImageURL:    req.ImageURL,
			Order:       req.Order,
			IsActive:    req.IsActive,
			TipType:     req.TipType,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tipsvc.NewAdminTipDTO(*tip))
	}
}

func AdminDeleteTip(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
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

func AdminReorderTips(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
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
		rows, err := svc.List(r.Context(), tipsvc.ListFilter{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tipsvc.NewTipDTOs(rows, "", true))
	}
}

func AdminUpsertTipTranslation(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		var req tipTranslationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tip, err := svc.UpsertTranslation(r.Context(), id, tipsvc.TranslationInput{
			Language:    req.Language,
			Title:       req.Title,
			Description: req.Description,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tipsvc.NewAdminTipDTO(*tip))
	}
}

func AdminDeleteTipTranslation(svc tipsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tip")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		if err := svc.DeleteTranslation(r.Context(), id, languageParam(r)); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tip, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tipsvc.NewAdminTipDTO(*tip))
	}
}
