package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
	"github.com/angelmondragon/storefront-backend/api/validators"
	tagsvc "github.com/angelmondragon/storefront-backend/internal/tags"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type tagRequest struct {
	Label        string             `json:"label" validate:"required,max=100"`
	Category     *enums.TagCategory `json:"category" validate:"omitempty,oneof=product tip"`
	Order        *int               `json:"order"`
	IsFilterable *bool              `json:"is_filterable"`
	BgColor      *string            `json:"bg_color" validate:"omitempty,hexcolor"`
	TextColor    *string            `json:"text_color" validate:"omitempty,hexcolor"`
}

type tagUpdateRequest struct {
	Label        *string            `json:"label" validate:"omitempty,max=100"`
	Category     *enums.TagCategory `json:"category" validate:"omitempty,oneof=product tip"`
	Order        *int               `json:"order"`
	IsFilterable *bool              `json:"is_filterable"`
	BgColor      *string            `json:"bg_color" validate:"omitempty,hexcolor"`
	TextColor    *string            `json:"text_color" validate:"omitempty,hexcolor"`
}

type tagTranslationRequest struct {
	Language string `json:"language" validate:"required,max=16"`
	Label    string `json:"label" validate:"required,max=100"`
}

type tagAssignRequest struct {
	TagID uint `json:"tag_id" validate:"required"`
}

// PublicListTags lists every tag, or with ?type= / ?tip_type= only the tags
// attached to active entities of that type.
func PublicListTags(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		filter, err := tagFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tagsvc.NewTagDTOs(rows, validators.Language(r)))
	}
}

func AdminListTags(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		filter, err := tagFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		rows, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tagsvc.NewAdminTagDTOs(rows))
	}
}

func tagFilter(r *http.Request) (tagsvc.ListFilter, error) {
	productType, err := optionalEnum(r, "type", enums.ParseProductType)
	if err != nil {
		return tagsvc.ListFilter{}, err
	}
	tipType, err := optionalEnum(r, "tip_type", enums.ParseTipType)
	if err != nil {
		return tagsvc.ListFilter{}, err
	}
	if productType != nil && tipType != nil {
		return tagsvc.ListFilter{}, pkgerrors.New(pkgerrors.CodeValidation, "type and tip_type cannot be combined")
	}
	category, err := optionalEnum(r, "category", enums.ParseTagCategory)
	if err != nil {
		return tagsvc.ListFilter{}, err
	}
	return tagsvc.ListFilter{ProductType: productType, TipType: tipType, Category: category}, nil
}

func AdminGetTag(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		tag, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tagsvc.NewAdminTagDTO(*tag))
	}
}

func AdminCreateTag(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		var req tagRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		input := tagsvc.CreateInput{
			Label:        req.Label,
			Order:        req.Order,
			IsFilterable: req.IsFilterable,
			BgColor:      req.BgColor,
			TextColor:    req.TextColor,
		}
		if req.Category != nil {
			input.Category = *req.Category
		}
		tag, err := svc.Create(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, tagsvc.NewAdminTagDTO(*tag))
	}
}

func AdminUpdateTag(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		var req tagUpdateRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tag, err := svc.Update(r.Context(), id, tagsvc.UpdateInput{
			Label:        req.Label,
			Category:     req.Category,
			Order:        req.Order,
			IsFilterable: req.IsFilterable,
			BgColor:      req.BgColor,
			TextColor:    req.TextColor,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tagsvc.NewAdminTagDTO(*tag))
	}
}

func AdminDeleteTag(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
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

func AdminReorderTags(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
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
		rows, err := svc.List(r.Context(), tagsvc.ListFilter{})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tagsvc.NewAdminTagDTOs(rows))
	}
}

func AdminUpsertTagTranslation(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		var req tagTranslationRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		tag, err := svc.UpsertTranslation(r.Context(), id, req.Language, req.Label)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tagsvc.NewAdminTagDTO(*tag))
	}
}

func AdminDeleteTagTranslation(svc tagsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
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
		tag, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, tagsvc.NewAdminTagDTO(*tag))
	}
}

// AdminEntityTags lists the tags of one product or tip.
func AdminEntityTags(svc tagsvc.Service, kind enums.EntityKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		writeEntityTags(w, r, svc, kind, id, logg)
	}
}

// AdminAssignTag links a tag to an entity. Assigning twice is a no-op.
func AdminAssignTag(svc tagsvc.Service, kind enums.EntityKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		var req tagAssignRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := svc.Assign(r.Context(), kind, id, req.TagID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeEntityTags(w, r, svc, kind, id, logg)
	}
}

func AdminUnassignTag(svc tagsvc.Service, kind enums.EntityKind, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			serviceUnavailable(w, r, logg, "tag")
			return
		}
		id, ok := idParam(w, r, logg, "id")
		if !ok {
			return
		}
		tagID, ok := idParam(w, r, logg, "tagID")
		if !ok {
			return
		}
		if err := svc.Unassign(r.Context(), kind, id, tagID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		writeEntityTags(w, r, svc, kind, id, logg)
	}
}

func writeEntityTags(w http.ResponseWriter, r *http.Request, svc tagsvc.Service, kind enums.EntityKind, id uint, logg *logger.Logger) {
	rows, err := svc.EntityTags(r.Context(), kind, id)
	if err != nil {
		responses.WriteError(r.Context(), logg, w, err)
		return
	}
	responses.WriteSuccess(w, tagsvc.NewAdminTagDTOs(rows))
}
