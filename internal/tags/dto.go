package tags

import (
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// TagDTO is the public shape of a tag. Label is localized when a language was
// requested; Translations is only filled for admin responses.
type TagDTO struct {
	ID           uint              `json:"id"`
	Label        string            `json:"label"`
	Category     enums.TagCategory `json:"category"`
	Order        int               `json:"order"`
	IsFilterable bool              `json:"is_filterable"`
	BgColor      string            `json:"bg_color"`
	TextColor    string            `json:"text_color"`
	Translations []TranslationDTO  `json:"translations,omitempty"`
}

type TranslationDTO struct {
	Language string `json:"language"`
	Label    string `json:"label"`
}

func NewTagDTO(tag models.Tag, language string) TagDTO {
	return TagDTO{
		ID:           tag.ID,
		Label:        tag.LocalizedLabel(language),
		Category:     tag.Category,
		Order:        tag.Order,
		IsFilterable: tag.IsFilterable,
		BgColor:      tag.BgColor,
		TextColor:    tag.TextColor,
	}
}

// NewAdminTagDTO keeps the base label and lists every translation.
func NewAdminTagDTO(tag models.Tag) TagDTO {
	dto := NewTagDTO(tag, "")
	dto.Translations = make([]TranslationDTO, 0, len(tag.Translations))
	for _, tr := range tag.Translations {
		dto.Translations = append(dto.Translations, TranslationDTO{Language: tr.Language, Label: tr.Label})
	}
	return dto
}

func NewTagDTOs(rows []models.Tag, language string) []TagDTO {
	out := make([]TagDTO, 0, len(rows))
	for _, tag := range rows {
		out = append(out, NewTagDTO(tag, language))
	}
	return out
}

func NewAdminTagDTOs(rows []models.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(rows))
	for _, tag := range rows {
		out = append(out, NewAdminTagDTO(tag))
	}
	return out
}
