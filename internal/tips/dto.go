package tips

import (
	"time"

	"github.com/angelmondragon/storefront-backend/internal/tags"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

type TipDTO struct {
	ID           uint             `json:"id"`
	Title        string           `json:"title"`
	Description  string           `json:"description"`
	ImageURL     *string          `json:"image_url"`
	Order        int              `json:"order"`
	IsActive     bool             `json:"is_active"`
	TipType      enums.TipType    `json:"tip_type"`
	Tags         []tags.TagDTO    `json:"tags"`
	Translations []TranslationDTO `json:"translations,omitempty"`
	InsertedAt   time.Time        `json:"inserted_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

type TranslationDTO struct {
	Language    string  `json:"language"`
	Title       *string `json:"title"`
	Description string  `json:"description"`
}

func NewTipDTO(tip models.Tip, language string) TipDTO {
	title, description := tip.LocalizedContent(language)
	return TipDTO{
		ID:          tip.ID,
		Title:       title,
		Description: description,
		ImageURL:    tip.ImageURL,
		Order:       tip.Order,
		IsActive:    tip.IsActive,
		TipType:     tip.TipType,
		Tags:        tags.NewTagDTOs(tip.Tags, language),
		InsertedAt:  tip.CreatedAt,
		UpdatedAt:   tip.UpdatedAt,
	}
}

func NewAdminTipDTO(tip models.Tip) TipDTO {
	dto := NewTipDTO(tip, "")
	dto.Translations = make([]TranslationDTO, 0, len(tip.Translations))
	for _, tr := range tip.Translations {
		dto.Translations = append(dto.Translations, TranslationDTO{
			Language:    tr.Language,
			Title:       tr.Title,
			Description: tr.Description,
		})
	}
	return dto
}

func NewTipDTOs(rows []models.Tip, language string, admin bool) []TipDTO {
	out := make([]TipDTO, 0, len(rows))
	for _, tip := range rows {
		if admin {
			out = append(out, NewAdminTipDTO(tip))
			continue
		}
		out = append(out, NewTipDTO(tip, language))
	}
	return out
}
