package products

import (
	"time"

	"github.com/angelmondragon/storefront-backend/internal/tags"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// ProductDTO is returned by catalog endpoints. Money is rendered with two
// decimals. Translations are only filled for admin responses.
type ProductDTO struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	Price        string            `json:"price"`
	ImageURL     *string           `json:"image_url"`
	Order        int               `json:"order"`
	IsActive     bool              `json:"is_active"`
	Type         enums.ProductType `json:"type"`
	Variations   []VariationDTO    `json:"variations"`
	Tags         []tags.TagDTO     `json:"tags"`
	Translations []TranslationDTO  `json:"translations,omitempty"`
	InsertedAt   time.Time         `json:"inserted_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// VariationDTO exposes the override price as null when the product price applies.
type VariationDTO struct {
	ID             uint                      `json:"id"`
	Name           string                    `json:"name"`
	Price          *string                   `json:"price"`
	EffectivePrice string                    `json:"effective_price"`
	ImageURL       *string                   `json:"image_url"`
	Order          int                       `json:"order"`
	IsActive       bool                      `json:"is_active"`
	Translations   []VariationTranslationDTO `json:"translations,omitempty"`
}

type TranslationDTO struct {
	Language    string `json:"language"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type VariationTranslationDTO struct {
	Language string `json:"language"`
	Name     string `json:"name"`
}

func NewProductDTO(p models.Product, language string) ProductDTO {
	name, description := p.LocalizedName(language)
	dto := ProductDTO{
		ID:          p.ID,
		Name:        name,
		Description: description,
		Price:       p.Price.StringFixed(2),
		ImageURL:    p.ImageURL,
		Order:       p.Order,
		IsActive:    p.IsActive,
		Type:        p.Type,
		Variations:  make([]VariationDTO, 0, len(p.Variations)),
		Tags:        tags.NewTagDTOs(p.Tags, language),
		InsertedAt:  p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for i := range p.Variations {
		dto.Variations = append(dto.Variations, newVariationDTO(p, &p.Variations[i], language))
	}
	return dto
}

// NewAdminProductDTO keeps base names and lists all translations.
func NewAdminProductDTO(p models.Product) ProductDTO {
	dto := NewProductDTO(p, "")
	dto.Tags = tags.NewAdminTagDTOs(p.Tags)
	dto.Translations = make([]TranslationDTO, 0, len(p.Translations))
	for _, tr := range p.Translations {
		dto.Translations = append(dto.Translations, TranslationDTO{
			Language:    tr.Language,
			Name:        tr.Name,
			Description: tr.Description,
		})
	}
	for i, v := range p.Variations {
		translations := make([]VariationTranslationDTO, 0, len(v.Translations))
		for _, tr := range v.Translations {
			translations = append(translations, VariationTranslationDTO{Language: tr.Language, Name: tr.Name})
		}
		dto.Variations[i].Translations = translations
	}
	return dto
}

func NewProductDTOs(rows []models.Product, language string, admin bool) []ProductDTO {
	out := make([]ProductDTO, 0, len(rows))
	for _, p := range rows {
		if admin {
			out = append(out, NewAdminProductDTO(p))
			continue
		}
		out = append(out, NewProductDTO(p, language))
	}
	return out
}

func newVariationDTO(p models.Product, v *models.ProductVariation, language string) VariationDTO {
	dto := VariationDTO{
		ID:             v.ID,
		Name:           v.LocalizedName(language),
		EffectivePrice: models.UnitPrice(p, v).StringFixed(2),
		ImageURL:       v.ImageURL,
		Order:          v.Order,
		IsActive:       v.IsActive,
	}
	if v.Price.Valid {
		price := v.Price.Decimal.StringFixed(2)
		dto.Price = &price
	}
	return dto
}
