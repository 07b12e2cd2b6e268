package models

import "github.com/shopspring/decimal"

// LocalizedName returns the product name and description in language, falling
// back to the base fields when no translation exists.
func (p Product) LocalizedName(language string) (string, string) {
	if language == "" {
		return p.Name, p.Description
	}
	for _, t := range p.Translations {
		if t.Language == language {
			return t.Name, t.Description
		}
	}
	return p.Name, p.Description
}

func (v ProductVariation) LocalizedName(language string) string {
	if language == "" {
		return v.Name
	}
	for _, t := range v.Translations {
		if t.Language == language {
			return t.Name
		}
	}
	return v.Name
}

func (t Tag) LocalizedLabel(language string) string {
	if language == "" {
		return t.Label
	}
	for _, tr := range t.Translations {
		if tr.Language == language {
			return tr.Label
		}
	}
	return t.Label
}

// LocalizedContent returns the tip title and description. A translation with
// no title keeps the base title.
func (t Tip) LocalizedContent(language string) (string, string) {
	if language == "" {
		return t.Title, t.Description
	}
	for _, tr := range t.Translations {
		if tr.Language != language {
			continue
		}
		title := t.Title
		if tr.Title != nil && *tr.Title != "" {
			title = *tr.Title
		}
		return title, tr.Description
	}
	return t.Title, t.Description
}

// UnitPrice is the price charged for one unit of product in variation. A
// variation with a non-null price overrides the product price, zero included.
func UnitPrice(product Product, variation *ProductVariation) decimal.Decimal {
	if variation != nil && variation.Price.Valid {
		return variation.Price.Decimal
	}
	return product.Price
}

// ImageFor prefers the variation image over the product image.
func ImageFor(product Product, variation *ProductVariation) *string {
	if variation != nil && variation.ImageURL != nil && *variation.ImageURL != "" {
		return variation.ImageURL
	}
	return product.ImageURL
}
