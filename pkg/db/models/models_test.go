package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestUnitPriceFallback(t *testing.T) {
	product := Product{Price: decimal.RequireFromString("9.99")}

	assert.Equal(t, "9.99", UnitPrice(product, nil).StringFixed(2))
	assert.Equal(t, "9.99", UnitPrice(product, &ProductVariation{}).StringFixed(2))

	override := &ProductVariation{Price: decimal.NewNullDecimal(decimal.RequireFromString("12.50"))}
	assert.Equal(t, "12.50", UnitPrice(product, override).StringFixed(2))

	free := &ProductVariation{Price: decimal.NewNullDecimal(decimal.Zero)}
	assert.True(t, UnitPrice(product, free).IsZero(), "zero is an override, not a fallback")
}

func TestImageFor(t *testing.T) {
	productImg := "p.png"
	variationImg := "v.png"
	empty := ""
	product := Product{ImageURL: &productImg}

	assert.Equal(t, &productImg, ImageFor(product, nil))
	assert.Equal(t, &productImg, ImageFor(product, &ProductVariation{ImageURL: &empty}))
	assert.Equal(t, &variationImg, ImageFor(product, &ProductVariation{ImageURL: &variationImg}))
}

func TestLocalizedFallbacks(t *testing.T) {
	product := Product{
		Name:         "Shampoo",
		Description:  "Gentle",
		Translations: []ProductTranslation{{Language: "es", Name: "Champú", Description: "Suave"}},
	}
	name, desc := product.LocalizedName("es")
	assert.Equal(t, "Champú", name)
	assert.Equal(t, "Suave", desc)
	name, _ = product.LocalizedName("fr")
	assert.Equal(t, "Shampoo", name)

	esTitle := "Consejo"
	tip := Tip{
		Title:       "Tip",
		Description: "Body",
		Translations: []TipTranslation{
			{Language: "es", Title: &esTitle, Description: "Cuerpo"},
			{Language: "pt", Description: "Corpo"},
		},
	}
	title, body := tip.LocalizedContent("es")
	assert.Equal(t, "Consejo", title)
	assert.Equal(t, "Cuerpo", body)
	title, body = tip.LocalizedContent("pt")
	assert.Equal(t, "Tip", title)
	assert.Equal(t, "Corpo", body)

	tag := Tag{Label: "Vegan", Translations: []TagTranslation{{Language: "es", Label: "Vegano"}}}
	assert.Equal(t, "Vegano", tag.LocalizedLabel("es"))
	assert.Equal(t, "Vegan", tag.LocalizedLabel(""))
}

func TestOrderDisplayLabel(t *testing.T) {
	order := Order{ID: "01HZX3J8K9M2N4P6Q8R0S2T4V6"}
	assert.Equal(t, order.ID, order.DisplayLabel())

	blank := "   "
	order.Label = &blank
	assert.Equal(t, order.ID, order.DisplayLabel())

	label := "Front desk"
	order.Label = &label
	assert.Equal(t, "Front desk", order.DisplayLabel())
}

func TestVariationKeyFor(t *testing.T) {
	assert.Equal(t, uint(0), VariationKeyFor(nil))
	id := uint(7)
	assert.Equal(t, uint(7), VariationKeyFor(&id))
}
