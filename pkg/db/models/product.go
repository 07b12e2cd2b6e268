package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Product is a catalog entry. Price is stored as numeric(10,2).
type Product struct {
	ID           uint                 `gorm:"column:id;primaryKey"`
	Name         string               `gorm:"column:name;size:255;not null"`
	Description  string               `gorm:"column:description;type:text;not null"`
	Price        decimal.Decimal      `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL     *string              `gorm:"column:image_url;size:1024"`
	Order        int                  `gorm:"column:display_order;not null;index:idx_products_listing,priority:2"`
	IsActive     bool                 `gorm:"column:is_active;not null;index:idx_products_listing,priority:1"`
	Type         enums.ProductType    `gorm:"column:type;size:32;not null"`
	Translations []ProductTranslation `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variations   []ProductVariation   `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Tags         []Tag                `gorm:"-"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time            `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductTranslation is unique per (product, language).
type ProductTranslation struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	ProductID   uint      `gorm:"column:product_id;not null;uniqueIndex:uq_product_translations_language,priority:1"`
	Language    string    `gorm:"column:language;size:8;not null;uniqueIndex:uq_product_translations_language,priority:2"`
	Name        string    `gorm:"column:name;size:255;not null"`
	Description string    `gorm:"column:description;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// ProductVariation is a sub-option of a product. A NULL price inherits the
// product price; zero is a real override.
type ProductVariation struct {
	ID           uint                   `gorm:"column:id;primaryKey"`
	ProductID    uint                   `gorm:"column:product_id;not null;index"`
	Name         string                 `gorm:"column:name;size:255;not null"`
	Price        decimal.NullDecimal    `gorm:"column:price;type:numeric(10,2)"`
	ImageURL     *string                `gorm:"column:image_url;size:1024"`
	Order        int                    `gorm:"column:display_order;not null"`
	IsActive     bool                   `gorm:"column:is_active;not null"`
	Translations []VariationTranslation `gorm:"foreignKey:VariationID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

type VariationTranslation struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	VariationID uint      `gorm:"column:variation_id;not null;uniqueIndex:uq_variation_translations_language,priority:1"`
	Language    string    `gorm:"column:language;size:8;not null;uniqueIndex:uq_variation_translations_language,priority:2"`
	Name        string    `gorm:"column:name;size:255;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
