package models

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Tip is informational content that shares the tag engine with products.
type Tip struct {
	ID           uint             `gorm:"column:id;primaryKey"`
	Title        string           `gorm:"column:title;size:255;not null"`
	Description  string           `gorm:"column:description;type:text;not null"`
	ImageURL     *string          `gorm:"column:image_url;size:1024"`
	Order        int              `gorm:"column:display_order;not null"`
	IsActive     bool             `gorm:"column:is_active;not null"`
	TipType      enums.TipType    `gorm:"column:tip_type;size:32;not null"`
	Translations []TipTranslation `gorm:"foreignKey:TipID;constraint:OnDelete:CASCADE"`
	Tags         []Tag            `gorm:"-"`
	CreatedAt    time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

type TipTranslation struct {
	ID          uint      `gorm:"column:id;primaryKey"`
	TipID       uint      `gorm:"column:tip_id;not null;uniqueIndex:uq_tip_translations_language,priority:1"`
	Language    string    `gorm:"column:language;size:8;not null;uniqueIndex:uq_tip_translations_language,priority:2"`
	Title       *string   `gorm:"column:title;size:255"`
	Description string    `gorm:"column:description;type:text;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
