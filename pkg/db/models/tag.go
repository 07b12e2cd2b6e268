package models

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

const (
	DefaultTagBgColor   = "#f5f5f4"
	DefaultTagTextColor = "#57534e"
)

// Tag labels are unique and case-sensitive.
type Tag struct {
	ID           uint              `gorm:"column:id;primaryKey"`
	Label        string            `gorm:"column:label;size:100;not null;uniqueIndex:uq_tags_label"`
	Category     enums.TagCategory `gorm:"column:category;size:16;not null"`
	Order        int               `gorm:"column:display_order;not null"`
	IsFilterable bool              `gorm:"column:is_filterable;not null"`
	BgColor      string            `gorm:"column:bg_color;size:16;not null"`
	TextColor    string            `gorm:"column:text_color;size:16;not null"`
	Translations []TagTranslation  `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

type TagTranslation struct {
	ID        uint      `gorm:"column:id;primaryKey"`
	TagID     uint      `gorm:"column:tag_id;not null;uniqueIndex:uq_tag_translations_language,priority:1"`
	Language  string    `gorm:"column:language;size:8;not null;uniqueIndex:uq_tag_translations_language,priority:2"`
	Label     string    `gorm:"column:label;size:100;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// EntityTag is the single polymorphic join between tags and products or tips.
// EntityID is only meaningful together with EntityKind.
type EntityTag struct {
	ID         uint             `gorm:"column:id;primaryKey"`
	EntityKind enums.EntityKind `gorm:"column:entity_kind;size:16;not null;uniqueIndex:uq_entity_tags,priority:1;index:idx_entity_tags_entity,priority:1"`
	EntityID   uint             `gorm:"column:entity_id;not null;uniqueIndex:uq_entity_tags,priority:2;index:idx_entity_tags_entity,priority:2"`
	TagID      uint             `gorm:"column:tag_id;not null;uniqueIndex:uq_entity_tags,priority:3;index"`
	Tag        *Tag             `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time        `gorm:"column:created_at;autoCreateTime"`
}
