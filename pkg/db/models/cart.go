package models

import "time"

// Cart is an anonymous basket addressed by an unguessable ULID token.
type Cart struct {
	ID        uint       `gorm:"column:id;primaryKey"`
	Token     string     `gorm:"column:token;size:26;not null;uniqueIndex:uq_carts_token"`
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

// CartItem is one (product, variation) line. VariationKey mirrors VariationID
// with 0 for "no variation" so the line uniqueness index treats absent
// variations as equal.
type CartItem struct {
	ID           uint              `gorm:"column:id;primaryKey"`
	CartID       uint              `gorm:"column:cart_id;not null;uniqueIndex:uq_cart_items_line,priority:1"`
	ProductID    uint              `gorm:"column:product_id;not null;uniqueIndex:uq_cart_items_line,priority:2"`
	VariationID  *uint             `gorm:"column:variation_id"`
	VariationKey uint              `gorm:"column:variation_key;not null;uniqueIndex:uq_cart_items_line,priority:3"`
	Quantity     int               `gorm:"column:quantity;not null"`
	Product      *Product          `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	Variation    *ProductVariation `gorm:"foreignKey:VariationID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// VariationKeyFor maps an optional variation id onto the non-null key column.
func VariationKeyFor(variationID *uint) uint {
	if variationID == nil {
		return 0
	}
	return *variationID
}
