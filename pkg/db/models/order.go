package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Order is created atomically from a cart. Total is fixed at creation.
type Order struct {
	ID        string            `gorm:"column:id;size:26;primaryKey"`
	Status    enums.OrderStatus `gorm:"column:status;size:32;not null;index"`
	Total     decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	Notes     *string           `gorm:"column:notes;type:text"`
	Label     *string           `gorm:"column:label;size:255"`
	Items     []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

// DisplayLabel falls back to the order id when no label is set.
func (o Order) DisplayLabel() string {
	if o.Label != nil && strings.TrimSpace(*o.Label) != "" {
		return *o.Label
	}
	return o.ID
}

// OrderItem snapshots the unit price at checkout. Names are read through the
// live product and variation rows.
type OrderItem struct {
	ID          uint              `gorm:"column:id;primaryKey"`
	OrderID     string            `gorm:"column:order_id;size:26;not null;index"`
	ProductID   uint              `gorm:"column:product_id;not null"`
	VariationID *uint             `gorm:"column:variation_id"`
	Quantity    int               `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(10,2);not null"`
	Product     *Product          `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT"`
	Variation   *ProductVariation `gorm:"foreignKey:VariationID;constraint:OnDelete:RESTRICT"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}

// Subtotal returns unit price times quantity.
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
