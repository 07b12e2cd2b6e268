package orders

import (
	"time"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// OrderDTO renders an order with its snapshotted lines.
type OrderDTO struct {
	ID           string            `json:"id"`
	Status       enums.OrderStatus `json:"status"`
	Total        string            `json:"total"`
	Notes        *string           `json:"notes"`
	Label        *string           `json:"label"`
	DisplayLabel string            `json:"display_label"`
	Items        []OrderItemDTO    `json:"items"`
	InsertedAt   time.Time         `json:"inserted_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

// OrderItemDTO resolves names through the live catalog rows; prices come from
// the snapshot.
type OrderItemDTO struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"product_id"`
	VariationID   *uint   `json:"variation_id"`
	ProductName   string  `json:"product_name"`
	VariationName *string `json:"variation_name"`
	Quantity      int     `json:"quantity"`
	UnitPrice     string  `json:"unit_price"`
	Subtotal      string  `json:"subtotal"`
}

func NewOrderDTO(order models.Order, language string) OrderDTO {
	dto := OrderDTO{
		ID:           order.ID,
		Status:       order.Status,
		Total:        order.Total.StringFixed(2),
		Notes:        order.Notes,
		Label:        order.Label,
		DisplayLabel: order.DisplayLabel(),
		Items:        make([]OrderItemDTO, 0, len(order.Items)),
		InsertedAt:   order.CreatedAt,
		UpdatedAt:    order.UpdatedAt,
	}
	for _, item := range order.Items {
		line := OrderItemDTO{
			ID:          item.ID,
			ProductID:   item.ProductID,
			VariationID: item.VariationID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice.StringFixed(2),
			Subtotal:    item.Subtotal().StringFixed(2),
		}
		if item.Product != nil {
			line.ProductName, _ = item.Product.LocalizedName(language)
		}
		if item.Variation != nil {
			name := item.Variation.LocalizedName(language)
			line.VariationName = &name
		}
		dto.Items = append(dto.Items, line)
	}
	return dto
}

func NewOrderDTOs(rows []models.Order, language string) []OrderDTO {
	out := make([]OrderDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, NewOrderDTO(row, language))
	}
	return out
}
