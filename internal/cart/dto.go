package cart

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// CartDTO is the public view of a cart. Money is rendered with two decimals.
type CartDTO struct {
	Token     string        `json:"token"`
	Items     []CartItemDTO `json:"items"`
	Total     string        `json:"total"`
	ItemCount int           `json:"item_count"`
}

type CartItemDTO struct {
	ID            uint    `json:"id"`
	ProductID     uint    `json:"product_id"`
	VariationID   *uint   `json:"variation_id"`
	ProductName   string  `json:"product_name"`
	VariationName *string `json:"variation_name"`
	ImageURL      *string `json:"image_url"`
	Quantity      int     `json:"quantity"`
	UnitPrice     string  `json:"unit_price"`
	Subtotal      string  `json:"subtotal"`
}

// LineUnitPrice is the effective price for one unit of the line.
func LineUnitPrice(item models.CartItem) decimal.Decimal {
	if item.Product == nil {
		return decimal.Zero
	}
	return models.UnitPrice(*item.Product, item.Variation)
}

// Total sums line subtotals, rounded to cents.
func Total(cart models.Cart) decimal.Decimal {
	total := decimal.Zero
	for _, item := range cart.Items {
		total = total.Add(LineUnitPrice(item).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total.Round(2)
}

func NewCartDTO(cart models.Cart, language string) CartDTO {
	dto := CartDTO{
		Token: cart.Token,
		Items: make([]CartItemDTO, 0, len(cart.Items)),
		Total: Total(cart).StringFixed(2),
	}
	for _, item := range cart.Items {
		dto.Items = append(dto.Items, newCartItemDTO(item, language))
		dto.ItemCount += item.Quantity
	}
	return dto
}

func newCartItemDTO(item models.CartItem, language string) CartItemDTO {
	unit := LineUnitPrice(item)
	dto := CartItemDTO{
		ID:          item.ID,
		ProductID:   item.ProductID,
		VariationID: item.VariationID,
		Quantity:    item.Quantity,
		UnitPrice:   unit.StringFixed(2),
		Subtotal:    unit.Mul(decimal.NewFromInt(int64(item.Quantity))).StringFixed(2),
	}
	if item.Product != nil {
		dto.ProductName, _ = item.Product.LocalizedName(language)
		dto.ImageURL = models.ImageFor(*item.Product, item.Variation)
	}
	if item.Variation != nil {
		name := item.Variation.LocalizedName(language)
		dto.VariationName = &name
	}
	return dto
}
