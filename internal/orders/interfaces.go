package orders

import (
	"context"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// Repository exposes persistence operations for orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, from, to enums.OrderStatus) (int64, error)
	UpdateLabel(ctx context.Context, id string, label *string) (int64, error)
}

// ListFilter narrows the admin order listing.
type ListFilter struct {
	Status *enums.OrderStatus
}
