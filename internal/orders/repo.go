package orders

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// statusRankSQL sorts open work first.
const statusRankSQL = "CASE status WHEN 'confirmed' THEN 0 WHEN 'processed' THEN 1 WHEN 'cancelled' THEN 2 ELSE 3 END"

type repository struct {
	repo.Base
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{Base: repo.NewBase(db)}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{Base: r.Bind(tx)}
}

// Create inserts the order and its items.
func (r *repository) Create(ctx context.Context, order *models.Order) error {
	db := r.DB(ctx)
	if err := db.Omit(clause.Associations).Create(order).Error; err != nil {
		return err
	}
	if len(order.Items) == 0 {
		return nil
	}
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	return db.Omit(clause.Associations).Create(&order.Items).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := withItems(r.DB(ctx)).Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	q := withItems(r.DB(ctx))
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	var rows []models.Order
	err := q.Order(statusRankSQL).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&rows).Error
	return rows, err
}

// UpdateStatus moves an order only while it is still in from.
func (r *repository) UpdateStatus(ctx context.Context, id string, from, to enums.OrderStatus) (int64, error) {
	res := r.DB(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

func (r *repository) UpdateLabel(ctx context.Context, id string, label *string) (int64, error) {
	res := r.DB(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("label", label)
	return res.RowsAffected, res.Error
}

func withItems(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Items.Product.Translations").
		Preload("Items.Variation.Translations")
}
