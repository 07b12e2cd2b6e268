package cart

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

// Repository persists carts and their lines.
type Repository struct {
	repo.Base
}

// NewRepository constructs a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx binds the repository to a transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return NewRepository(tx)
}

// FindByToken loads a cart with its lines, products and variations, lines in
// insertion order.
func (r *Repository) FindByToken(ctx context.Context, token string) (*models.Cart, error) {
	var cart models.Cart
	err := r.DB(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC").Order("id ASC")
		}).
		Preload("Items.Product.Translations").
		Preload("Items.Variation.Translations").
		Where("token = ?", token).
		First(&cart).Error
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

func (r *Repository) Create(ctx context.Context, cart *models.Cart) error {
	return r.DB(ctx).Omit(clause.Associations).Create(cart).Error
}

func (r *Repository) FindProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) FindVariation(ctx context.Context, id uint) (*models.ProductVariation, error) {
	var variation models.ProductVariation
	if err := r.DB(ctx).First(&variation, id).Error; err != nil {
		return nil, err
	}
	return &variation, nil
}

// AddQuantity inserts the line or, when the (cart, product, variation) line
// already exists, adds item.Quantity to it in the same statement so
// concurrent adds accumulate instead of racing.
func (r *Repository) AddQuantity(ctx context.Context, item *models.CartItem) error {
	item.VariationKey = models.VariationKeyFor(item.VariationID)
	return r.DB(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "product_id"}, {Name: "variation_key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(item).Error
}

func (r *Repository) SetQuantity(ctx context.Context, cartID, itemID uint, quantity int) (int64, error) {
	res := r.DB(ctx).Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	return res.RowsAffected, res.Error
}

func (r *Repository) DeleteItem(ctx context.Context, cartID, itemID uint) (int64, error) {
	res := r.DB(ctx).Where("id = ? AND cart_id = ?", itemID, cartID).Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}

// Delete hard-deletes the cart and its lines.
func (r *Repository) Delete(ctx context.Context, cartID uint) (int64, error) {
	db := r.DB(ctx)
	if err := db.Where("cart_id = ?", cartID).Delete(&models.CartItem{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.Cart{}, cartID)
	return res.RowsAffected, res.Error
}
