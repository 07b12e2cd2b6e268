package products

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// ListFilter narrows catalog listings. Search matches the base or any
// translated name, case-insensitively; TagIDs matches any of the tags.
type ListFilter struct {
	ActiveOnly bool
	Type       *enums.ProductType
	Search     string
	TagIDs     []uint
}

// Repository persists products, variations and their translations.
type Repository struct {
	repo.Base
}

// NewRepository builds a catalog repository bound to the provided DB.
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

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	q := r.withChildren(r.DB(ctx).Model(&models.Product{}), filter.ActiveOnly)
	if filter.ActiveOnly {
		q = q.Where("products.is_active = ?", true)
	}
	if filter.Type != nil {
		q = q.Where("products.type = ?", *filter.Type)
	}
	if term := strings.TrimSpace(filter.Search); term != "" {
		like := "%" + strings.ToLower(term) + "%"
		q = q.Where("LOWER(products.name) LIKE ? OR products.id IN (?)", like, r.DB(ctx).
			Model(&models.ProductTranslation{}).
			Select("product_id").
			Where("LOWER(name) LIKE ?", like))
	}
	if len(filter.TagIDs) > 0 {
		q = q.Where("products.id IN (?)", r.DB(ctx).
			Model(&models.EntityTag{}).
			Select("entity_id").
			Where("entity_kind = ? AND tag_id IN ?", enums.EntityKindProduct, filter.TagIDs))
	}

	var rows []models.Product
	err := q.Order("products.display_order ASC").
		Order("products.created_at ASC").
		Order("products.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindByID loads a product with translations and variations. When
// activeVariationsOnly is set inactive variations are left out.
func (r *Repository) FindByID(ctx context.Context, id uint, activeVariationsOnly bool) (*models.Product, error) {
	var product models.Product
	if err := r.withChildren(r.DB(ctx), activeVariationsOnly).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *Repository) withChildren(q *gorm.DB, activeVariationsOnly bool) *gorm.DB {
	return q.
		Preload("Translations").
		Preload("Variations", func(db *gorm.DB) *gorm.DB {
			if activeVariationsOnly {
				db = db.Where("is_active = ?", true)
			}
			return db.Order("display_order ASC").Order("created_at ASC").Order("id ASC")
		}).
		Preload("Variations.Translations")
}

func (r *Repository) Create(ctx context.Context, product *models.Product) error {
	return r.DB(ctx).Omit(clause.Associations).Create(product).Error
}

func (r *Repository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the product. Variations, translations and cart lines go with
// it; tag links are removed explicitly since entity_tags carries no foreign key.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.DB(ctx)
	if err := db.Where("entity_kind = ? AND entity_id = ?", enums.EntityKindProduct, id).Delete(&models.EntityTag{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.Product{}, id)
	return res.RowsAffected, res.Error
}

func (r *Repository) UpsertTranslation(ctx context.Context, row *models.ProductTranslation) error {
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "description", "updated_at"}),
	}).Create(row).Error
}

func (r *Repository) DeleteTranslation(ctx context.Context, productID uint, language string) (int64, error) {
	res := r.DB(ctx).Where("product_id = ? AND language = ?", productID, language).Delete(&models.ProductTranslation{})
	return res.RowsAffected, res.Error
}

// FindVariation loads a variation only if it belongs to productID.
func (r *Repository) FindVariation(ctx context.Context, productID, variationID uint) (*models.ProductVariation, error) {
	var variation models.ProductVariation
	err := r.DB(ctx).
		Preload("Translations").
		Where("id = ? AND product_id = ?", variationID, productID).
		First(&variation).Error
	if err != nil {
		return nil, err
	}
	return &variation, nil
}

func (r *Repository) CreateVariation(ctx context.Context, variation *models.ProductVariation) error {
	return r.DB(ctx).Omit(clause.Associations).Create(variation).Error
}

func (r *Repository) UpdateVariation(ctx context.Context, variationID uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB(ctx).Model(&models.ProductVariation{}).Where("id = ?", variationID).Updates(fields).Error
}

func (r *Repository) DeleteVariation(ctx context.Context, productID, variationID uint) (int64, error) {
	res := r.DB(ctx).Where("id = ? AND product_id = ?", variationID, productID).Delete(&models.ProductVariation{})
	return res.RowsAffected, res.Error
}

func (r *Repository) UpsertVariationTranslation(ctx context.Context, row *models.VariationTranslation) error {
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "variation_id"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
	}).Create(row).Error
}

func (r *Repository) DeleteVariationTranslation(ctx context.Context, variationID uint, language string) (int64, error) {
	res := r.DB(ctx).Where("variation_id = ? AND language = ?", variationID, language).Delete(&models.VariationTranslation{})
	return res.RowsAffected, res.Error
}

// ReorderVariations applies positions to variations of productID only.
func (r *Repository) ReorderVariations(ctx context.Context, productID uint, updates []repo.OrderUpdate) (int64, error) {
	return r.Reorder(ctx, &models.ProductVariation{}, updates, func(q *gorm.DB) *gorm.DB {
		return q.Where("product_id = ?", productID)
	})
}

// TagIDs returns the ids of tags linked to the product.
func (r *Repository) TagIDs(ctx context.Context, productID uint) ([]uint, error) {
	var ids []uint
	err := r.DB(ctx).
		Model(&models.EntityTag{}).
		Where("entity_kind = ? AND entity_id = ?", enums.EntityKindProduct, productID).
		Order("id ASC").
		Pluck("tag_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// LinkTags attaches existing tags to the product.
func (r *Repository) LinkTags(ctx context.Context, productID uint, tagIDs []uint) error {
	if len(tagIDs) == 0 {
		return nil
	}
	rows := make([]models.EntityTag, 0, len(tagIDs))
	for _, tagID := range tagIDs {
		rows = append(rows, models.EntityTag{EntityKind: enums.EntityKindProduct, EntityID: productID, TagID: tagID})
	}
	return r.DB(ctx).Omit(clause.Associations).Create(&rows).Error
}
