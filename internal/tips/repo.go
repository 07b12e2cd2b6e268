package tips

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// ListFilter narrows tip listings. TagIDs matches tips carrying any of the tags.
type ListFilter struct {
	ActiveOnly bool
	TipType    *enums.TipType
	TagIDs     []uint
}

type Repository struct {
	repo.Base
}

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

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Tip, error) {
	q := r.DB(ctx).Model(&models.Tip{}).Preload("Translations")
	if filter.ActiveOnly {
		q = q.Where("tips.is_active = ?", true)
	}
	if filter.TipType != nil {
		q = q.Where("tips.tip_type = ?", *filter.TipType)
	}
	if len(filter.TagIDs) > 0 {
		q = q.Where("tips.id IN (?)", r.DB(ctx).
			Model(&models.EntityTag{}).
			Select("entity_id").
			Where("entity_kind = ? AND tag_id IN ?", enums.EntityKindTip, filter.TagIDs))
	}

	var rows []models.Tip
	err := q.Order("tips.display_order ASC").
		Order("tips.created_at ASC").
		Order("tips.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Tip, error) {
	var tip models.Tip
	if err := r.DB(ctx).Preload("Translations").First(&tip, id).Error; err != nil {
		return nil, err
	}
	return &tip, nil
}

func (r *Repository) Create(ctx context.Context, tip *models.Tip) error {
	return r.DB(ctx).Omit(clause.Associations).Create(tip).Error
}

func (r *Repository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB(ctx).Model(&models.Tip{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the tip, its translations and its tag links.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.DB(ctx)
	if err := db.Where("entity_kind = ? AND entity_id = ?", enums.EntityKindTip, id).Delete(&models.EntityTag{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("tip_id = ?", id).Delete(&models.TipTranslation{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.Tip{}, id)
	return res.RowsAffected, res.Error
}

func (r *Repository) UpsertTranslation(ctx context.Context, row *models.TipTranslation) error {
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tip_id"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description", "updated_at"}),
	}).Create(row).Error
}

func (r *Repository) DeleteTranslation(ctx context.Context, tipID uint, language string) (int64, error) {
	res := r.DB(ctx).Where("tip_id = ? AND language = ?", tipID, language).Delete(&models.TipTranslation{})
	return res.RowsAffected, res.Error
}
