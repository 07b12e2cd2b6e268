package tags

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

// ListFilter narrows the tag listing. ProductType and TipType are mutually
// exclusive; when set only tags attached to an active entity of that type are
// returned.
type ListFilter struct {
	ProductType *enums.ProductType
	TipType     *enums.TipType
	Category    *enums.TagCategory
}

// Repository persists tags, their translations and entity associations.
type Repository struct {
	repo.Base
}

// NewRepository builds a tag repository bound to the provided DB.
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

func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Tag, error) {
	q := r.DB(ctx).Model(&models.Tag{}).Preload("Translations")

	switch {
	case filter.ProductType != nil:
		q = q.Where("tags.id IN (?)", r.DB(ctx).
			Table("entity_tags").
			Select("entity_tags.tag_id").
			Joins("JOIN products ON products.id = entity_tags.entity_id").
			Where("entity_tags.entity_kind = ? AND products.is_active = ? AND products.type = ?",
				enums.EntityKindProduct, true, *filter.ProductType))
	case filter.TipType != nil:
		q = q.Where("tags.id IN (?)", r.DB(ctx).
			Table("entity_tags").
			Select("entity_tags.tag_id").
			Joins("JOIN tips ON tips.id = entity_tags.entity_id").
			Where("entity_tags.entity_kind = ? AND tips.is_active = ? AND tips.tip_type = ?",
				enums.EntityKindTip, true, *filter.TipType))
	}
	if filter.Category != nil {
		q = q.Where("tags.category = ?", *filter.Category)
	}

	var rows []models.Tag
	if err := q.Order("tags.display_order ASC").Order("tags.label ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := r.DB(ctx).Preload("Translations").First(&tag, id).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// LabelTaken reports whether another tag already uses label. The comparison is
// exact, so labels differing only in case are distinct.
func (r *Repository) LabelTaken(ctx context.Context, label string, excludeID uint) (bool, error) {
	var count int64
	q := r.DB(ctx).Model(&models.Tag{}).Where("label = ?", label)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *Repository) Create(ctx context.Context, tag *models.Tag) error {
	return r.DB(ctx).Omit(clause.Associations).Create(tag).Error
}

func (r *Repository) Update(ctx context.Context, id uint, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	return r.DB(ctx).Model(&models.Tag{}).Where("id = ?", id).Updates(fields).Error
}

// Delete removes the tag together with its translations and associations.
func (r *Repository) Delete(ctx context.Context, id uint) (int64, error) {
	db := r.DB(ctx)
	if err := db.Where("tag_id = ?", id).Delete(&models.EntityTag{}).Error; err != nil {
		return 0, err
	}
	if err := db.Where("tag_id = ?", id).Delete(&models.TagTranslation{}).Error; err != nil {
		return 0, err
	}
	res := db.Delete(&models.Tag{}, id)
	return res.RowsAffected, res.Error
}

func (r *Repository) UpsertTranslation(ctx context.Context, tagID uint, language, label string) error {
	row := models.TagTranslation{TagID: tagID, Language: language, Label: label}
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tag_id"}, {Name: "language"}},
		DoUpdates: clause.AssignmentColumns([]string{"label", "updated_at"}),
	}).Create(&row).Error
}

func (r *Repository) DeleteTranslation(ctx context.Context, tagID uint, language string) (int64, error) {
	res := r.DB(ctx).Where("tag_id = ? AND language = ?", tagID, language).Delete(&models.TagTranslation{})
	return res.RowsAffected, res.Error
}

// EntityExists checks the products or tips table depending on kind. Inactive
// entities count as existing.
func (r *Repository) EntityExists(ctx context.Context, kind enums.EntityKind, id uint) (bool, error) {
	var model any
	switch kind {
	case enums.EntityKindProduct:
		model = &models.Product{}
	case enums.EntityKindTip:
		model = &models.Tip{}
	default:
		return false, nil
	}
	var count int64
	if err := r.DB(ctx).Model(model).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Assign links tag to the entity. An existing link is left as is.
func (r *Repository) Assign(ctx context.Context, kind enums.EntityKind, entityID, tagID uint) error {
	row := models.EntityTag{EntityKind: kind, EntityID: entityID, TagID: tagID}
	return r.DB(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_kind"}, {Name: "entity_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(&row).Error
}

func (r *Repository) Unassign(ctx context.Context, kind enums.EntityKind, entityID, tagID uint) (int64, error) {
	res := r.DB(ctx).
		Where("entity_kind = ? AND entity_id = ? AND tag_id = ?", kind, entityID, tagID).
		Delete(&models.EntityTag{})
	return res.RowsAffected, res.Error
}

// ForEntity lists the tags attached to one entity, sorted like the main listing.
func (r *Repository) ForEntity(ctx context.Context, kind enums.EntityKind, entityID uint) ([]models.Tag, error) {
	byEntity, err := r.ForEntities(ctx, kind, []uint{entityID})
	if err != nil {
		return nil, err
	}
	return byEntity[entityID], nil
}

// ForEntities batches ForEntity for a listing page.
func (r *Repository) ForEntities(ctx context.Context, kind enums.EntityKind, entityIDs []uint) (map[uint][]models.Tag, error) {
	out := make(map[uint][]models.Tag, len(entityIDs))
	if len(entityIDs) == 0 {
		return out, nil
	}

	var links []models.EntityTag
	err := r.DB(ctx).
		Preload("Tag.Translations").
		Joins("JOIN tags ON tags.id = entity_tags.tag_id").
		Where("entity_tags.entity_kind = ? AND entity_tags.entity_id IN ?", kind, entityIDs).
		Order("tags.display_order ASC").Order("tags.label ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		if link.Tag == nil {
			continue
		}
		out[link.EntityID] = append(out[link.EntityID], *link.Tag)
	}
	return out, nil
}
