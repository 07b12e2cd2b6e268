package tags

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

const maxLabelLength = 100

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the tag association and ordering engine shared by products and tips.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Tag, error)
	Get(ctx context.Context, id uint) (*models.Tag, error)
	Create(ctx context.Context, input CreateInput) (*models.Tag, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*models.Tag, error)
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, updates []repo.OrderUpdate) error
	UpsertTranslation(ctx context.Context, id uint, language, label string) (*models.Tag, error)
	DeleteTranslation(ctx context.Context, id uint, language string) error
	Assign(ctx context.Context, kind enums.EntityKind, entityID, tagID uint) error
	Unassign(ctx context.Context, kind enums.EntityKind, entityID, tagID uint) error
	EntityTags(ctx context.Context, kind enums.EntityKind, entityID uint) ([]models.Tag, error)
}

// CreateInput describes a new tag. Nil fields take their defaults; a nil
// Order appends the tag after the current maximum.
type CreateInput struct {
	Label        string
	Category     enums.TagCategory
	Order        *int
	IsFilterable *bool
	BgColor      *string
	TextColor    *string
}

// UpdateInput carries the fields to change; nil fields are left untouched.
type UpdateInput struct {
	Label        *string
	Category     *enums.TagCategory
	Order        *int
	IsFilterable *bool
	BgColor      *string
	TextColor    *string
}

type service struct {
	repo *Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService wires the tag engine.
func NewService(repo *Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tag repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Tag, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tags")
	}
	return rows, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Tag, error) {
	tag, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "tag not found", "load tag")
	}
	return tag, nil
}

func (s *service) Create(ctx context.Context, input CreateInput) (*models.Tag, error) {
	label, err := normalizeLabel(input.Label)
	if err != nil {
		return nil, err
	}
	category := input.Category
	if category == "" {
		category = enums.TagCategoryProduct
	}
	if !category.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid tag category %q", category)
	}

	tag := &models.Tag{
		Label:        label,
		Category:     category,
		IsFilterable: true,
		BgColor:      models.DefaultTagBgColor,
		TextColor:    models.DefaultTagTextColor,
	}
	if input.IsFilterable != nil {
		tag.IsFilterable = *input.IsFilterable
	}
	if input.BgColor != nil && *input.BgColor != "" {
		tag.BgColor = *input.BgColor
	}
	if input.TextColor != nil && *input.TextColor != "" {
		tag.TextColor = *input.TextColor
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		taken, err := txRepo.LabelTaken(ctx, label, 0)
		if err != nil {
			return err
		}
		if taken {
			return labelConflict(label)
		}

		if input.Order != nil {
			tag.Order = *input.Order
		} else {
			next, err := txRepo.NextOrder(ctx, &models.Tag{})
			if err != nil {
				return err
			}
			tag.Order = next
		}
		return txRepo.Create(ctx, tag)
	})
	if err != nil {
		return nil, s.writeError(err, label, "create tag")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"tag_id": tag.ID, "label": tag.Label}), "tag.created")
	return s.Get(ctx, tag.ID)
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*models.Tag, error) {
	fields := map[string]any{}
	var label string
	if input.Label != nil {
		normalized, err := normalizeLabel(*input.Label)
		if err != nil {
			return nil, err
		}
		label = normalized
		fields["label"] = normalized
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid tag category %q", *input.Category)
		}
		fields["category"] = *input.Category
	}
	if input.Order != nil {
		fields["display_order"] = *input.Order
	}
	if input.IsFilterable != nil {
		fields["is_filterable"] = *input.IsFilterable
	}
	if input.BgColor != nil {
		fields["bg_color"] = *input.BgColor
	}
	if input.TextColor != nil {
		fields["text_color"] = *input.TextColor
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if _, err := txRepo.FindByID(ctx, id); err != nil {
			return err
		}
		if label != "" {
			taken, err := txRepo.LabelTaken(ctx, label, id)
			if err != nil {
				return err
			}
			if taken {
				return labelConflict(label)
			}
		}
		return txRepo.Update(ctx, id, fields)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
		}
		return nil, s.writeError(err, label, "update tag")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uint) error {
	var deleted int64
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		n, err := s.repo.WithTx(tx).Delete(ctx, id)
		deleted = n
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tag")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
	}
	return nil
}

func (s *service) Reorder(ctx context.Context, updates []repo.OrderUpdate) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Reorder(ctx, &models.Tag{}, updates)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder tags")
	}
	return nil
}

func (s *service) UpsertTranslation(ctx context.Context, id uint, language, label string) (*models.Tag, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "language is required")
	}
	normalized, err := normalizeLabel(label)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.UpsertTranslation(ctx, id, language, normalized); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save tag translation")
	}
	return s.Get(ctx, id)
}

func (s *service) DeleteTranslation(ctx context.Context, id uint, language string) error {
	n, err := s.repo.DeleteTranslation(ctx, id, language)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tag translation")
	}
	if n == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tag translation not found")
	}
	return nil
}

func (s *service) Assign(ctx context.Context, kind enums.EntityKind, entityID, tagID uint) error {
	if !kind.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid entity kind %q", kind)
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		exists, err := txRepo.EntityExists(ctx, kind, entityID)
		if err != nil {
			return err
		}
		if !exists {
			return pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", kind)
		}
		if _, err := txRepo.FindByID(ctx, tagID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")
			}
			return err
		}
		return txRepo.Assign(ctx, kind, entityID, tagID)
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return typed
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign tag")
	}
	return nil
}

func (s *service) Unassign(ctx context.Context, kind enums.EntityKind, entityID, tagID uint) error {
	if !kind.IsValid() {
		return pkgerrors.Newf(pkgerrors.CodeValidation, "invalid entity kind %q", kind)
	}
	n, err := s.repo.Unassign(ctx, kind, entityID, tagID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unassign tag")
	}
	if n == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tag is not assigned")
	}
	return nil
}

func (s *service) EntityTags(ctx context.Context, kind enums.EntityKind, entityID uint) ([]models.Tag, error) {
	if !kind.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid entity kind %q", kind)
	}
	exists, err := s.repo.EntityExists(ctx, kind, entityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load entity")
	}
	if !exists {
		return nil, pkgerrors.Newf(pkgerrors.CodeNotFound, "%s not found", kind)
	}
	rows, err := s.repo.ForEntity(ctx, kind, entityID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list entity tags")
	}
	return rows, nil
}

// writeError keeps typed errors, maps a lost label race onto Conflict and
// wraps the rest as dependency failures.
func (s *service) writeError(err error, label, action string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	if db.IsUniqueViolation(err, "") {
		return labelConflict(label)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func normalizeLabel(label string) (string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "label is required")
	}
	if len([]rune(label)) > maxLabelLength {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "label must be at most %d characters", maxLabelLength)
	}
	return label, nil
}

func labelConflict(label string) error {
	return pkgerrors.Newf(pkgerrors.CodeConflict, "tag label %q already exists", label)
}

func notFoundOr(err error, notFound, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
