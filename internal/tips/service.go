package tips

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/internal/tags"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type tagLoader interface {
	ForEntities(ctx context.Context, kind enums.EntityKind, entityIDs []uint) (map[uint][]models.Tag, error)
}

// Service manages informational tips. Public reads only see active tips.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Tip, error)
	GetActive(ctx context.Context, id uint) (*models.Tip, error)
	Get(ctx context.Context, id uint) (*models.Tip, error)
	Create(ctx context.Context, input Input) (*models.Tip, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*models.Tip, error)
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, updates []repo.OrderUpdate) error
	UpsertTranslation(ctx context.Context, id uint, input TranslationInput) (*models.Tip, error)
	DeleteTranslation(ctx context.Context, id uint, language string) error
}

// Input creates a tip. An Order of zero appends after the current maximum.
type Input struct {
	Title       string
	Description string
	ImageURL    *string
	Order       int
	IsActive    *bool
	TipType     enums.TipType
}

type UpdateInput struct {
	Title       *string
	Description *string
	ImageURL    *string
	Order       *int
	IsActive    *bool
	TipType     *enums.TipType
}

type TranslationInput struct {
	Language    string
	Title       *string
	Description string
}

type service struct {
	repo *Repository
	tags tagLoader
	tx   txRunner
}

func NewService(repo *Repository, tags tagLoader, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("tip repository required")
	}
	if tags == nil {
		return nil, fmt.Errorf("tag loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tags: tags, tx: tx}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Tip, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tips")
	}
	if err := s.attachTags(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) GetActive(ctx context.Context, id uint) (*models.Tip, error) {
	tip, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !tip.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tip not found")
	}
	return tip, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Tip, error) {
	tip, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "tip not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tip")
	}
	rows := []models.Tip{*tip}
	if err := s.attachTags(ctx, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Tip, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	tipType := input.TipType
	if tipType == "" {
		tipType = enums.TipTypeQuickTip
	}
	if !tipType.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid tip type %q", tipType)
	}

	tip := &models.Tip{
		Title:       title,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		Order:       input.Order,
		IsActive:    true,
		TipType:     tipType,
	}
	if input.IsActive != nil {
		tip.IsActive = *input.IsActive
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if tip.Order == 0 {
			next, err := txRepo.NextOrder(ctx, &models.Tip{})
			if err != nil {
				return err
			}
			tip.Order = next
		}
		return txRepo.Create(ctx, tip)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tip")
	}
	return s.Get(ctx, tip.ID)
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*models.Tip, error) {
	fields := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		fields["title"] = title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.ImageURL != nil {
		fields["image_url"] = nullable(*input.ImageURL)
	}
	if input.Order != nil {
		fields["display_order"] = *input.Order
	}
	if input.IsActive != nil {
		fields["is_active"] = *input.IsActive
	}
	if input.TipType != nil {
		if !input.TipType.IsValid() {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid tip type %q", *input.TipType)
		}
		fields["tip_type"] = *input.TipType
	}

	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update tip")
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
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tip")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tip not found")
	}
	return nil
}

func (s *service) Reorder(ctx context.Context, updates []repo.OrderUpdate) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Reorder(ctx, &models.Tip{}, updates)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder tips")
	}
	return nil
}

func (s *service) UpsertTranslation(ctx context.Context, id uint, input TranslationInput) (*models.Tip, error) {
	language := strings.TrimSpace(input.Language)
	if language == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "language is required")
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	row := &models.TipTranslation{
		TipID:       id,
		Language:    language,
		Title:       input.Title,
		Description: input.Description,
	}
	if err := s.repo.UpsertTranslation(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save tip translation")
	}
	return s.Get(ctx, id)
}

func (s *service) DeleteTranslation(ctx context.Context, id uint, language string) error {
	n, err := s.repo.DeleteTranslation(ctx, id, language)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete tip translation")
	}
	if n == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "tip translation not found")
	}
	return nil
}

func (s *service) attachTags(ctx context.Context, rows []models.Tip) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	byTip, err := s.tags.ForEntities(ctx, enums.EntityKindTip, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tip tags")
	}
	for i := range rows {
		rows[i].Tags = byTip[rows[i].ID]
	}
	return nil
}

func nullable(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

var _ tagLoader = (*tags.Repository)(nil)
