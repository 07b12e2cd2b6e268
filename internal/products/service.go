package products

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

const copySuffix = " (Copy)"

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type tagLoader interface {
	ForEntities(ctx context.Context, kind enums.EntityKind, entityIDs []uint) (map[uint][]models.Tag, error)
}

// Service is the catalog store: public browsing plus admin management,
// reordering and cloning.
type Service interface {
	List(ctx context.Context, filter ListFilter) ([]models.Product, error)
	GetActive(ctx context.Context, id uint) (*models.Product, error)
	Get(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, input Input) (*models.Product, error)
	Update(ctx context.Context, id uint, input UpdateInput) (*models.Product, error)
	Delete(ctx context.Context, id uint) error
	Reorder(ctx context.Context, updates []repo.OrderUpdate) error
	Clone(ctx context.Context, id uint) (*models.Product, error)
	UpsertTranslation(ctx context.Context, id uint, input TranslationInput) (*models.Product, error)
	DeleteTranslation(ctx context.Context, id uint, language string) (*models.Product, error)
	CreateVariation(ctx context.Context, productID uint, input VariationInput) (*models.Product, error)
	UpdateVariation(ctx context.Context, productID, variationID uint, input VariationUpdateInput) (*models.Product, error)
	DeleteVariation(ctx context.Context, productID, variationID uint) (*models.Product, error)
	ReorderVariations(ctx context.Context, productID uint, updates []repo.OrderUpdate) (*models.Product, error)
	UpsertVariationTranslation(ctx context.Context, productID, variationID uint, language, name string) (*models.Product, error)
	DeleteVariationTranslation(ctx context.Context, productID, variationID uint, language string) (*models.Product, error)
}

type service struct {
	repo *Repository
	tags tagLoader
	tx   txRunner
	logg *logger.Logger
}

// NewService wires the catalog service.
func NewService(repo *Repository, tags tagLoader, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if tags == nil {
		return nil, fmt.Errorf("tag loader required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, tags: tags, tx: tx, logg: logg}, nil
}

func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Product, error) {
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	if err := s.attachTags(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *service) GetActive(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.load(ctx, id, true)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return product, nil
}

func (s *service) Get(ctx context.Context, id uint) (*models.Product, error) {
	return s.load(ctx, id, false)
}

func (s *service) load(ctx context.Context, id uint, activeVariationsOnly bool) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id, activeVariationsOnly)
	if err != nil {
		return nil, notFoundOr(err, "product not found", "load product")
	}
	rows := []models.Product{*product}
	if err := s.attachTags(ctx, rows); err != nil {
		return nil, err
	}
	return &rows[0], nil
}

func (s *service) Create(ctx context.Context, input Input) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	productType := input.Type
	if productType == "" {
		productType = enums.ProductTypeProduct
	}
	if !productType.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid product type %q", productType)
	}

	product := &models.Product{
		Name:        name,
		Description: input.Description,
		Price:       input.Price,
		ImageURL:    input.ImageURL,
		Order:       input.Order,
		IsActive:    true,
		Type:        productType,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return s.Get(ctx, product.ID)
}

func (s *service) Update(ctx context.Context, id uint, input UpdateInput) (*models.Product, error) {
	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		fields["name"] = name
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Price != nil {
		if input.Price.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		fields["price"] = *input.Price
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
	if input.Type != nil {
		if !input.Type.IsValid() {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid product type %q", *input.Type)
		}
		fields["type"] = *input.Type
	}

	if _, err := s.repo.FindByID(ctx, id, false); err != nil {
		return nil, notFoundOr(err, "product not found", "load product")
	}
	if err := s.repo.Update(ctx, id, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
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
		if db.IsForeignKeyViolation(err) {
			return pkgerrors.New(pkgerrors.CodeConflict, "product is referenced by existing orders")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	if deleted == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

func (s *service) Reorder(ctx context.Context, updates []repo.OrderUpdate) error {
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).Reorder(ctx, &models.Product{}, updates)
		return err
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder products")
	}
	return nil
}

// Clone deep-copies a product into a new inactive product. Translations and
// variations are duplicated; tags are shared with the source.
func (s *service) Clone(ctx context.Context, id uint) (*models.Product, error) {
	var cloneID uint
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		source, err := txRepo.FindByID(ctx, id, false)
		if err != nil {
			return err
		}

		clone := &models.Product{
			Name:        source.Name + copySuffix,
			Description: source.Description,
			Price:       source.Price,
			ImageURL:    source.ImageURL,
			Order:       source.Order,
			IsActive:    false,
			Type:        source.Type,
		}
		if err := txRepo.Create(ctx, clone); err != nil {
			return err
		}

		for _, tr := range source.Translations {
			if err := txRepo.UpsertTranslation(ctx, &models.ProductTranslation{
				ProductID:   clone.ID,
				Language:    tr.Language,
				Name:        tr.Name + copySuffix,
				Description: tr.Description,
			}); err != nil {
				return err
			}
		}

		for _, v := range source.Variations {
			variation := &models.ProductVariation{
				ProductID: clone.ID,
				Name:      v.Name,
				Price:     v.Price,
				ImageURL:  v.ImageURL,
				Order:     v.Order,
				IsActive:  v.IsActive,
			}
			if err := txRepo.CreateVariation(ctx, variation); err != nil {
				return err
			}
			for _, tr := range v.Translations {
				if err := txRepo.UpsertVariationTranslation(ctx, &models.VariationTranslation{
					VariationID: variation.ID,
					Language:    tr.Language,
					Name:        tr.Name,
				}); err != nil {
					return err
				}
			}
		}

		tagIDs, err := txRepo.TagIDs(ctx, source.ID)
		if err != nil {
			return err
		}
		if err := txRepo.LinkTags(ctx, clone.ID, tagIDs); err != nil {
			return err
		}

		cloneID = clone.ID
		return nil
	})
	if err != nil {
		return nil, notFoundOr(err, "product not found", "clone product")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{"source_id": id, "product_id": cloneID}), "product.cloned")
	return s.Get(ctx, cloneID)
}

func (s *service) UpsertTranslation(ctx context.Context, id uint, input TranslationInput) (*models.Product, error) {
	language := strings.TrimSpace(input.Language)
	if language == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "language is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.ensureProduct(ctx, id); err != nil {
		return nil, err
	}
	row := &models.ProductTranslation{
		ProductID:   id,
		Language:    language,
		Name:        input.Name,
		Description: input.Description,
	}
	if err := s.repo.UpsertTranslation(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save product translation")
	}
	return s.Get(ctx, id)
}

func (s *service) DeleteTranslation(ctx context.Context, id uint, language string) (*models.Product, error) {
	if err := s.ensureProduct(ctx, id); err != nil {
		return nil, err
	}
	n, err := s.repo.DeleteTranslation(ctx, id, language)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product translation")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "translation not found")
	}
	return s.Get(ctx, id)
}

func (s *service) CreateVariation(ctx context.Context, productID uint, input VariationInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.Price.Valid && input.Price.Decimal.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	variation := &models.ProductVariation{
		ProductID: productID,
		Name:      name,
		Price:     input.Price,
		ImageURL:  input.ImageURL,
		Order:     input.Order,
		IsActive:  true,
	}
	if input.IsActive != nil {
		variation.IsActive = *input.IsActive
	}
	if err := s.repo.CreateVariation(ctx, variation); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create variation")
	}
	return s.Get(ctx, productID)
}

func (s *service) UpdateVariation(ctx context.Context, productID, variationID uint, input VariationUpdateInput) (*models.Product, error) {
	fields := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		fields["name"] = name
	}
	if input.Price.Set {
		if input.Price.Price.Valid && input.Price.Price.Decimal.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
		}
		fields["price"] = input.Price.Price
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

	if err := s.ensureVariation(ctx, productID, variationID); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateVariation(ctx, variationID, fields); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update variation")
	}
	return s.Get(ctx, productID)
}

func (s *service) DeleteVariation(ctx context.Context, productID, variationID uint) (*models.Product, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	n, err := s.repo.DeleteVariation(ctx, productID, variationID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "variation is referenced by existing orders")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete variation")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
	}
	return s.Get(ctx, productID)
}

func (s *service) ReorderVariations(ctx context.Context, productID uint, updates []repo.OrderUpdate) (*models.Product, error) {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		_, err := s.repo.WithTx(tx).ReorderVariations(ctx, productID, updates)
		return err
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder variations")
	}
	return s.Get(ctx, productID)
}

func (s *service) UpsertVariationTranslation(ctx context.Context, productID, variationID uint, language, name string) (*models.Product, error) {
	language = strings.TrimSpace(language)
	if language == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "language is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if err := s.ensureVariation(ctx, productID, variationID); err != nil {
		return nil, err
	}
	row := &models.VariationTranslation{VariationID: variationID, Language: language, Name: name}
	if err := s.repo.UpsertVariationTranslation(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save variation translation")
	}
	return s.Get(ctx, productID)
}

func (s *service) DeleteVariationTranslation(ctx context.Context, productID, variationID uint, language string) (*models.Product, error) {
	if err := s.ensureVariation(ctx, productID, variationID); err != nil {
		return nil, err
	}
	n, err := s.repo.DeleteVariationTranslation(ctx, variationID, language)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete variation translation")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "translation not found")
	}
	return s.Get(ctx, productID)
}

func (s *service) ensureProduct(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id, false); err != nil {
		return notFoundOr(err, "product not found", "load product")
	}
	return nil
}

func (s *service) ensureVariation(ctx context.Context, productID, variationID uint) error {
	if err := s.ensureProduct(ctx, productID); err != nil {
		return err
	}
	if _, err := s.repo.FindVariation(ctx, productID, variationID); err != nil {
		return notFoundOr(err, "variation not found", "load variation")
	}
	return nil
}

func (s *service) attachTags(ctx context.Context, rows []models.Product) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uint, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	byProduct, err := s.tags.ForEntities(ctx, enums.EntityKindProduct, ids)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product tags")
	}
	for i := range rows {
		rows[i].Tags = byProduct[rows[i].ID]
	}
	return nil
}

func notFoundOr(err error, notFound, action string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, notFound)
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}

func nullable(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
