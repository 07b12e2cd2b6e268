package cart

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/ids"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service is the token-addressed cart aggregate. Every mutation returns the
// reloaded cart.
type Service interface {
	GetOrCreate(ctx context.Context, token string) (*models.Cart, error)
	Get(ctx context.Context, token string) (*models.Cart, error)
	AddItem(ctx context.Context, token string, input AddItemInput) (*models.Cart, error)
	UpdateItemQuantity(ctx context.Context, token string, itemID uint, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, token string, itemID uint) (*models.Cart, error)
}

// AddItemInput identifies the line to add to. A nil VariationID means the
// plain product.
type AddItemInput struct {
	ProductID   uint
	VariationID *uint
	Quantity    int
}

type service struct {
	repo *Repository
	tx   txRunner
	logg *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(repo *Repository, tx txRunner, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, tx: tx, logg: logg}, nil
}

// GetOrCreate resolves token or, when it is empty or unknown, starts a new
// empty cart under a freshly minted token.
func (s *service) GetOrCreate(ctx context.Context, token string) (*models.Cart, error) {
	if ids.Valid(token) {
		cart, err := s.repo.FindByToken(ctx, token)
		if err == nil {
			return cart, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
		}
	}

	cart := &models.Cart{Token: ids.New()}
	if err := s.repo.Create(ctx, cart); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create cart")
	}
	s.logg.Info(s.logg.WithCartToken(ctx, cart.Token), "cart.created")
	return s.Get(ctx, cart.Token)
}

func (s *service) Get(ctx context.Context, token string) (*models.Cart, error) {
	if !ids.Valid(token) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	cart, err := s.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart")
	}
	return cart, nil
}

// AddItem accumulates quantity onto the (product, variation) line, creating it
// when absent. The product and the variation must exist and be active, and
// the variation must belong to the product.
func (s *service) AddItem(ctx context.Context, token string, input AddItemInput) (*models.Cart, error) {
	if input.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidInput, "quantity must be at least 1")
	}
	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		product, err := txRepo.FindProduct(ctx, input.ProductID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return err
		}
		if !product.IsActive {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}

		if input.VariationID != nil {
			variation, err := txRepo.FindVariation(ctx, *input.VariationID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
				}
				return err
			}
			if variation.ProductID != product.ID || !variation.IsActive {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variation not found")
			}
		}

		return txRepo.AddQuantity(ctx, &models.CartItem{
			CartID:      cart.ID,
			ProductID:   product.ID,
			VariationID: input.VariationID,
			Quantity:    input.Quantity,
		})
	})
	if err != nil {
		return nil, typedOr(err, "add cart item")
	}
	return s.Get(ctx, token)
}

// UpdateItemQuantity overwrites the line quantity. A quantity of zero or less
// removes the line.
func (s *service) UpdateItemQuantity(ctx context.Context, token string, itemID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, token, itemID)
	}
	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.SetQuantity(ctx, cart.ID, itemID, quantity)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update cart item")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.Get(ctx, token)
}

func (s *service) RemoveItem(ctx context.Context, token string, itemID uint) (*models.Cart, error) {
	cart, err := s.Get(ctx, token)
	if err != nil {
		return nil, err
	}
	n, err := s.repo.DeleteItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove cart item")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart item not found")
	}
	return s.Get(ctx, token)
}

// Clear hard-deletes a cart and its lines through repo, which the caller
// binds to its own transaction. Clearing a cart that is already gone
// reports NotFound.
func Clear(ctx context.Context, repo *Repository, cartID uint) error {
	n, err := repo.Delete(ctx, cartID)
	if err != nil {
		return err
	}
	if n == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}
	return nil
}

func typedOr(err error, action string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, action)
}
