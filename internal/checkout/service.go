package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/cart"
	"github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/ids"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	"github.com/angelmondragon/storefront-backend/pkg/metrics"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service turns a cart into an order.
type Service interface {
	Checkout(ctx context.Context, input Input) (*models.Order, error)
}

// Input carries the cart to convert and optional customer notes.
type Input struct {
	CartToken string
	Notes     *string
}

type service struct {
	tx         txRunner
	cartRepo   *cart.Repository
	ordersRepo orders.Repository
	metrics    *metrics.CheckoutMetrics
	logg       *logger.Logger
	now        func() time.Time
}

// NewService builds the checkout service. metrics may be nil.
func NewService(
	tx txRunner,
	cartRepo *cart.Repository,
	ordersRepo orders.Repository,
	checkoutMetrics *metrics.CheckoutMetrics,
	logg *logger.Logger,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{
		tx:         tx,
		cartRepo:   cartRepo,
		ordersRepo: ordersRepo,
		metrics:    checkoutMetrics,
		logg:       logg,
		now:        time.Now,
	}, nil
}

// Checkout validates every cart line, snapshots unit prices, persists the
// order and deletes the cart in one transaction. Any invalid line rejects the
// whole checkout and leaves the cart untouched.
func (s *service) Checkout(ctx context.Context, input Input) (*models.Order, error) {
	token := strings.TrimSpace(input.CartToken)
	if !ids.Valid(token) {
		s.metrics.IncOutcome(metrics.OutcomeRejected)
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
	}

	var orderID string
	var total decimal.Decimal
	var lineCount int
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		ordersRepo := s.ordersRepo.WithTx(tx)

		record, err := cartRepo.FindByToken(ctx, token)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "cart not found")
			}
			return err
		}
		if len(record.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeInvalidInput, "cart is empty")
		}

		order, err := s.buildOrder(record, input.Notes)
		if err != nil {
			return err
		}
		if err := ordersRepo.Create(ctx, order); err != nil {
			return err
		}
		if err := cart.Clear(ctx, cartRepo, record.ID); err != nil {
			return err
		}

		orderID = order.ID
		total = order.Total
		lineCount = len(order.Items)
		return nil
	})
	if err != nil {
		typed := pkgerrors.As(err)
		if typed == nil {
			s.metrics.IncOutcome(metrics.OutcomeFailed)
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "checkout")
		}
		if pkgerrors.IsCallerError(typed.Code()) {
			s.metrics.IncOutcome(metrics.OutcomeRejected)
		} else {
			s.metrics.IncOutcome(metrics.OutcomeFailed)
		}
		return nil, typed
	}

	s.metrics.ObserveSuccess(total, lineCount)
	logCtx := s.logg.WithCartToken(s.logg.WithOrderID(ctx, orderID), token)
	logCtx = s.logg.WithFields(logCtx, map[string]any{"total": total.StringFixed(2), "lines": lineCount})
	s.logg.Info(logCtx, "checkout.completed")

	order, err := s.ordersRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

func (s *service) buildOrder(record *models.Cart, notes *string) (*models.Order, error) {
	order := &models.Order{
		ID:     ids.NewAt(s.now()),
		Status: enums.OrderStatusConfirmed,
		Notes:  normalizeNotes(notes),
		Items:  make([]models.OrderItem, 0, len(record.Items)),
	}
	total := decimal.Zero
	for _, line := range record.Items {
		if err := validateLine(line); err != nil {
			return nil, err
		}
		unit := models.UnitPrice(*line.Product, line.Variation)
		total = total.Add(unit.Mul(decimal.NewFromInt(int64(line.Quantity))))
		order.Items = append(order.Items, models.OrderItem{
			ProductID:   line.ProductID,
			VariationID: line.VariationID,
			Quantity:    line.Quantity,
			UnitPrice:   unit,
		})
	}
	order.Total = total
	return order, nil
}

func validateLine(line models.CartItem) error {
	if line.Product == nil {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "product %d not found", line.ProductID)
	}
	if !line.Product.IsActive {
		return pkgerrors.Newf(pkgerrors.CodeInvalidInput, "product %q is no longer available", line.Product.Name).
			WithDetails(map[string]any{"product_id": line.ProductID})
	}
	if line.VariationID == nil {
		return nil
	}
	if line.Variation == nil {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "variation %d not found", *line.VariationID)
	}
	if !line.Variation.IsActive {
		return pkgerrors.Newf(pkgerrors.CodeInvalidInput, "variation %q of %q is no longer available", line.Variation.Name, line.Product.Name).
			WithDetails(map[string]any{"product_id": line.ProductID, "variation_id": *line.VariationID})
	}
	return nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
