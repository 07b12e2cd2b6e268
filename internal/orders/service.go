package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/ids"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

// Service exposes order reads and the admin-side status and label edits.
type Service interface {
	Get(ctx context.Context, id string) (*models.Order, error)
	List(ctx context.Context, filter ListFilter) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id string, next enums.OrderStatus) (*models.Order, error)
	SetLabel(ctx context.Context, id, label string) (*models.Order, error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds the orders service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Get(ctx context.Context, id string) (*models.Order, error) {
	if !ids.Valid(id) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// List returns orders with open work first, most recently touched first within a status.
func (s *service) List(ctx context.Context, filter ListFilter) ([]models.Order, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid status %q", *filter.Status)
	}
	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

// UpdateStatus applies one state machine transition. The update is
// conditional on the status read so concurrent transitions cannot both win.
func (s *service) UpdateStatus(ctx context.Context, id string, next enums.OrderStatus) (*models.Order, error) {
	if !next.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid status %q", next)
	}
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	current := order.Status
	if !current.CanTransitionTo(next) {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidInput, "cannot change order status from %s to %s", current, next).
			WithDetails(map[string]any{"from": current, "to": next})
	}

	n, err := s.repo.UpdateStatus(ctx, id, current, next)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	if n == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order status changed concurrently")
	}

	logCtx := s.logg.WithOrderID(ctx, id)
	logCtx = s.logg.WithFields(logCtx, map[string]any{"from": current.String(), "to": next.String()})
	s.logg.Info(logCtx, "order.status_changed")
	return s.Get(ctx, id)
}

// SetLabel stores a trimmed display label. A blank label clears it.
func (s *service) SetLabel(ctx context.Context, id, label string) (*models.Order, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	var value *string
	if trimmed := strings.TrimSpace(label); trimmed != "" {
		if len([]rune(trimmed)) > 255 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "label must be at most 255 characters")
		}
		value = &trimmed
	}
	if _, err := s.repo.UpdateLabel(ctx, id, value); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order label")
	}
	return s.Get(ctx, id)
}
