package repo

import (
	"context"
	"database/sql"
	"fmt"

	"gorm.io/gorm"
)

const orderColumn = "display_order"

// OrderUpdate assigns a manual sort position to one row.
type OrderUpdate struct {
	ID    uint `json:"id" validate:"required"`
	Order int  `json:"order"`
}

// Scope narrows a reorder to rows matching an extra condition, e.g. the
// variations of one product.
type Scope func(*gorm.DB) *gorm.DB

// Reorder writes each requested position onto the matching row of model's
// table. Unknown ids match nothing and are skipped; positions are not checked
// for uniqueness or gaps. It returns how many rows were updated.
func (b Base) Reorder(ctx context.Context, model any, updates []OrderUpdate, scopes ...Scope) (int64, error) {
	var applied int64
	for _, u := range updates {
		res := b.scoped(ctx, model, scopes).Where("id = ?", u.ID).Update(orderColumn, u.Order)
		if res.Error != nil {
			return applied, fmt.Errorf("reorder id %d: %w", u.ID, res.Error)
		}
		applied += res.RowsAffected
	}
	return applied, nil
}

// NextOrder returns max(display_order)+1 over model's table, or 0 when empty.
func (b Base) NextOrder(ctx context.Context, model any, scopes ...Scope) (int, error) {
	var max sql.NullInt64
	if err := b.scoped(ctx, model, scopes).Select("MAX(" + orderColumn + ")").Scan(&max).Error; err != nil {
		return 0, err
	}
	if !max.Valid {
		return 0, nil
	}
	return int(max.Int64) + 1, nil
}
