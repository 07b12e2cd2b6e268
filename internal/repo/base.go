package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by the storefront repositories; it owns the connection and
// the helpers shared by every sortable table.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection bound to ctx. A nil ctx yields the raw handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Bind returns a Base running on tx, or b itself when tx is nil.
func (b Base) Bind(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// scoped starts a query on model's table narrowed by scopes.
func (b Base) scoped(ctx context.Context, model any, scopes []Scope) *gorm.DB {
	q := b.DB(ctx).Model(model)
	for _, scope := range scopes {
		q = scope(q)
	}
	return q
}
