// Package dbtest opens isolated in-memory SQLite databases with the full
// storefront schema and seeds fixtures for repository and service tests.
package dbtest

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
)

var seq atomic.Int64

// Open returns a migrated in-memory database private to the calling test.
// The pool is pinned to one connection so the database lives as long as the test.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_foreign_keys=1", name, seq.Add(1))

	conn, err := gorm.Open(sqlite.Open(dsn), db.GormConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := conn.AutoMigrate(models.All()...); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}
	return conn
}

// Client wraps Open in a db.Client so services get a real transaction runner.
func Client(t *testing.T) (*db.Client, *gorm.DB) {
	t.Helper()
	conn := Open(t)
	return db.Wrap(conn), conn
}

// MustCreateProduct inserts an active product with the given price.
func MustCreateProduct(t *testing.T, conn *gorm.DB, name, price string, opts ...func(*models.Product)) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:        name,
		Description: name + " description",
		Price:       decimal.RequireFromString(price),
		IsActive:    true,
		Type:        enums.ProductTypeProduct,
	}
	for _, opt := range opts {
		opt(product)
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}
	return product
}

// MustCreateVariation inserts an active variation; an empty price inherits the product price.
func MustCreateVariation(t *testing.T, conn *gorm.DB, productID uint, name, price string, opts ...func(*models.ProductVariation)) *models.ProductVariation {
	t.Helper()
	variation := &models.ProductVariation{
		ProductID: productID,
		Name:      name,
		IsActive:  true,
	}
	if price != "" {
		variation.Price = decimal.NewNullDecimal(decimal.RequireFromString(price))
	}
	for _, opt := range opts {
		opt(variation)
	}
	if err := conn.Create(variation).Error; err != nil {
		t.Fatalf("create variation: %v", err)
	}
	return variation
}

// MustCreateTag inserts a product-category tag with default colors.
func MustCreateTag(t *testing.T, conn *gorm.DB, label string, order int) *models.Tag {
	t.Helper()
	tag := &models.Tag{
		Label:        label,
		Category:     enums.TagCategoryProduct,
		Order:        order,
		IsFilterable: true,
		BgColor:      models.DefaultTagBgColor,
		TextColor:    models.DefaultTagTextColor,
	}
	if err := conn.Create(tag).Error; err != nil {
		t.Fatalf("create tag: %v", err)
	}
	return tag
}

// MustCreateTip inserts an active quick tip.
func MustCreateTip(t *testing.T, conn *gorm.DB, title string, order int) *models.Tip {
	t.Helper()
	tip := &models.Tip{
		Title:       title,
		Description: title + " description",
		Order:       order,
		IsActive:    true,
		TipType:     enums.TipTypeQuickTip,
	}
	if err := conn.Create(tip).Error; err != nil {
		t.Fatalf("create tip: %v", err)
	}
	return tip
}

// Inactive marks a product fixture as inactive before insert.
func Inactive(p *models.Product) {
	p.IsActive = false
}
