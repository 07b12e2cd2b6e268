package products

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/internal/repo"
	"github.com/angelmondragon/storefront-backend/internal/tags"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	client, conn := dbtest.Client(t)
	svc, err := NewService(NewRepository(conn), tags.NewRepository(conn), client, logger.Nop())
	require.NoError(t, err)
	return svc, conn
}

func tagProduct(t *testing.T, conn *gorm.DB, productID, tagID uint) {
	t.Helper()
	require.NoError(t, conn.Create(&models.EntityTag{
		EntityKind: enums.EntityKindProduct,
		EntityID:   productID,
		TagID:      tagID,
	}).Error)
}

func ids(rows []models.Product) []uint {
	out := make([]uint, len(rows))
	for i, p := range rows {
		out[i] = p.ID
	}
	return out
}

func TestNewServiceRequiresDeps(t *testing.T) {
	_, err := NewService(nil, nil, nil, nil)
	require.Error(t, err)
}

func TestListActiveSortedByOrderThenInsertion(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	late := dbtest.MustCreateProduct(t, conn, "Late", "1.00", func(p *models.Product) { p.Order = 2 })
	firstTie := dbtest.MustCreateProduct(t, conn, "First tie", "1.00", func(p *models.Product) { p.Order = 1 })
	secondTie := dbtest.MustCreateProduct(t, conn, "Second tie", "1.00", func(p *models.Product) { p.Order = 1 })
	dbtest.MustCreateProduct(t, conn, "Hidden", "1.00", dbtest.Inactive)

	rows, err := svc.List(ctx, ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{firstTie.ID, secondTie.ID, late.ID}, ids(rows))

	all, err := svc.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestListFilters(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	shampoo := dbtest.MustCreateProduct(t, conn, "Shampoo", "9.99")
	require.NoError(t, conn.Create(&models.ProductTranslation{
		ProductID: shampoo.ID, Language: "es", Name: "Champú Suave", Description: "",
	}).Error)
	haircut := dbtest.MustCreateProduct(t, conn, "Haircut", "20.00", func(p *models.Product) {
		p.Type = enums.ProductTypeService
	})
	vegan := dbtest.MustCreateTag(t, conn, "Vegan", 0)
	tagProduct(t, conn, shampoo.ID, vegan.ID)

	serviceType := enums.ProductTypeService
	rows, err := svc.List(ctx, ListFilter{ActiveOnly: true, Type: &serviceType})
	require.NoError(t, err)
	assert.Equal(t, []uint{haircut.ID}, ids(rows))

	rows, err = svc.List(ctx, ListFilter{ActiveOnly: true, Search: "SHAM"})
	require.NoError(t, err)
	assert.Equal(t, []uint{shampoo.ID}, ids(rows))

	rows, err = svc.List(ctx, ListFilter{ActiveOnly: true, Search: "suave"})
	require.NoError(t, err)
	assert.Equal(t, []uint{shampoo.ID}, ids(rows), "search matches translated names")

	rows, err = svc.List(ctx, ListFilter{ActiveOnly: true, TagIDs: []uint{vegan.ID, 9999}})
	require.NoError(t, err)
	require.Equal(t, []uint{shampoo.ID}, ids(rows))
	require.Len(t, rows[0].Tags, 1)
	assert.Equal(t, "Vegan", rows[0].Tags[0].Label)
}

func TestGetActiveHidesInactive(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	hidden := dbtest.MustCreateProduct(t, conn, "Hidden", "1.00", dbtest.Inactive)
	_, err := svc.GetActive(ctx, hidden.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	visible := dbtest.MustCreateProduct(t, conn, "Visible", "1.00")
	dbtest.MustCreateVariation(t, conn, visible.ID, "On", "")
	dbtest.MustCreateVariation(t, conn, visible.ID, "Off", "", func(v *models.ProductVariation) { v.IsActive = false })

	got, err := svc.GetActive(ctx, visible.ID)
	require.NoError(t, err)
	require.Len(t, got.Variations, 1)
	assert.Equal(t, "On", got.Variations[0].Name)

	admin, err := svc.Get(ctx, visible.ID)
	require.NoError(t, err)
	assert.Len(t, admin.Variations, 2)
}

func TestCreateAndUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, Input{Name: "Conditioner", Price: decimal.RequireFromString("12.5")})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, enums.ProductTypeProduct, created.Type)
	assert.Equal(t, "12.50", created.Price.StringFixed(2))

	_, err = svc.Create(ctx, Input{Name: "Bad", Price: decimal.RequireFromString("-1")})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))

	price := decimal.RequireFromString("15.00")
	inactive := false
	updated, err := svc.Update(ctx, created.ID, UpdateInput{Price: &price, IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, "15.00", updated.Price.StringFixed(2))
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, 9999, UpdateInput{Price: &price})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestReorderUpdatesKnownAndSkipsUnknown(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	a := dbtest.MustCreateProduct(t, conn, "A", "1.00")
	b := dbtest.MustCreateProduct(t, conn, "B", "1.00", func(p *models.Product) { p.Order = 1 })

	require.NoError(t, svc.Reorder(ctx, []repo.OrderUpdate{{ID: a.ID, Order: 10}, {ID: 9999, Order: 1}}))

	rows, err := svc.List(ctx, ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	assert.Equal(t, []uint{b.ID, a.ID}, ids(rows))
	assert.Equal(t, 10, rows[1].Order)
}

func TestCloneDeepCopiesAsInactive(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	source := dbtest.MustCreateProduct(t, conn, "Shampoo", "9.99", func(p *models.Product) { p.Order = 3 })
	require.NoError(t, conn.Create(&models.ProductTranslation{
		ProductID: source.ID, Language: "es", Name: "Champú", Description: "Suave",
	}).Error)
	small := dbtest.MustCreateVariation(t, conn, source.ID, "Small", "5.00")
	require.NoError(t, conn.Create(&models.VariationTranslation{
		VariationID: small.ID, Language: "es", Name: "Pequeño",
	}).Error)
	dbtest.MustCreateVariation(t, conn, source.ID, "Large", "")
	vegan := dbtest.MustCreateTag(t, conn, "Vegan", 0)
	tagProduct(t, conn, source.ID, vegan.ID)

	clone, err := svc.Clone(ctx, source.ID)
	require.NoError(t, err)

	assert.NotEqual(t, source.ID, clone.ID)
	assert.Equal(t, "Shampoo (Copy)", clone.Name)
	assert.False(t, clone.IsActive)
	assert.Equal(t, 3, clone.Order)
	assert.Equal(t, "9.99", clone.Price.StringFixed(2))

	require.Len(t, clone.Translations, 1)
	assert.Equal(t, "Champú (Copy)", clone.Translations[0].Name)
	assert.Equal(t, "Suave", clone.Translations[0].Description)

	require.Len(t, clone.Variations, 2)
	assert.Equal(t, "Small", clone.Variations[0].Name)
	assert.NotEqual(t, small.ID, clone.Variations[0].ID)
	assert.Equal(t, "5.00", clone.Variations[0].Price.Decimal.StringFixed(2))
	require.Len(t, clone.Variations[0].Translations, 1)
	assert.Equal(t, "Pequeño", clone.Variations[0].Translations[0].Name)
	assert.False(t, clone.Variations[1].Price.Valid)

	require.Len(t, clone.Tags, 1)
	assert.Equal(t, vegan.ID, clone.Tags[0].ID, "tags are shared, not copied")

	var tagCount int64
	require.NoError(t, conn.Model(&models.Tag{}).Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)

	_, err = svc.Clone(ctx, 9999)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestVariationLifecycle(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := dbtest.MustCreateProduct(t, conn, "Shampoo", "9.99")
	other := dbtest.MustCreateProduct(t, conn, "Other", "1.00")
	foreign := dbtest.MustCreateVariation(t, conn, other.ID, "Foreign", "")

	got, err := svc.CreateVariation(ctx, product.ID, VariationInput{
		Name:  "Travel",
		Price: decimal.NewNullDecimal(decimal.Zero),
	})
	require.NoError(t, err)
	require.Len(t, got.Variations, 1)
	variation := got.Variations[0]
	assert.True(t, variation.Price.Valid)
	assert.True(t, variation.IsActive)

	var clear VariationUpdateInput
	require.NoError(t, json.Unmarshal([]byte(`{"Price": null}`), &clear))
	got, err = svc.UpdateVariation(ctx, product.ID, variation.ID, clear)
	require.NoError(t, err)
	assert.False(t, got.Variations[0].Price.Valid, "explicit null clears the override")

	name := "Renamed"
	_, err = svc.UpdateVariation(ctx, product.ID, foreign.ID, VariationUpdateInput{Name: &name})
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err), "variation of another product")

	got, err = svc.UpsertVariationTranslation(ctx, product.ID, variation.ID, "es", "Viaje")
	require.NoError(t, err)
	assert.Equal(t, "Viaje", got.Variations[0].LocalizedName("es"))

	_, err = svc.DeleteVariationTranslation(ctx, product.ID, variation.ID, "es")
	require.NoError(t, err)
	_, err = svc.DeleteVariationTranslation(ctx, product.ID, variation.ID, "es")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))

	second, err := svc.CreateVariation(ctx, product.ID, VariationInput{Name: "Salon", Order: 1})
	require.NoError(t, err)
	require.Len(t, second.Variations, 2)

	got, err = svc.ReorderVariations(ctx, product.ID, []repo.OrderUpdate{
		{ID: variation.ID, Order: 5},
		{ID: foreign.ID, Order: 0},
	})
	require.NoError(t, err)
	assert.Equal(t, "Salon", got.Variations[0].Name)
	assert.Equal(t, "Travel", got.Variations[1].Name)

	_, err = svc.DeleteVariation(ctx, product.ID, foreign.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
	got, err = svc.DeleteVariation(ctx, product.ID, variation.ID)
	require.NoError(t, err)
	assert.Len(t, got.Variations, 1)
}

func TestTranslations(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := dbtest.MustCreateProduct(t, conn, "Shampoo", "9.99")

	got, err := svc.UpsertTranslation(ctx, product.ID, TranslationInput{Language: "es", Name: "Champú"})
	require.NoError(t, err)
	got, err = svc.UpsertTranslation(ctx, product.ID, TranslationInput{Language: "es", Name: "Champú Suave"})
	require.NoError(t, err)
	require.Len(t, got.Translations, 1)

	dto := NewProductDTO(*got, "es")
	assert.Equal(t, "Champú Suave", dto.Name)
	assert.Equal(t, "9.99", dto.Price)

	_, err = svc.DeleteTranslation(ctx, product.ID, "es")
	require.NoError(t, err)
	_, err = svc.DeleteTranslation(ctx, product.ID, "es")
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestDeleteProduct(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := dbtest.MustCreateProduct(t, conn, "Shampoo", "9.99")
	dbtest.MustCreateVariation(t, conn, product.ID, "Small", "")
	tag := dbtest.MustCreateTag(t, conn, "Vegan", 0)
	tagProduct(t, conn, product.ID, tag.ID)

	require.NoError(t, svc.Delete(ctx, product.ID))

	var variations, links int64
	require.NoError(t, conn.Model(&models.ProductVariation{}).Count(&variations).Error)
	require.NoError(t, conn.Model(&models.EntityTag{}).Count(&links).Error)
	assert.Zero(t, variations)
	assert.Zero(t, links)

	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(svc.Delete(ctx, product.ID)))
}

func TestDeleteOrderedProductConflicts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := dbtest.MustCreateProduct(t, conn, "Shampoo", "9.99")
	require.NoError(t, conn.Create(&models.Order{
		ID:     "01HZX3J8K9M2N4P6Q8R0S2T4V6",
		Status: enums.OrderStatusConfirmed,
		Total:  decimal.RequireFromString("9.99"),
		Items: []models.OrderItem{{
			ProductID: product.ID,
			Quantity:  1,
			UnitPrice: decimal.RequireFromString("9.99"),
		}},
	}).Error)

	err := svc.Delete(ctx, product.ID)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))
}

func TestDeleteOrderedVariationConflicts(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	product := dbtest.MustCreateProduct(t, conn, "Shampoo", "5.00")
	variation := dbtest.MustCreateVariation(t, conn, product.ID, "Large", "7.50")
	require.NoError(t, conn.Create(&models.Order{
		ID:     "01HZX3J8K9M2N4P6Q8R0S2T4V7",
		Status: enums.OrderStatusConfirmed,
		Total:  decimal.RequireFromString("7.50"),
		Items: []models.OrderItem{{
			ProductID:   product.ID,
			VariationID: &variation.ID,
			Quantity:    1,
			UnitPrice:   decimal.RequireFromString("7.50"),
		}},
	}).Error)

	_, err := svc.DeleteVariation(ctx, product.ID, variation.ID)
	assert.Equal(t, pkgerrors.CodeConflict, pkgerrors.CodeOf(err))

	var item models.OrderItem
	require.NoError(t, conn.Where("order_id = ?", "01HZX3J8K9M2N4P6Q8R0S2T4V7").First(&item).Error)
	require.NotNil(t, item.VariationID)
	assert.Equal(t, variation.ID, *item.VariationID)
	assert.Equal(t, "7.5", item.UnitPrice.String())
}

func TestAdminDTOIncludesTranslations(t *testing.T) {
	variationPrice := decimal.NewNullDecimal(decimal.RequireFromString("4"))
	p := models.Product{
		ID:           1,
		Name:         "Shampoo",
		Price:        decimal.RequireFromString("9.9"),
		Translations: []models.ProductTranslation{{Language: "es", Name: "Champú"}},
		Variations: []models.ProductVariation{
			{ID: 2, Name: "Small", Price: variationPrice, Translations: []models.VariationTranslation{{Language: "es", Name: "Pequeño"}}},
			{ID: 3, Name: "Large"},
		},
	}

	dto := NewAdminProductDTO(p)
	assert.Equal(t, "Shampoo", dto.Name)
	assert.Equal(t, "9.90", dto.Price)
	require.Len(t, dto.Translations, 1)
	require.Len(t, dto.Variations, 2)
	require.NotNil(t, dto.Variations[0].Price)
	assert.Equal(t, "4.00", *dto.Variations[0].Price)
	assert.Equal(t, "4.00", dto.Variations[0].EffectivePrice)
	assert.Nil(t, dto.Variations[1].Price)
	assert.Equal(t, "9.90", dto.Variations[1].EffectivePrice)
	assert.Len(t, dto.Variations[0].Translations, 1)
}
