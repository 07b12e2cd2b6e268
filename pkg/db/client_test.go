package db_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/angelmondragon/storefront-backend/pkg/db"
	"github.com/angelmondragon/storefront-backend/pkg/db/dbtest"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
)

func TestWithTx_CommitsAndRollbacks(t *testing.T) {
	client, conn := dbtest.Client(t)
	ctx := context.Background()

	require.NoError(t, client.WithTx(ctx, func(tx *gorm.DB) error {
		return tx.Create(&models.Cart{Token: "01HZX3J8K9M2N4P6Q8R0S2T4V6"}).Error
	}))

	var count int64
	require.NoError(t, conn.Model(&models.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	err := client.WithTx(ctx, func(tx *gorm.DB) error {
		if err := tx.Create(&models.Cart{Token: "01HZX3J8K9M2N4P6Q8R0S2T4V7"}).Error; err != nil {
			return err
		}
		return errors.New("boom")
	})
	require.Error(t, err)

	require.NoError(t, conn.Model(&models.Cart{}).Count(&count).Error)
	assert.Equal(t, int64(1), count, "rollback should leave one cart")
}

func TestWithTx_RollsBackOnPanic(t *testing.T) {
	client, conn := dbtest.Client(t)

	assert.Panics(t, func() {
		_ = client.WithTx(context.Background(), func(tx *gorm.DB) error {
			tx.Create(&models.Cart{Token: "01HZX3J8K9M2N4P6Q8R0S2T4V8"})
			panic("kaboom")
		})
	})

	var count int64
	require.NoError(t, conn.Model(&models.Cart{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPing(t *testing.T) {
	client, _ := dbtest.Client(t)
	require.NoError(t, client.Ping(context.Background()))
}

func TestIsUniqueViolation(t *testing.T) {
	_, conn := dbtest.Client(t)
	require.NoError(t, conn.Create(&models.Cart{Token: "01HZX3J8K9M2N4P6Q8R0S2T4V9"}).Error)
	err := conn.Create(&models.Cart{Token: "01HZX3J8K9M2N4P6Q8R0S2T4V9"}).Error
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, ""))

	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uq_tags_label"}
	assert.True(t, db.IsUniqueViolation(pgErr, "uq_tags_label"))
	assert.False(t, db.IsUniqueViolation(pgErr, "uq_carts_token"))
	assert.False(t, db.IsUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, db.IsUniqueViolation(nil, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	_, conn := dbtest.Client(t)
	err := conn.Create(&models.CartItem{CartID: 4242, ProductID: 4242, Quantity: 1}).Error
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err))

	assert.True(t, db.IsForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, db.IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, db.IsForeignKeyViolation(nil))
}
