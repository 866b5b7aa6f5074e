package services

import (
	"context"
	"errors"
	"server/internal/database"
	. "server/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) database.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Sheet{}, &SheetRow{}))

	return database.DB{SQL: db}
}

func TestTransactionService_CommitsOnSuccess(t *testing.T) {
	db := newTestDB(t)
	service := NewTransactionService(db)

	err := service.Execute(context.Background(), func(txCtx context.Context) error {
		tx, ok := GetTransaction(txCtx)
		require.True(t, ok, "transaction should be carried in context")
		return tx.Create(&Sheet{GID: 1, Title: "committed"}).Error
	})
	assert.NoError(t, err)

	var count int64
	require.NoError(t, db.SQL.Model(&Sheet{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestTransactionService_RollsBackOnError(t *testing.T) {
	db := newTestDB(t)
	service := NewTransactionService(db)

	failure := errors.New("abort")
	err := service.Execute(context.Background(), func(txCtx context.Context) error {
		tx, _ := GetTransaction(txCtx)
		if err := tx.Create(&Sheet{GID: 2, Title: "rolled back"}).Error; err != nil {
			return err
		}
		return failure
	})
	assert.ErrorIs(t, err, failure)

	var count int64
	require.NoError(t, db.SQL.Model(&Sheet{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestTransactionService_NestedExecuteReusesTransaction(t *testing.T) {
	db := newTestDB(t)
	service := NewTransactionService(db)

	err := service.Execute(context.Background(), func(outerCtx context.Context) error {
		outer, _ := GetTransaction(outerCtx)
		return service.Execute(outerCtx, func(innerCtx context.Context) error {
			inner, ok := GetTransaction(innerCtx)
			require.True(t, ok)
			assert.Same(t, outer, inner)
			return nil
		})
	})
	assert.NoError(t, err)
}

func TestGetTransaction_MissingFromContext(t *testing.T) {
	_, ok := GetTransaction(context.Background())
	assert.False(t, ok)
}
