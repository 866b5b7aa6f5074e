package contractController

import (
	"context"
	"server/config"
	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testGID int64 = 358495717

var fixedNow = time.Date(2026, time.January, 15, 10, 30, 0, 0, time.FixedZone("JST", 9*60*60))

func newTestController(t *testing.T) (*ContractController, repositories.SheetRepository) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Sheet{}, &SheetRow{}))

	wrapped := database.DB{SQL: db}
	repo := repositories.NewSheet(wrapped)
	require.NoError(t, repo.CreateSheet(context.Background(), testGID, "契約データ"))

	transactionService := services.NewTransactionService(wrapped)
	upsertService := services.NewUpsertService(repo, transactionService)

	controller := New(repo, upsertService, transactionService, config.Config{
		SheetContractsGID: testGID,
		Timezone:          "Asia/Tokyo",
	})
	controller.now = func() time.Time { return fixedNow }

	return controller, repo
}

func contractRequest() WriteRequest {
	return WriteRequest{
		Action:   ActionContract,
		Name:     "山田太郎",
		Email:    "taro@example.com",
		Company:  "株式会社サンプル",
		Referrer: "佐藤花子",
		Product:  "LPテンプレート",
		Price:    "49800",
	}
}

func readContractRow(t *testing.T, repo repositories.SheetRepository, rowIndex int) ContractRow {
	t.Helper()
	grid, err := repo.ReadRange(context.Background(), testGID, rowIndex, 1, 1, ContractSheetWidth)
	require.NoError(t, err)
	return ContractRowFromCells(grid[0])
}

func TestSubmit_CreatesRowWithHeaderAndDefaults(t *testing.T) {
	controller, repo := newTestController(t)
	ctx := context.Background()

	result, err := controller.Submit(ctx, contractRequest())
	assert.NoError(t, err)
	assert.Equal(t, services.UpsertCreated, result)

	// Header row written on the empty sheet, data row after it
	grid, err := repo.ReadRange(ctx, testGID, 1, 1, 1, ContractSheetWidth)
	require.NoError(t, err)
	assert.Equal(t, ContractHeader(), grid[0])

	row := readContractRow(t, repo, 2)
	assert.Equal(t, "2026/01/15 10:30:00", row.Timestamp)
	assert.Equal(t, "山田太郎", row.Name)
	assert.Equal(t, "taro@example.com", row.Email)
	assert.Equal(t, ContractStatusContracted, row.ContractStatus)
	assert.Equal(t, DefaultPaymentMethod, row.PaymentMethod)
	assert.Equal(t, PaymentStatusUnpaid, row.PaymentStatus)
	assert.Empty(t, row.PaymentCompletedAt)
	assert.Empty(t, row.PaymentCompletedOn)
}

func TestSubmit_Idempotent(t *testing.T) {
	controller, repo := newTestController(t)
	ctx := context.Background()

	_, err := controller.Submit(ctx, contractRequest())
	require.NoError(t, err)

	result, err := controller.Submit(ctx, contractRequest())
	assert.NoError(t, err)
	assert.Equal(t, services.UpsertUpdated, result)

	// Exactly one data row for the key: header + 1
	lastRow, err := repo.LastRow(ctx, testGID)
	assert.NoError(t, err)
	assert.Equal(t, 2, lastRow)
}

func TestSubmit_UpdatesCommercialColumns(t *testing.T) {
	controller, repo := newTestController(t)
	ctx := context.Background()

	_, err := controller.Submit(ctx, contractRequest())
	require.NoError(t, err)

	updated := contractRequest()
	updated.Product = "上位プラン"
	updated.Price = "98000"
	updated.PaymentMethod = "銀行振込"

	_, err = controller.Submit(ctx, updated)
	require.NoError(t, err)

	row := readContractRow(t, repo, 2)
	assert.Equal(t, "上位プラン", row.Product)
	assert.Equal(t, "98000", row.Price)
	assert.Equal(t, "銀行振込", row.PaymentMethod)
}

func TestSubmit_FirstWriteWinsOnPaymentStatus(t *testing.T) {
	controller, repo := newTestController(t)
	ctx := context.Background()

	_, err := controller.Submit(ctx, contractRequest())
	require.NoError(t, err)

	require.NoError(t, controller.ConfirmPayment(ctx, WriteRequest{Name: "山田太郎"}))

	// Resubmitting the contract must not reset a paid status
	_, err = controller.Submit(ctx, contractRequest())
	require.NoError(t, err)

	row := readContractRow(t, repo, 2)
	assert.Equal(t, PaymentStatusPaid, row.PaymentStatus)
	assert.Equal(t, "2026/01/15 10:30:00", row.PaymentCompletedAt)
	assert.Equal(t, "2026/01/15", row.PaymentCompletedOn)
}

func TestSubmit_DistinctKeysGetDistinctRows(t *testing.T) {
	controller, repo := newTestController(t)
	ctx := context.Background()

	_, err := controller.Submit(ctx, contractRequest())
	require.NoError(t, err)

	other := contractRequest()
	other.Email = "another@example.com"
	result, err := controller.Submit(ctx, other)
	assert.NoError(t, err)
	assert.Equal(t, services.UpsertCreated, result)

	lastRow, err := repo.LastRow(ctx, testGID)
	assert.NoError(t, err)
	assert.Equal(t, 3, lastRow)
}

func TestConfirmPayment_MatchesByNameOrEmail(t *testing.T) {
	tests := []struct {
		name    string
		request WriteRequest
	}{
		{name: "by name only", request: WriteRequest{Name: "山田太郎"}},
		{name: "by email only", request: WriteRequest{Email: "taro@example.com"}},
		{name: "whitespace trimmed", request: WriteRequest{Name: "  山田太郎  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, repo := newTestController(t)
			ctx := context.Background()

			_, err := controller.Submit(ctx, contractRequest())
			require.NoError(t, err)

			assert.NoError(t, controller.ConfirmPayment(ctx, tt.request))

			row := readContractRow(t, repo, 2)
			assert.Equal(t, PaymentStatusPaid, row.PaymentStatus)
			assert.Equal(t, "2026/01/15 10:30:00", row.PaymentCompletedAt)
			assert.Equal(t, "2026/01/15", row.PaymentCompletedOn)
		})
	}
}

func TestConfirmPayment_NoMatchIsDistinctOutcome(t *testing.T) {
	controller, _ := newTestController(t)
	ctx := context.Background()

	_, err := controller.Submit(ctx, contractRequest())
	require.NoError(t, err)

	err = controller.ConfirmPayment(ctx, WriteRequest{Name: "存在しない顧客"})
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestConfirmPayment_RequiresNameOrEmail(t *testing.T) {
	controller, _ := newTestController(t)

	err := controller.ConfirmPayment(context.Background(), WriteRequest{Name: "  ", Email: ""})
	assert.ErrorIs(t, err, ErrValidation)
}
