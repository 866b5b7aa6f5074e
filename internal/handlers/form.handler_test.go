package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"server/config"
	"server/internal/app"
	"server/internal/database"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"testing"
	"time"

	bankInfoController "server/internal/controllers/bankinfo"
	contactController "server/internal/controllers/contact"
	contractController "server/internal/controllers/contracts"
	conversionController "server/internal/controllers/conversions"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	testContractsGID   int64 = 101
	testBankInfoGID    int64 = 102
	testConversionsGID int64 = 103
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, gormDB.AutoMigrate(&Sheet{}, &SheetRow{}))

	db := database.DB{SQL: gormDB}
	repo := repositories.NewSheet(db)
	ctx := context.Background()
	require.NoError(t, repo.CreateSheet(ctx, testContractsGID, "契約データ"))
	require.NoError(t, repo.CreateSheet(ctx, testBankInfoGID, "パートナー口座情報"))
	require.NoError(t, repo.CreateSheet(ctx, testConversionsGID, "パートナー販売成果管理"))
	_, err = repo.AppendRow(ctx, testBankInfoGID, BankInfoHeader())
	require.NoError(t, err)
	_, err = repo.AppendRow(ctx, testConversionsGID, ConversionHeader())
	require.NoError(t, err)

	cfg := config.Config{
		SheetContractsGID:       testContractsGID,
		SheetBankInfoGID:        testBankInfoGID,
		SheetConversionsGID:     testConversionsGID,
		WriteLockTimeoutSeconds: 10,
		Timezone:                "Asia/Tokyo",
		ContactRecipient:        "info@chainsoda.world",
	}

	transactionService := services.NewTransactionService(db)
	upsertService := services.NewUpsertService(repo, transactionService)

	application := app.App{
		Database:             db,
		Config:               cfg,
		TransactionService:   transactionService,
		WriteLockService:     services.NewWriteLockService(time.Duration(cfg.WriteLockTimeoutSeconds) * time.Second),
		UpsertService:        upsertService,
		Mailer:               services.NewMailer(cfg),
		SheetRepo:            repo,
		ContractController:   contractController.New(repo, upsertService, transactionService, cfg),
		BankInfoController:   bankInfoController.New(repo, upsertService, nil, cfg),
		ConversionController: conversionController.New(repo, cfg),
		ContactController:    contactController.New(services.NewMailer(cfg), cfg),
	}

	server := fiber.New()
	api := server.Group("/api")
	NewFormHandler(application, api).Register()
	return server
}

func postForm(t *testing.T, server *fiber.App, payload any) *http.Response {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/form/", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Test(req)
	require.NoError(t, err)
	return resp
}

func decodeStatus(t *testing.T, resp *http.Response) StatusResponse {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var status StatusResponse
	require.NoError(t, json.Unmarshal(raw, &status))
	return status
}

func TestWrite_InvalidJSON(t *testing.T) {
	server := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/form/", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")

	resp, err := server.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid JSON", decodeStatus(t, resp).Message)
}

func TestWrite_UnknownAction(t *testing.T) {
	server := newTestApp(t)

	resp := postForm(t, server, map[string]string{"action": "deleteEverything"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Unknown action: deleteEverything", decodeStatus(t, resp).Message)
}

func TestWrite_Contract(t *testing.T) {
	server := newTestApp(t)

	resp := postForm(t, server, map[string]string{
		"action":  ActionContract,
		"name":    "山田太郎",
		"email":   "taro@example.com",
		"product": "LPテンプレート",
		"price":   "49800",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	status := decodeStatus(t, resp)
	assert.Equal(t, "ok", status.Status)
}

func TestWrite_PaymentStatusValidation(t *testing.T) {
	server := newTestApp(t)

	resp := postForm(t, server, map[string]string{"action": ActionUpdatePaymentStatus})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "name or email is required", decodeStatus(t, resp).Message)
}

func TestWrite_PaymentStatusNotFound(t *testing.T) {
	server := newTestApp(t)

	resp := postForm(t, server, map[string]string{
		"action": ActionUpdatePaymentStatus,
		"name":   "存在しない顧客",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Record not found", decodeStatus(t, resp).Message)
}

func TestWrite_BankInfoLifecycle(t *testing.T) {
	server := newTestApp(t)

	payload := map[string]string{
		"action":        ActionRegisterBankInfo,
		"partnerName":   "佐藤花子",
		"bankName":      "みずほ銀行",
		"accountNumber": "1234567",
	}

	resp := postForm(t, server, payload)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bank info registered", decodeStatus(t, resp).Message)

	resp = postForm(t, server, payload)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bank info updated", decodeStatus(t, resp).Message)
}

func TestWrite_BankInfoValidation(t *testing.T) {
	server := newTestApp(t)

	resp := postForm(t, server, map[string]string{"action": ActionRegisterBankInfo})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "partnerName required", decodeStatus(t, resp).Message)
}

func TestWrite_ConversionReport(t *testing.T) {
	server := newTestApp(t)

	resp := postForm(t, server, map[string]string{
		"action":       ActionSubmitConversionRepo,
		"partnerName":  "佐藤花子",
		"customerName": "山田太郎",
		"salesAmount":  "49800",
	})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Conversion report submitted", decodeStatus(t, resp).Message)
}

func TestQuery_CheckBankInfo(t *testing.T) {
	server := newTestApp(t)

	postForm(t, server, map[string]string{
		"action":      ActionRegisterBankInfo,
		"partnerName": "佐藤花子",
		"bankName":    "みずほ銀行",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/form/?action=checkBankInfo&partnerName=佐藤花子", nil)
	resp, err := server.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var lookup BankInfoResponse
	require.NoError(t, json.Unmarshal(raw, &lookup))
	assert.True(t, lookup.Registered)
	assert.Equal(t, "みずほ銀行", lookup.BankName)
}

func TestQuery_CheckBankInfoUnregistered(t *testing.T) {
	server := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/form/?action=checkBankInfo&partnerName=未登録", nil)
	resp, err := server.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var lookup BankInfoResponse
	require.NoError(t, json.Unmarshal(raw, &lookup))
	assert.False(t, lookup.Registered)
}

func TestQuery_OtherActionsAcknowledged(t *testing.T) {
	server := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/form/?action=ping", nil)
	resp, err := server.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "GET received", decodeStatus(t, resp).Message)
}
