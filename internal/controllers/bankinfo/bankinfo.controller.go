package bankInfoController

import (
	"context"
	"fmt"
	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/utils"
	"strings"
	"time"
)

const bankInfoCacheTTL = 1 * time.Hour

type BankInfoController struct {
	sheetRepo     repositories.SheetRepository
	upsertService *services.UpsertService
	cache         database.CacheClient
	gid           int64
	clock         *utils.Clock
	now           func() time.Time
	log           logger.Logger
}

func New(
	sheetRepo repositories.SheetRepository,
	upsertService *services.UpsertService,
	cache database.CacheClient,
	config config.Config,
) *BankInfoController {
	clock := utils.NewClock(config.Timezone)
	return &BankInfoController{
		sheetRepo:     sheetRepo,
		upsertService: upsertService,
		cache:         cache,
		gid:           config.SheetBankInfoGID,
		clock:         clock,
		now:           clock.Now,
		log:           logger.New("BankInfoController"),
	}
}

// Register upserts a partner's transfer details keyed on the trimmed partner
// name. Registration is idempotent: every field is overwritten and the
// registration timestamp refreshed.
func (bc *BankInfoController) Register(ctx context.Context, req WriteRequest) (services.UpsertResult, error) {
	log := bc.log.Function("Register")

	partnerName := strings.TrimSpace(req.PartnerName)
	if partnerName == "" {
		return services.UpsertCreated, fmt.Errorf("%w: partnerName required", ErrValidation)
	}

	accountType := req.AccountType
	if accountType == "" {
		accountType = AccountTypeOrdinary
	}

	row := BankInfoRow{
		PartnerName:   partnerName,
		Company:       req.Company,
		BankName:      req.BankName,
		BankCode:      req.BankCode,
		BranchName:    req.BranchName,
		BranchCode:    req.BranchCode,
		AccountType:   accountType,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		RegisteredAt:  utils.FormatTimestamp(bc.now()),
	}

	result, err := bc.upsertService.Upsert(
		ctx,
		bc.gid,
		BankSheetWidth,
		ScanDescending,
		partnerNameMatch(partnerName),
		row.Cells(),
		func([]string) []string { return row.Cells() },
	)
	if err != nil {
		return result, log.Err("failed to register bank info", err, "partnerName", partnerName)
	}

	if err := database.NewCacheBuilder(bc.cache, cacheKey(partnerName)).WithContext(ctx).Delete(); err != nil {
		log.Warn("failed to invalidate bank info cache", "partnerName", partnerName, "error", err)
	}

	return result, nil
}

// CheckRegistration answers whether transfer details exist for the partner.
// It is a pure read: no write lock, cache consulted first, and the most
// recent row is authoritative if duplicates somehow exist.
func (bc *BankInfoController) CheckRegistration(ctx context.Context, partnerName string) (BankInfoResponse, error) {
	log := bc.log.Function("CheckRegistration")

	partnerName = strings.TrimSpace(partnerName)
	if partnerName == "" {
		return BankInfoResponse{Registered: false}, nil
	}

	var cached BankInfoResponse
	found, err := database.NewCacheBuilder(bc.cache, cacheKey(partnerName)).WithContext(ctx).Get(&cached)
	if err != nil {
		log.Warn("failed to read bank info cache", "partnerName", partnerName, "error", err)
	} else if found {
		return cached, nil
	}

	if _, err := bc.sheetRepo.GetSheet(ctx, bc.gid); err != nil {
		if err == ErrSheetNotFound {
			log.Warn("bank info sheet missing", "gid", bc.gid)
			return BankInfoResponse{Registered: false}, nil
		}
		return BankInfoResponse{}, err
	}

	match, err := bc.sheetRepo.FindRow(ctx, bc.gid, BankSheetWidth, ScanDescending, partnerNameMatch(partnerName))
	if err != nil {
		return BankInfoResponse{}, log.Err("failed to look up bank info", err, "partnerName", partnerName)
	}
	if match == nil {
		return BankInfoResponse{Registered: false}, nil
	}

	row := BankInfoRowFromCells(match.Cells)
	response := BankInfoResponse{
		Registered:    true,
		Company:       row.Company,
		BankName:      row.BankName,
		BankCode:      row.BankCode,
		BranchName:    row.BranchName,
		BranchCode:    row.BranchCode,
		AccountType:   row.AccountType,
		AccountNumber: row.AccountNumber,
		AccountHolder: row.AccountHolder,
	}

	if err := database.NewCacheBuilder(bc.cache, cacheKey(partnerName)).
		WithStruct(response).
		WithTTL(bankInfoCacheTTL).
		WithContext(ctx).
		Set(); err != nil {
		log.Warn("failed to cache bank info", "partnerName", partnerName, "error", err)
	}

	return response, nil
}

func partnerNameMatch(partnerName string) RowPredicate {
	return func(cells []string) bool {
		row := BankInfoRowFromCells(cells)
		return strings.TrimSpace(row.PartnerName) == partnerName
	}
}

func cacheKey(partnerName string) string {
	return "bankinfo:" + partnerName
}
