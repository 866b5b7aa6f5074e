package seed

import (
	"context"
	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"

	"gorm.io/gorm"
)

// Seed writes development fixture rows. Skipped for any sheet that already
// holds data rows.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("Seed")
	log.Info("Seeding development data")

	ctx := context.Background()
	sheetRepo := repositories.NewSheet(database.DB{SQL: db})

	contract := ContractRow{
		Timestamp:      "2026/01/15 10:30:00",
		Company:        "株式会社サンプル",
		Name:           "山田太郎",
		Email:          "taro.yamada@example.com",
		Referrer:       "佐藤花子",
		ContractStatus: ContractStatusContracted,
		Product:        "LPテンプレート",
		Price:          "49800",
		PaymentMethod:  DefaultPaymentMethod,
		PaymentStatus:  PaymentStatusUnpaid,
	}

	bank := BankInfoRow{
		PartnerName:   "佐藤花子",
		BankName:      "みずほ銀行",
		BankCode:      "0001",
		BranchName:    "渋谷支店",
		BranchCode:    "210",
		AccountType:   AccountTypeOrdinary,
		AccountNumber: "1234567",
		AccountHolder: "サトウ ハナコ",
		RegisteredAt:  "2026/01/10 09:00:00",
	}

	seeds := []struct {
		gid    int64
		header []string
		cells  []string
	}{
		{config.SheetContractsGID, ContractHeader(), contract.Cells()},
		{config.SheetBankInfoGID, nil, bank.Cells()},
	}

	for _, s := range seeds {
		lastRow, err := sheetRepo.LastRow(ctx, s.gid)
		if err != nil {
			return err
		}
		if lastRow > 1 {
			log.Info("Sheet already has data, skipping", "gid", s.gid)
			continue
		}

		if lastRow == 0 && s.header != nil {
			if _, err := sheetRepo.AppendRow(ctx, s.gid, s.header); err != nil {
				return err
			}
		}

		if _, err := sheetRepo.AppendRow(ctx, s.gid, s.cells); err != nil {
			return log.Err("failed to seed row", err, "gid", s.gid)
		}
	}

	return nil
}
