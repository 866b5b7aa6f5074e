package initialize

import (
	"context"
	"server/config"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"

	"gorm.io/gorm"
)

// InitializeTables migrates the sheet schema, registers the three workflow
// sheets, and writes the pre-existing header rows for the bank info and
// conversion report sheets. The contract sheet header is written lazily by
// the upsert engine on first contract. Safe to run repeatedly.
func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing sheet tables")

	if err := db.AutoMigrate(&Sheet{}, &SheetRow{}); err != nil {
		return log.Err("failed to migrate sheet tables", err)
	}

	ctx := context.Background()
	sheetRepo := repositories.NewSheet(database.DB{SQL: db})

	sheets := []struct {
		gid    int64
		title  string
		header []string
	}{
		{config.SheetContractsGID, "契約データ", nil},
		{config.SheetBankInfoGID, "パートナー口座情報", BankInfoHeader()},
		{config.SheetConversionsGID, "パートナー販売成果管理", ConversionHeader()},
	}

	for _, s := range sheets {
		if err := sheetRepo.CreateSheet(ctx, s.gid, s.title); err != nil {
			return log.Err("failed to register sheet", err, "gid", s.gid, "title", s.title)
		}

		if s.header == nil {
			continue
		}

		lastRow, err := sheetRepo.LastRow(ctx, s.gid)
		if err != nil {
			return err
		}
		if lastRow > 0 {
			continue
		}

		if _, err := sheetRepo.AppendRow(ctx, s.gid, s.header); err != nil {
			return log.Err("failed to write header row", err, "gid", s.gid)
		}
		log.Info("Wrote header row", "gid", s.gid, "title", s.title)
	}

	log.Info("Table initialization complete")
	return nil
}
