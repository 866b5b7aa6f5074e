package conversionController

import (
	"context"
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/utils"
	"time"
)

type ConversionReportController struct {
	sheetRepo repositories.SheetRepository
	gid       int64
	clock     *utils.Clock
	now       func() time.Time
	log       logger.Logger
}

func New(sheetRepo repositories.SheetRepository, config config.Config) *ConversionReportController {
	clock := utils.NewClock(config.Timezone)
	return &ConversionReportController{
		sheetRepo: sheetRepo,
		gid:       config.SheetConversionsGID,
		clock:     clock,
		now:       clock.Now,
		log:       logger.New("ConversionReportController"),
	}
}

// Submit appends one conversion report. The table is an append-only ledger:
// no key, no dedup, every submission is a new row. Transfer and customer
// payment statuses are set here once and never mutated by this system.
func (cc *ConversionReportController) Submit(ctx context.Context, req WriteRequest) error {
	log := cc.log.Function("Submit")

	now := cc.now()

	transferDate := req.TransferDate
	if transferDate == "" {
		transferDate = utils.FormatDate(utils.MonthAfterNextEnd(now))
	}

	row := ConversionReportRow{
		SubmittedAt:         utils.FormatTimestamp(now),
		PartnerName:         req.PartnerName,
		CustomerName:        req.CustomerName,
		Product:             req.Product,
		SalesAmount:         req.SalesAmount,
		RewardAmount:        req.RewardAmount,
		BankStatus:          req.BankStatus,
		TransferDate:        transferDate,
		TransferStatus:      TransferStatusUnremitted,
		PaymentConfirmation: PaymentConfirmationUnconfirmed,
	}

	if _, err := cc.sheetRepo.GetSheet(ctx, cc.gid); err != nil {
		return err
	}

	if _, err := cc.sheetRepo.AppendRow(ctx, cc.gid, row.Cells()); err != nil {
		return log.Err("failed to append conversion report", err, "partnerName", req.PartnerName)
	}

	return nil
}
