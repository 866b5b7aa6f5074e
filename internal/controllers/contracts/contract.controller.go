package contractController

import (
	"context"
	"fmt"
	"server/config"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/repositories"
	"server/internal/services"
	"server/internal/utils"
	"strings"
	"time"
)

type ContractController struct {
	sheetRepo          repositories.SheetRepository
	upsertService      *services.UpsertService
	transactionService *services.TransactionService
	gid                int64
	clock              *utils.Clock
	now                func() time.Time
	log                logger.Logger
}

func New(
	sheetRepo repositories.SheetRepository,
	upsertService *services.UpsertService,
	transactionService *services.TransactionService,
	config config.Config,
) *ContractController {
	clock := utils.NewClock(config.Timezone)
	return &ContractController{
		sheetRepo:          sheetRepo,
		upsertService:      upsertService,
		transactionService: transactionService,
		gid:                config.SheetContractsGID,
		clock:              clock,
		now:                clock.Now,
		log:                logger.New("ContractController"),
	}
}

// Submit records a contract, keyed on trimmed (name, email). Resubmission
// refreshes the commercial columns but never resets a payment status that is
// already set.
func (cc *ContractController) Submit(ctx context.Context, req WriteRequest) (services.UpsertResult, error) {
	log := cc.log.Function("Submit")

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	timestamp := utils.FormatTimestamp(cc.now())

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = DefaultPaymentMethod
	}

	if err := cc.upsertService.EnsureHeader(ctx, cc.gid, ContractHeader()); err != nil {
		return services.UpsertCreated, err
	}

	newRow := ContractRow{
		Timestamp:      timestamp,
		Company:        req.Company,
		Name:           name,
		Email:          email,
		Referrer:       req.Referrer,
		ContractStatus: ContractStatusContracted,
		Product:        req.Product,
		Price:          req.Price,
		PaymentMethod:  paymentMethod,
		PaymentStatus:  PaymentStatusUnpaid,
	}

	result, err := cc.upsertService.Upsert(
		ctx,
		cc.gid,
		ContractSheetWidth,
		ScanAscending,
		contractKeyMatch(name, email),
		newRow.Cells(),
		func(existing []string) []string {
			row := ContractRowFromCells(existing)
			row.Timestamp = timestamp
			row.Company = req.Company
			row.Referrer = req.Referrer
			row.ContractStatus = ContractStatusContracted
			row.Product = req.Product
			row.Price = req.Price
			row.PaymentMethod = paymentMethod
			if row.PaymentStatus == "" {
				row.PaymentStatus = PaymentStatusUnpaid
			}
			return row.Cells()
		},
	)
	if err != nil {
		return result, log.Err("failed to upsert contract", err, "name", name, "email", email)
	}

	return result, nil
}

// ConfirmPayment transitions a contract to paid. The match is looser than
// the creation key: name OR email alone qualifies a row. A miss is a
// distinct not-found outcome, never a silent success.
func (cc *ContractController) ConfirmPayment(ctx context.Context, req WriteRequest) error {
	log := cc.log.Function("ConfirmPayment")

	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	if name == "" && email == "" {
		return fmt.Errorf("%w: name or email is required", ErrValidation)
	}

	now := cc.now()

	err := cc.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if _, err := cc.sheetRepo.GetSheet(txCtx, cc.gid); err != nil {
			return err
		}

		match, err := cc.sheetRepo.FindRow(
			txCtx,
			cc.gid,
			ContractSheetWidth,
			ScanAscending,
			contractLooseMatch(name, email),
		)
		if err != nil {
			return err
		}
		if match == nil {
			return ErrRecordNotFound
		}

		row := ContractRowFromCells(match.Cells)
		row.PaymentStatus = PaymentStatusPaid
		row.PaymentCompletedAt = utils.FormatTimestamp(now)
		row.PaymentCompletedOn = utils.FormatDate(now)

		return cc.sheetRepo.WriteRange(txCtx, cc.gid, match.Index, 1, [][]string{row.Cells()})
	})
	if err != nil {
		if err == ErrRecordNotFound {
			log.Warn("no contract row matched payment confirmation", "name", name, "email", email)
			return err
		}
		return log.Err("failed to confirm payment", err, "name", name, "email", email)
	}

	log.Info("payment confirmed", "name", name, "email", email)
	return nil
}

func contractKeyMatch(name, email string) RowPredicate {
	return func(cells []string) bool {
		row := ContractRowFromCells(cells)
		return strings.TrimSpace(row.Name) == name && strings.TrimSpace(row.Email) == email
	}
}

func contractLooseMatch(name, email string) RowPredicate {
	return func(cells []string) bool {
		row := ContractRowFromCells(cells)
		if name != "" && strings.TrimSpace(row.Name) == name {
			return true
		}
		return email != "" && strings.TrimSpace(row.Email) == email
	}
}
