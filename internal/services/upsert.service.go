package services

import (
	"context"
	"server/internal/logger"
	. "server/internal/models"
)

// UpsertResult reports which branch an upsert took. Both branches are
// success to the caller; the distinction only feeds response messages.
type UpsertResult string

const (
	UpsertCreated UpsertResult = "created"
	UpsertUpdated UpsertResult = "updated"
)

// SheetStore is the slice of the sheet repository the upsert engine
// consumes.
type SheetStore interface {
	GetSheet(ctx context.Context, gid int64) (*Sheet, error)
	LastRow(ctx context.Context, gid int64) (int, error)
	AppendRow(ctx context.Context, gid int64, cells []string) (int, error)
	WriteRange(ctx context.Context, gid int64, startRow, startCol int, grid [][]string) error
	FindRow(ctx context.Context, gid int64, width int, order ScanOrder, match RowPredicate) (*RowMatch, error)
}

// UpsertService finds the row matching a key and either patches it or
// appends a fully populated new row. The find-then-write sequence runs in
// one transaction; the global write lock already serializes it against
// other writers.
type UpsertService struct {
	sheets             SheetStore
	transactionService *TransactionService
	log                logger.Logger
}

func NewUpsertService(sheets SheetStore, transactionService *TransactionService) *UpsertService {
	return &UpsertService{
		sheets:             sheets,
		transactionService: transactionService,
		log:                logger.New("UpsertService"),
	}
}

// Upsert resolves the sheet, scans for a match in the given order, and
// writes. patch receives the matched row's cells and returns the full row to
// store; it must only change the columns its record kind updates on
// resubmission. newRow is appended when nothing matches.
func (s *UpsertService) Upsert(
	ctx context.Context,
	gid int64,
	width int,
	order ScanOrder,
	match RowPredicate,
	newRow []string,
	patch func(existing []string) []string,
) (UpsertResult, error) {
	log := s.log.Function("Upsert")

	result := UpsertCreated
	err := s.transactionService.Execute(ctx, func(txCtx context.Context) error {
		if _, err := s.sheets.GetSheet(txCtx, gid); err != nil {
			return err
		}

		existing, err := s.sheets.FindRow(txCtx, gid, width, order, match)
		if err != nil {
			return err
		}

		if existing != nil {
			result = UpsertUpdated
			return s.sheets.WriteRange(txCtx, gid, existing.Index, 1, [][]string{patch(existing.Cells)})
		}

		_, err = s.sheets.AppendRow(txCtx, gid, newRow)
		return err
	})
	if err != nil {
		return result, err
	}

	log.Info("upsert complete", "gid", gid, "result", string(result))
	return result, nil
}

// EnsureHeader writes the header row when the sheet is completely empty.
// Only the contract sheet self-heals this way; the other sheets are created
// with their headers.
func (s *UpsertService) EnsureHeader(ctx context.Context, gid int64, header []string) error {
	return s.transactionService.Execute(ctx, func(txCtx context.Context) error {
		lastRow, err := s.sheets.LastRow(txCtx, gid)
		if err != nil {
			return err
		}
		if lastRow > 0 {
			return nil
		}

		_, err = s.sheets.AppendRow(txCtx, gid, header)
		return err
	})
}
