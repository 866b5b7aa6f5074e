package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"server/internal/database"
	"server/internal/logger"
	. "server/internal/models"
	"server/internal/services"

	"gorm.io/gorm"
)

type SheetRepository interface {
	CreateSheet(ctx context.Context, gid int64, title string) error
	GetSheet(ctx context.Context, gid int64) (*Sheet, error)
	LastRow(ctx context.Context, gid int64) (int, error)
	AppendRow(ctx context.Context, gid int64, cells []string) (int, error)
	ReadRange(ctx context.Context, gid int64, startRow, startCol, numRows, numCols int) ([][]string, error)
	WriteRange(ctx context.Context, gid int64, startRow, startCol int, grid [][]string) error
	FindRow(ctx context.Context, gid int64, width int, order ScanOrder, match RowPredicate) (*RowMatch, error)
}

type sheetRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSheet(db database.DB) SheetRepository {
	return &sheetRepository{
		db:  db,
		log: logger.New("sheetRepository"),
	}
}

func (r *sheetRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

func (r *sheetRepository) CreateSheet(ctx context.Context, gid int64, title string) error {
	log := r.log.Function("CreateSheet")

	var existing Sheet
	err := r.getDB(ctx).First(&existing, "gid = ?", gid).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return log.Err("failed to look up sheet", err, "gid", gid)
	}

	sheet := Sheet{GID: gid, Title: title}
	if err := r.getDB(ctx).Create(&sheet).Error; err != nil {
		return log.Err("failed to create sheet", err, "gid", gid, "title", title)
	}

	return nil
}

func (r *sheetRepository) GetSheet(ctx context.Context, gid int64) (*Sheet, error) {
	var sheet Sheet
	if err := r.getDB(ctx).First(&sheet, "gid = ?", gid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSheetNotFound
		}
		return nil, r.log.Function("GetSheet").Err("failed to get sheet", err, "gid", gid)
	}

	return &sheet, nil
}

// LastRow returns the highest occupied 1-based row index, 0 when the sheet
// has no rows at all.
func (r *sheetRepository) LastRow(ctx context.Context, gid int64) (int, error) {
	var lastRow int
	err := r.getDB(ctx).
		Model(&SheetRow{}).
		Where("sheet_gid = ?", gid).
		Select("COALESCE(MAX(row_index), 0)").
		Scan(&lastRow).Error
	if err != nil {
		return 0, r.log.Function("LastRow").Err("failed to get last row", err, "gid", gid)
	}

	return lastRow, nil
}

func (r *sheetRepository) AppendRow(ctx context.Context, gid int64, cells []string) (int, error) {
	log := r.log.Function("AppendRow")

	lastRow, err := r.LastRow(ctx, gid)
	if err != nil {
		return 0, err
	}

	encoded, err := encodeCells(cells)
	if err != nil {
		return 0, log.Err("failed to encode cells", err, "gid", gid)
	}

	row := SheetRow{
		SheetGID: gid,
		RowIndex: lastRow + 1,
		Cells:    encoded,
	}
	if err := r.getDB(ctx).Create(&row).Error; err != nil {
		return 0, log.Err("failed to append row", err, "gid", gid, "rowIndex", row.RowIndex)
	}

	return row.RowIndex, nil
}

func (r *sheetRepository) ReadRange(ctx context.Context, gid int64, startRow, startCol, numRows, numCols int) ([][]string, error) {
	log := r.log.Function("ReadRange")

	if numRows <= 0 || numCols <= 0 {
		return [][]string{}, nil
	}

	var rows []SheetRow
	err := r.getDB(ctx).
		Where("sheet_gid = ? AND row_index >= ? AND row_index < ?", gid, startRow, startRow+numRows).
		Order("row_index ASC").
		Find(&rows).Error
	if err != nil {
		return nil, log.Err("failed to read range", err, "gid", gid, "startRow", startRow)
	}

	byIndex := make(map[int][]string, len(rows))
	for _, row := range rows {
		cells, err := decodeCells(row.Cells)
		if err != nil {
			return nil, log.Err("failed to decode cells", err, "gid", gid, "rowIndex", row.RowIndex)
		}
		byIndex[row.RowIndex] = cells
	}

	grid := make([][]string, numRows)
	for i := range grid {
		grid[i] = sliceCells(byIndex[startRow+i], startCol, numCols)
	}

	return grid, nil
}

func (r *sheetRepository) WriteRange(ctx context.Context, gid int64, startRow, startCol int, grid [][]string) error {
	log := r.log.Function("WriteRange")

	for i, values := range grid {
		rowIndex := startRow + i

		var row SheetRow
		err := r.getDB(ctx).First(&row, "sheet_gid = ? AND row_index = ?", gid, rowIndex).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return log.Err("failed to read row for write", err, "gid", gid, "rowIndex", rowIndex)
		}

		var cells []string
		if err == nil {
			cells, err = decodeCells(row.Cells)
			if err != nil {
				return log.Err("failed to decode cells", err, "gid", gid, "rowIndex", rowIndex)
			}
		}

		cells = patchCells(cells, startCol, values)
		encoded, encErr := encodeCells(cells)
		if encErr != nil {
			return log.Err("failed to encode cells", encErr, "gid", gid, "rowIndex", rowIndex)
		}

		if errors.Is(err, gorm.ErrRecordNotFound) {
			row = SheetRow{SheetGID: gid, RowIndex: rowIndex, Cells: encoded}
			if err := r.getDB(ctx).Create(&row).Error; err != nil {
				return log.Err("failed to create row", err, "gid", gid, "rowIndex", rowIndex)
			}
			continue
		}

		row.Cells = encoded
		if err := r.getDB(ctx).Save(&row).Error; err != nil {
			return log.Err("failed to write row", err, "gid", gid, "rowIndex", rowIndex)
		}
	}

	return nil
}

// FindRow is the record matcher: one bounded read of the occupied data rows
// (header excluded), then the predicate applied in scan order. Returns nil
// when nothing matches.
func (r *sheetRepository) FindRow(ctx context.Context, gid int64, width int, order ScanOrder, match RowPredicate) (*RowMatch, error) {
	lastRow, err := r.LastRow(ctx, gid)
	if err != nil {
		return nil, err
	}
	if lastRow <= 1 {
		return nil, nil
	}

	grid, err := r.ReadRange(ctx, gid, 2, 1, lastRow-1, width)
	if err != nil {
		return nil, err
	}

	if order == ScanDescending {
		for i := len(grid) - 1; i >= 0; i-- {
			if match(grid[i]) {
				return &RowMatch{Index: i + 2, Cells: grid[i]}, nil
			}
		}
		return nil, nil
	}

	for i, cells := range grid {
		if match(cells) {
			return &RowMatch{Index: i + 2, Cells: cells}, nil
		}
	}

	return nil, nil
}

func encodeCells(cells []string) (string, error) {
	if cells == nil {
		cells = []string{}
	}
	data, err := json.Marshal(cells)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeCells(encoded string) ([]string, error) {
	var cells []string
	if err := json.Unmarshal([]byte(encoded), &cells); err != nil {
		return nil, err
	}
	return cells, nil
}

// sliceCells extracts numCols values starting at the 1-based startCol,
// padding short rows with empty strings.
func sliceCells(cells []string, startCol, numCols int) []string {
	out := make([]string, numCols)
	for i := 0; i < numCols; i++ {
		idx := startCol - 1 + i
		if idx < len(cells) {
			out[i] = cells[idx]
		}
	}
	return out
}

// patchCells overwrites values into cells at the 1-based startCol, growing
// the row as needed. Columns outside the patched span keep their values.
func patchCells(cells []string, startCol int, values []string) []string {
	need := startCol - 1 + len(values)
	if len(cells) < need {
		grown := make([]string, need)
		copy(grown, cells)
		cells = grown
	}
	copy(cells[startCol-1:], values)
	return cells
}
