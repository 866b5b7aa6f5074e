package models

// Sheet is the registry entry for one workflow table. GID is the stable
// external identifier requests address tables by.
type Sheet struct {
	BaseUUIDModel
	GID   int64  `gorm:"column:gid;uniqueIndex;not null" json:"gid"`
	Title string `gorm:"type:varchar(100);not null" json:"title"`
}

// SheetRow is one position-addressed row. RowIndex is 1-based and row 1 is
// the header row. Cells holds the ordered column values as a JSON array;
// column order must be preserved exactly for compatibility with rows written
// by the previous system.
type SheetRow struct {
	BaseUUIDModel
	SheetGID int64  `gorm:"column:sheet_gid;not null;uniqueIndex:idx_sheet_row" json:"sheetGid"`
	RowIndex int    `gorm:"not null;uniqueIndex:idx_sheet_row" json:"rowIndex"`
	Cells    string `gorm:"type:text;not null"                 json:"cells"`
}
