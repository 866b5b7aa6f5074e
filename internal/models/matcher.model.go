package models

// ScanOrder is the direction candidate rows are checked in during a key
// match. Ascending means the oldest match wins, descending the most recent.
type ScanOrder int

const (
	ScanAscending ScanOrder = iota
	ScanDescending
)

// RowPredicate decides whether a data row matches a lookup key. Predicates
// compare trimmed exact strings against the designated key columns.
type RowPredicate func(cells []string) bool

// RowMatch is a matched data row and its 1-based sheet index.
type RowMatch struct {
	Index int
	Cells []string
}
