package types

import "time"

// Table is the catalog record for one user table. Rows are ordered by a
// monotonically increasing row index drawn from NextRowIndex; those values
// are never reused or reassigned, so they form a total order independent of
// cell content. RowCount is a denormalized aggregate kept in lockstep with
// every row insert inside the same transaction.
type Table struct {
	TableID         string    `json:"tableId"`
	Name            string    `json:"name"`
	NextRowIndex    int64     `json:"nextRowIndex"`    // next row index to hand out, starts at 1
	NextColumnOrder int64     `json:"nextColumnOrder"` // next column ordinal, starts at 0
	RowCount        int64     `json:"rowCount"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Column types. The type is immutable after creation and determines how
// the column's cell values are parsed, compared, and indexed.
const (
	ColumnText   = "TEXT"
	ColumnNumber = "NUMBER"
)

// validColumnTypes is the set of recognized column type values.
var validColumnTypes = map[string]bool{
	ColumnText:   true,
	ColumnNumber: true,
}

// IsValidColumnType reports whether t is a recognized column type.
func IsValidColumnType(t string) bool {
	return validColumnTypes[t]
}

// Column describes one typed column of a table. Order is a dense per-table
// sequence assigned at creation time and never renumbered.
type Column struct {
	ColumnID string `json:"columnId"`
	TableID  string `json:"tableId"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Order    int64  `json:"order"`
}
