package types

// Row query limits.
const (
	MinQueryLimit     = 1
	MaxQueryLimit     = 500
	DefaultQueryLimit = 200
)

// Bulk row generation limits.
const (
	MinAddRows     = 1
	MaxAddRows     = 200000
	DefaultAddRows = 100000
)

// RowQuery is one page request against a table. A zero Limit means
// DefaultQueryLimit; a nil Cursor starts from the beginning. Search is
// trimmed before matching; an empty trimmed search is ignored.
type RowQuery struct {
	TableID string   `json:"tableId"`
	Limit   int      `json:"limit"`
	Cursor  *Cursor  `json:"cursor"`
	Search  string   `json:"search,omitempty"`
	Filters []Filter `json:"filters,omitempty"`
	Sort    *Sort    `json:"sort,omitempty"`
}

// RowPage is one page of query results. NextCursor is nil on the last
// page. TotalCount counts all rows matching the search and filters,
// independent of pagination.
type RowPage struct {
	Items      []Row   `json:"items"`
	NextCursor *Cursor `json:"nextCursor"`
	TotalCount int64   `json:"totalCount"`
}

// CellUpdate is a single-cell edit request. A nil or empty-string Value
// deletes the cell from the row's cell map.
type CellUpdate struct {
	TableID  string `json:"tableId"`
	RowID    string `json:"rowId"`
	ColumnID string `json:"columnId"`
	Value    any    `json:"value"`
}

// AddRowsResult reports the contiguous row index range a bulk generation
// call claimed.
type AddRowsResult struct {
	StartRowIndex int64 `json:"startRowIndex"`
	Count         int64 `json:"count"`
}
