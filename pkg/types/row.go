package types

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Row is one record of a table. Cells maps column IDs to scalar values;
// absent and empty values are removed from the map rather than stored as
// null or empty markers, which is the defined "empty" representation for
// the is_empty and is_not_empty filters.
//
// SearchText is a derived flattening of all cell values joined by spaces,
// used for full-text matching. It is not a source of truth: it must be
// recomputed and committed atomically with every change to Cells.
type Row struct {
	RowID      string         `json:"id"`
	TableID    string         `json:"tableId"`
	RowIndex   int64          `json:"rowIndex"`
	Cells      map[string]any `json:"cells"`
	SearchText string         `json:"searchText"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// RowSummary is the shape returned by cell updates.
type RowSummary struct {
	RowID     string         `json:"id"`
	RowIndex  int64          `json:"rowIndex"`
	Cells     map[string]any `json:"cells"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// CellString renders a single cell value the way SearchTextFor does:
// strings as-is, numbers and booleans via strconv, nil as the empty
// string, and anything else JSON-encoded.
func CellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case bool:
		return strconv.FormatBool(val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// SearchTextFor computes the derived search text for a cell map: the
// string form of every cell value joined by single spaces. Iteration over
// the map is done in sorted column-ID order so the result is deterministic
// for a given cell map.
func SearchTextFor(cells map[string]any) string {
	if len(cells) == 0 {
		return ""
	}
	ids := make([]string, 0, len(cells))
	for id := range cells {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, CellString(cells[id]))
	}
	return strings.Join(parts, " ")
}
