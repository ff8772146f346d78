package types

import (
	"encoding/json"
	"fmt"
)

// Cursor is an opaque pagination position. For unsorted (creation-order)
// traversal it is the row index of the last returned row; for sorted
// traversal it also carries the sort column's value at that row, with the
// row index as tie-break.
//
// A cursor is meaningful only relative to the (search, filters, sort)
// combination that produced it; callers must reset pagination whenever
// the configuration changes.
type Cursor struct {
	RowIndex  int64
	SortValue any  // nil both when unsorted and when the sort cell is empty
	Sorted    bool // distinguishes a sorted cursor with a NULL sort value
}

// sortedCursorJSON is the wire shape of a sorted cursor.
type sortedCursorJSON struct {
	SortValue any   `json:"sortValue"`
	RowIndex  int64 `json:"rowIndex"`
}

// MarshalJSON emits the wire shape: a bare number for unsorted cursors,
// a {sortValue, rowIndex} object for sorted ones.
func (c Cursor) MarshalJSON() ([]byte, error) {
	if !c.Sorted {
		return json.Marshal(c.RowIndex)
	}
	return json.Marshal(sortedCursorJSON{SortValue: c.SortValue, RowIndex: c.RowIndex})
}

// UnmarshalJSON accepts either wire shape.
func (c *Cursor) UnmarshalJSON(data []byte) error {
	var idx int64
	if err := json.Unmarshal(data, &idx); err == nil {
		*c = Cursor{RowIndex: idx}
		return nil
	}
	var obj sortedCursorJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("cursor must be a row index or {sortValue, rowIndex}: %w", err)
	}
	*c = Cursor{RowIndex: obj.RowIndex, SortValue: obj.SortValue, Sorted: true}
	return nil
}
