package types

import "fmt"

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Sort requests value-ordered traversal of a table by one column.
// Type must match the column's declared type; a mismatch is a validation
// error rather than a silent correction, so text is never compared
// numerically (or vice versa) by mistake.
type Sort struct {
	ColumnID  string `json:"columnId"`
	Direction string `json:"direction"`
	Type      string `json:"type"`
}

// Validate checks the sort shape. Column membership and type agreement
// with the actual column are checked by the store at query time.
func (s Sort) Validate() error {
	if s.ColumnID == "" {
		return fmt.Errorf("%w: missing columnId", ErrInvalidSort)
	}
	if s.Direction != SortAsc && s.Direction != SortDesc {
		return fmt.Errorf("%w: unknown direction %q", ErrInvalidSort, s.Direction)
	}
	if !IsValidColumnType(s.Type) {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidSort, s.Type)
	}
	return nil
}

// Descending reports whether the sort runs high-to-low.
func (s Sort) Descending() bool {
	return s.Direction == SortDesc
}
