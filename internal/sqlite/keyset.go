package sqlite

import (
	"strings"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// Cell access expressions. User-supplied values are always bound as
// parameters, but SQLite cannot use an expression index when the JSON
// path is a parameter, so column identifiers are validated against the
// table's own column set and then interpolated as escaped literals. The
// same builders feed filters, sorts, cursor predicates, and index DDL so
// the expressions match everywhere.

// escapeLiteral doubles single quotes for safe literal interpolation.
func escapeLiteral(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

// cellTextExpr extracts a cell as text. The CAST makes number cells
// compare and match as their string form, the way a schemaless text
// extraction behaves.
func cellTextExpr(columnID string) string {
	return `CAST(json_extract(cells, '$."` + escapeLiteral(columnID) + `"') AS TEXT)`
}

// cellRawExpr extracts a cell with its stored JSON type, NULL when
// absent. Used where only presence matters.
func cellRawExpr(columnID string) string {
	return `json_extract(cells, '$."` + escapeLiteral(columnID) + `"')`
}

// cellNumberExpr extracts a cell as a float, NULL when the cell is
// absent, empty, or unparsable (see cell_number).
func cellNumberExpr(columnID string) string {
	return `cell_number(` + cellRawExpr(columnID) + `)`
}

// sortExpr returns the ORDER BY expression for a validated sort spec.
func sortExpr(sort types.Sort) string {
	if sort.Type == types.ColumnNumber {
		return cellNumberExpr(sort.ColumnID)
	}
	return cellTextExpr(sort.ColumnID)
}

// orderBySQL builds the full ORDER BY clause. Row index ascending is the
// universal tie-break; for sorted traversal the null-rank term places
// empty cells last for ascending order and first for descending, and the
// identical expressions reappear in the cursor predicate so pagination
// and ordering can never disagree.
func orderBySQL(sort *types.Sort) string {
	if sort == nil {
		return "row_index ASC"
	}
	dir := "ASC"
	if sort.Descending() {
		dir = "DESC"
	}
	expr := sortExpr(*sort)
	return "(" + expr + " IS NULL) " + dir + ", " + expr + " " + dir + ", row_index ASC"
}

// unsortedCursorSQL appends the creation-order cursor predicate.
func unsortedCursorSQL(cursor types.Cursor, args []any) (string, []any) {
	args = append(args, cursor.RowIndex)
	return " AND row_index > ?", args
}

// sortedCursorSQL appends the keyset predicate for sorted traversal: the
// SQL form of the tuple comparison
//
//	(nullRank, sortValue, rowIndex) > (cursorNullRank, cursorSortValue, cursorRowIndex)
//
// where the first two components flip direction with the sort and the
// third is always ascending. A row qualifies when it crossed into a
// later null-rank group, or shares the group with a strictly more
// extreme sort value, or ties on both and has a strictly greater row
// index. The row index branch guarantees no row is skipped or duplicated
// even when many rows share one sort value.
func sortedCursorSQL(sort types.Sort, cursor types.Cursor, args []any) (string, []any) {
	expr := sortExpr(sort)
	nullRank := "(" + expr + " IS NULL)"

	cmp := ">"
	if sort.Descending() {
		cmp = "<"
	}

	// Cursor inside the NULL group: advance within the group by row
	// index, or (descending only) cross into the non-null group.
	if cursor.SortValue == nil {
		args = append(args, 1, 1, cursor.RowIndex)
		return " AND (" +
			nullRank + " " + cmp + " ?" +
			" OR (" + nullRank + " = ? AND row_index > ?))", args
	}

	// Non-null cursor: full three-branch tuple comparison.
	args = append(args, 0, 0, cursor.SortValue, 0, cursor.SortValue, cursor.RowIndex)
	return " AND (" +
		nullRank + " " + cmp + " ?" +
		" OR (" + nullRank + " = ? AND " + expr + " " + cmp + " ?)" +
		" OR (" + nullRank + " = ? AND " + expr + " = ? AND row_index > ?))", args
}

// nextCursorFor derives the next-page cursor from the last row kept on
// the current page (not the probe row).
func nextCursorFor(sort *types.Sort, last types.Row) *types.Cursor {
	if sort == nil {
		return &types.Cursor{RowIndex: last.RowIndex}
	}
	return &types.Cursor{
		RowIndex:  last.RowIndex,
		SortValue: sortValueFromCells(*sort, last.Cells),
		Sorted:    true,
	}
}

// sortValueFromCells normalizes the sort column's cell value for use in
// a cursor: numeric sorts coerce to float64 (unparsable becomes nil),
// text sorts stringify scalars and JSON-encode anything else.
func sortValueFromCells(sort types.Sort, cells map[string]any) any {
	raw, ok := cells[sort.ColumnID]
	if !ok || raw == nil {
		return nil
	}
	if sort.Type == types.ColumnNumber {
		n, ok := types.NumberValue(raw)
		if !ok {
			return nil
		}
		return n
	}
	return types.CellString(raw)
}
