package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// filterSQL compiles one validated filter into a predicate fragment,
// appending bound values to args. Column identifiers have already been
// checked against the table's column set.
//
// Matching semantics carried by the store:
//   - contains/not_contains are case-insensitive (LIKE); equals is
//     case-sensitive (= under BINARY collation).
//   - an absent cell matches not_contains vacuously.
//   - gt/lt compare cell_number(...), so empty and unparsable cells are
//     excluded rather than compared as zero.
func filterSQL(f types.Filter, args []any) (string, []any, error) {
	switch f.Op {
	case types.OpIsEmpty:
		expr := cellTextExpr(f.ColumnID)
		return "(" + expr + " IS NULL OR " + expr + " = '')", args, nil
	case types.OpIsNotEmpty:
		expr := cellTextExpr(f.ColumnID)
		return "(" + expr + " IS NOT NULL AND " + expr + " <> '')", args, nil
	case types.OpContains:
		args = append(args, "%"+f.TextValue()+"%")
		return "(" + cellTextExpr(f.ColumnID) + " LIKE ?)", args, nil
	case types.OpNotContains:
		expr := cellTextExpr(f.ColumnID)
		args = append(args, "%"+f.TextValue()+"%")
		return "(" + expr + " IS NULL OR " + expr + " NOT LIKE ?)", args, nil
	case types.OpEquals:
		args = append(args, f.TextValue())
		return "(" + cellTextExpr(f.ColumnID) + " = ?)", args, nil
	case types.OpGreaterThan, types.OpLessThan:
		cmp := ">"
		if f.Op == types.OpLessThan {
			cmp = "<"
		}
		n, _ := types.NumberValue(f.Value)
		args = append(args, n)
		return "(" + cellNumberExpr(f.ColumnID) + " " + cmp + " ?)", args, nil
	default:
		return "", args, fmt.Errorf("%w: unknown op %q", types.ErrInvalidFilter, f.Op)
	}
}

// matchWhere builds the WHERE clause shared by the page query and the
// count query: table scope, search over the denormalized search text,
// and all filters AND-ed. The cursor predicate is appended separately by
// the caller because count queries must not carry it.
func matchWhere(tableID, search string, filters []types.Filter, args []any) (string, []any, error) {
	args = append(args, tableID)
	where := "WHERE table_id = ?"

	if search != "" {
		args = append(args, "%"+search+"%")
		where += " AND search_text LIKE ?"
	}

	var clauses []string
	for _, f := range filters {
		clause, newArgs, err := filterSQL(f, args)
		if err != nil {
			return "", nil, err
		}
		args = newArgs
		clauses = append(clauses, clause)
	}
	if len(clauses) > 0 {
		where += " AND (" + strings.Join(clauses, " AND ") + ")"
	}
	return where, args, nil
}

// QueryRows serves one page of a row query: validation, predicate
// compilation, keyset cursor, limit+1 probe, and the dual-path total
// count. See the Store interface for the full contract.
func (b *Backend) QueryRows(ctx context.Context, q types.RowQuery) (*types.RowPage, error) {
	limit := q.Limit
	if limit == 0 {
		limit = types.DefaultQueryLimit
	}
	if limit < types.MinQueryLimit || limit > types.MaxQueryLimit {
		return nil, types.ErrInvalidLimit
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	tbl, err := b.getTable(ctx, q.TableID)
	if err != nil {
		return nil, err
	}

	search := strings.TrimSpace(q.Search)

	// Validate every column reference before anything is interpolated.
	cols, err := b.columnTypes(ctx, q.TableID)
	if err != nil {
		return nil, err
	}
	for _, f := range q.Filters {
		if err := f.Validate(); err != nil {
			return nil, err
		}
		if _, ok := cols[f.ColumnID]; !ok {
			return nil, fmt.Errorf("%w: filter column %s not on table", types.ErrInvalidFilter, f.ColumnID)
		}
	}
	if q.Sort != nil {
		if err := q.Sort.Validate(); err != nil {
			return nil, err
		}
		colType, ok := cols[q.Sort.ColumnID]
		if !ok {
			return nil, types.ErrSortColumnNotFound
		}
		if colType != q.Sort.Type {
			return nil, types.ErrSortTypeMismatch
		}
	}

	where, args, err := matchWhere(q.TableID, search, q.Filters, nil)
	if err != nil {
		return nil, err
	}

	// Cursor predicate. A cursor is only meaningful for the traversal
	// mode that produced it; a shape mismatch starts from the beginning.
	switch {
	case q.Sort == nil:
		cursorIndex := int64(0)
		if q.Cursor != nil && !q.Cursor.Sorted {
			cursorIndex = q.Cursor.RowIndex
		}
		var clause string
		clause, args = unsortedCursorSQL(types.Cursor{RowIndex: cursorIndex}, args)
		where += clause
	case q.Cursor != nil && q.Cursor.Sorted:
		cursor := *q.Cursor
		cursor.SortValue = normalizeCursorValue(*q.Sort, cursor.SortValue)
		var clause string
		clause, args = sortedCursorSQL(*q.Sort, cursor, args)
		where += clause
	}

	args = append(args, limit+1)
	query := `SELECT row_id, table_id, row_index, cells, search_text, created_at, updated_at
		FROM grid_rows ` + where + `
		ORDER BY ` + orderBySQL(q.Sort) + `
		LIMIT ?`

	rows, err := b.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying rows: %w", err)
	}
	defer rows.Close()

	var items []types.Row
	for rows.Next() {
		var r types.Row
		var cellsJSON, createdAt, updatedAt string
		if err := rows.Scan(&r.RowID, &r.TableID, &r.RowIndex, &cellsJSON,
			&r.SearchText, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.Cells = make(map[string]any)
		if cellsJSON != "" {
			if err := json.Unmarshal([]byte(cellsJSON), &r.Cells); err != nil {
				return nil, fmt.Errorf("parsing row cells: %w", err)
			}
		}
		r.CreatedAt = parseTime(createdAt)
		r.UpdatedAt = parseTime(updatedAt)
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading rows: %w", err)
	}

	// Probe row: its presence proves a next page; it is never returned
	// and the next cursor comes from the last row actually kept.
	var nextCursor *types.Cursor
	if len(items) > limit {
		items = items[:limit]
		nextCursor = nextCursorFor(q.Sort, items[len(items)-1])
	}
	if items == nil {
		items = []types.Row{}
	}

	totalCount, err := b.totalCount(ctx, tbl, search, q.Filters)
	if err != nil {
		return nil, err
	}

	return &types.RowPage{Items: items, NextCursor: nextCursor, TotalCount: totalCount}, nil
}

// totalCount picks between the two counting strategies: with no search
// and no filters the denormalized per-table counter answers in O(1);
// otherwise a count query shares the exact WHERE clause of the page
// query (minus cursor and limit) so the number is right under filtering.
func (b *Backend) totalCount(ctx context.Context, tbl *types.Table, search string, filters []types.Filter) (int64, error) {
	if search == "" && len(filters) == 0 {
		return tbl.RowCount, nil
	}

	where, args, err := matchWhere(tbl.TableID, search, filters, nil)
	if err != nil {
		return 0, err
	}
	var count int64
	err = b.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM grid_rows "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting rows: %w", err)
	}
	return count, nil
}

// normalizeCursorValue coerces a decoded cursor sort value to the type
// the sort compares with, so a cursor that round-tripped through JSON
// still binds correctly.
func normalizeCursorValue(sort types.Sort, v any) any {
	if v == nil {
		return nil
	}
	if sort.Type == types.ColumnNumber {
		n, ok := types.NumberValue(v)
		if !ok {
			return nil
		}
		return n
	}
	return types.CellString(v)
}
