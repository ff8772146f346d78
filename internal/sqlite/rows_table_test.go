// Unit tests for bulk row generation and cell edits.
package sqlite

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// collectRows drains every page of an unsorted query for a table.
func collectRows(t *testing.T, b *Backend, tableID string) []types.Row {
	t.Helper()
	ctx := context.Background()

	var out []types.Row
	var cursor *types.Cursor
	for {
		page, err := b.QueryRows(ctx, types.RowQuery{
			TableID: tableID,
			Limit:   types.MaxQueryLimit,
			Cursor:  cursor,
		})
		require.NoError(t, err)
		out = append(out, page.Items...)
		if page.NextCursor == nil {
			return out
		}
		cursor = page.NextCursor
	}
}

func TestAddRowsAssignsContiguousIndexes(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	tbl, err := b.CreateTable(ctx, "orders")
	require.NoError(t, err)

	first, err := b.AddRows(ctx, tbl.TableID, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.StartRowIndex)
	assert.Equal(t, int64(5), first.Count)

	second, err := b.AddRows(ctx, tbl.TableID, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(6), second.StartRowIndex)
	assert.Equal(t, int64(3), second.Count)

	got, err := b.GetTable(ctx, tbl.TableID)
	require.NoError(t, err)
	assert.Equal(t, int64(8), got.RowCount)
	assert.Equal(t, int64(9), got.NextRowIndex)

	rows := collectRows(t, b, tbl.TableID)
	require.Len(t, rows, 8)
	seenIDs := make(map[string]bool)
	for i, r := range rows {
		assert.Equal(t, int64(i+1), r.RowIndex)
		assert.Empty(t, r.Cells)
		assert.False(t, seenIDs[r.RowID], "row ID %s duplicated", r.RowID)
		seenIDs[r.RowID] = true
	}
}

func TestAddRowsValidation(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	tbl, err := b.CreateTable(ctx, "orders")
	require.NoError(t, err)

	_, err = b.AddRows(ctx, tbl.TableID, -1)
	assert.ErrorIs(t, err, types.ErrInvalidCount)

	_, err = b.AddRows(ctx, tbl.TableID, types.MaxAddRows+1)
	assert.ErrorIs(t, err, types.ErrInvalidCount)

	_, err = b.AddRows(ctx, "no-such-table", 10)
	assert.ErrorIs(t, err, types.ErrTableNotFound)
}

func TestAddRowsConcurrent(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	tbl, err := b.CreateTable(ctx, "orders")
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = b.AddRows(ctx, tbl.TableID, 50)
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	got, err := b.GetTable(ctx, tbl.TableID)
	require.NoError(t, err)
	assert.Equal(t, int64(200), got.RowCount)

	rows := collectRows(t, b, tbl.TableID)
	require.Len(t, rows, 200)
	seen := make(map[int64]bool)
	for _, r := range rows {
		assert.False(t, seen[r.RowIndex], "row index %d duplicated", r.RowIndex)
		seen[r.RowIndex] = true
	}
	for i := int64(1); i <= 200; i++ {
		assert.True(t, seen[i], "row index %d missing", i)
	}
}

func TestUpdateCell(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	tbl, err := b.CreateTable(ctx, "orders")
	require.NoError(t, err)
	name, err := b.CreateColumn(ctx, tbl.TableID, "Name", types.ColumnText)
	require.NoError(t, err)
	amount, err := b.CreateColumn(ctx, tbl.TableID, "Amount", types.ColumnNumber)
	require.NoError(t, err)
	_, err = b.AddRows(ctx, tbl.TableID, 1)
	require.NoError(t, err)
	row := collectRows(t, b, tbl.TableID)[0]

	t.Run("set text and number cells", func(t *testing.T) {
		summary, err := b.UpdateCell(ctx, types.CellUpdate{
			TableID: tbl.TableID, RowID: row.RowID, ColumnID: name.ColumnID, Value: "Alice",
		})
		require.NoError(t, err)
		assert.Equal(t, "Alice", summary.Cells[name.ColumnID])

		summary, err = b.UpdateCell(ctx, types.CellUpdate{
			TableID: tbl.TableID, RowID: row.RowID, ColumnID: amount.ColumnID, Value: 19.5,
		})
		require.NoError(t, err)
		assert.Equal(t, 19.5, summary.Cells[amount.ColumnID])
		assert.Equal(t, "Alice", summary.Cells[name.ColumnID])
	})

	t.Run("search text follows the edit", func(t *testing.T) {
		page, err := b.QueryRows(ctx, types.RowQuery{TableID: tbl.TableID, Search: "alice"})
		require.NoError(t, err)
		require.Len(t, page.Items, 1)
		assert.Contains(t, page.Items[0].SearchText, "Alice")
		assert.Contains(t, page.Items[0].SearchText, "19.5")
	})

	t.Run("empty string clears the cell", func(t *testing.T) {
		summary, err := b.UpdateCell(ctx, types.CellUpdate{
			TableID: tbl.TableID, RowID: row.RowID, ColumnID: name.ColumnID, Value: "",
		})
		require.NoError(t, err)
		_, ok := summary.Cells[name.ColumnID]
		assert.False(t, ok)

		page, err := b.QueryRows(ctx, types.RowQuery{TableID: tbl.TableID, Search: "alice"})
		require.NoError(t, err)
		assert.Empty(t, page.Items)

		page, err = b.QueryRows(ctx, types.RowQuery{
			TableID: tbl.TableID,
			Filters: []types.Filter{{ColumnID: name.ColumnID, Op: types.OpIsNotEmpty}},
		})
		require.NoError(t, err)
		assert.Empty(t, page.Items)
	})

	t.Run("nil clears the cell", func(t *testing.T) {
		summary, err := b.UpdateCell(ctx, types.CellUpdate{
			TableID: tbl.TableID, RowID: row.RowID, ColumnID: amount.ColumnID, Value: nil,
		})
		require.NoError(t, err)
		assert.Empty(t, summary.Cells)
	})
}

func TestUpdateCellValidation(t *testing.T) {
	b := setupBackend(t)
	ctx := context.Background()

	tbl, err := b.CreateTable(ctx, "orders")
	require.NoError(t, err)
	col, err := b.CreateColumn(ctx, tbl.TableID, "Name", types.ColumnText)
	require.NoError(t, err)
	_, err = b.AddRows(ctx, tbl.TableID, 1)
	require.NoError(t, err)
	row := collectRows(t, b, tbl.TableID)[0]

	tests := []struct {
		name    string
		update  types.CellUpdate
		wantErr error
	}{
		{
			name:    "boolean value rejected",
			update:  types.CellUpdate{TableID: tbl.TableID, RowID: row.RowID, ColumnID: col.ColumnID, Value: true},
			wantErr: types.ErrInvalidCellValue,
		},
		{
			name:    "map value rejected",
			update:  types.CellUpdate{TableID: tbl.TableID, RowID: row.RowID, ColumnID: col.ColumnID, Value: map[string]any{}},
			wantErr: types.ErrInvalidCellValue,
		},
		{
			name:    "unknown table",
			update:  types.CellUpdate{TableID: "nope", RowID: row.RowID, ColumnID: col.ColumnID, Value: "x"},
			wantErr: types.ErrTableNotFound,
		},
		{
			name:    "unknown column",
			update:  types.CellUpdate{TableID: tbl.TableID, RowID: row.RowID, ColumnID: "nope", Value: "x"},
			wantErr: types.ErrColumnNotFound,
		},
		{
			name:    "unknown row",
			update:  types.CellUpdate{TableID: tbl.TableID, RowID: "nope", ColumnID: col.ColumnID, Value: "x"},
			wantErr: types.ErrRowNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.UpdateCell(ctx, tt.update)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
