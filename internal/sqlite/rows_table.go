package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// AddRows bulk-generates count empty rows for a table. The counter bump
// and the set-based insert run in one transaction: the claimed counter
// value determines the insert's key range, so committing them separately
// would let two concurrent calls collide on row indexes.
//
// Row IDs come from randomblob inside the INSERT ... SELECT because a
// set-based insert cannot call back into Go for UUIDs; everything else
// about the rows (empty cells, empty search text) matches single-row
// creation.
func (b *Backend) AddRows(ctx context.Context, tableID string, count int64) (*types.AddRowsResult, error) {
	if count == 0 {
		count = types.DefaultAddRows
	}
	if count < types.MinAddRows || count > types.MaxAddRows {
		return nil, types.ErrInvalidCount
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	tx, err := b.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := formatTime(time.Now())

	var next int64
	err = tx.QueryRowContext(ctx, `
		UPDATE grid_tables
		SET next_row_index = next_row_index + ?, row_count = row_count + ?, updated_at = ?
		WHERE table_id = ?
		RETURNING next_row_index`,
		count, count, now, tableID).Scan(&next)
	if err == sql.ErrNoRows {
		return nil, types.ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("claiming row index range: %w", err)
	}
	start := next - count

	_, err = tx.ExecContext(ctx, `
		WITH RECURSIVE seq(n) AS (
			SELECT 0
			UNION ALL
			SELECT n + 1 FROM seq WHERE n + 1 < ?
		)
		INSERT INTO grid_rows (row_id, table_id, row_index, cells, search_text, created_at, updated_at)
		SELECT lower(hex(randomblob(16))), ?, ? + n, '{}', '', ?, ?
		FROM seq`,
		count, tableID, start, now, now)
	if err != nil {
		return nil, fmt.Errorf("inserting rows: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing rows: %w", err)
	}
	return &types.AddRowsResult{StartRowIndex: start, Count: count}, nil
}

// UpdateCell applies a single-cell edit. A nil or empty-string value
// deletes the key from the cell map; any other value sets it. The row's
// search text is recomputed from the resulting cells and committed in the
// same UPDATE, so no committed state ever has the two diverge.
//
// Concurrency contract: last write wins at the row's native atomicity.
// Edits to different cells of the same row are safe because each edit
// re-reads the cell map under the backend write lock; edits to the same
// cell race and the later commit wins.
func (b *Backend) UpdateCell(ctx context.Context, u types.CellUpdate) (*types.RowSummary, error) {
	switch u.Value.(type) {
	case nil, string, float64, int, int64:
	default:
		return nil, types.ErrInvalidCellValue
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	if err := b.tableExists(ctx, u.TableID); err != nil {
		return nil, err
	}

	var one int
	err := b.db.QueryRowContext(ctx,
		"SELECT 1 FROM grid_columns WHERE column_id = ? AND table_id = ?",
		u.ColumnID, u.TableID).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, types.ErrColumnNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking column: %w", err)
	}

	var cellsJSON string
	var rowIndex int64
	err = b.db.QueryRowContext(ctx,
		"SELECT row_index, cells FROM grid_rows WHERE row_id = ? AND table_id = ?",
		u.RowID, u.TableID).Scan(&rowIndex, &cellsJSON)
	if err == sql.ErrNoRows {
		return nil, types.ErrRowNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading row: %w", err)
	}

	cells := make(map[string]any)
	if cellsJSON != "" {
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, fmt.Errorf("parsing row cells: %w", err)
		}
	}

	if u.Value == nil || u.Value == "" {
		delete(cells, u.ColumnID)
	} else {
		cells[u.ColumnID] = u.Value
	}

	searchText := types.SearchTextFor(cells)
	newCells, err := json.Marshal(cells)
	if err != nil {
		return nil, fmt.Errorf("marshaling row cells: %w", err)
	}

	now := time.Now().UTC()
	_, err = b.db.ExecContext(ctx, `
		UPDATE grid_rows SET cells = ?, search_text = ?, updated_at = ?
		WHERE row_id = ?`,
		string(newCells), searchText, formatTime(now), u.RowID)
	if err != nil {
		return nil, fmt.Errorf("updating row: %w", err)
	}

	return &types.RowSummary{
		RowID:     u.RowID,
		RowIndex:  rowIndex,
		Cells:     cells,
		UpdatedAt: now,
	}, nil
}
