package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// CreateTable creates an empty table with the given name. Row indexes
// start at 1 and column orders at 0.
func (b *Backend) CreateTable(ctx context.Context, name string) (*types.Table, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	now := time.Now().UTC()
	tbl := &types.Table{
		TableID:         newUUID(),
		Name:            name,
		NextRowIndex:    1,
		NextColumnOrder: 0,
		RowCount:        0,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := b.db.ExecContext(ctx, `
		INSERT INTO grid_tables (table_id, name, next_row_index, next_column_order, row_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		tbl.TableID, tbl.Name, tbl.NextRowIndex, tbl.NextColumnOrder, tbl.RowCount,
		formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("inserting table: %w", err)
	}
	return tbl, nil
}

// GetTable returns the catalog record for a table.
// Returns ErrTableNotFound if the table does not exist.
func (b *Backend) GetTable(ctx context.Context, tableID string) (*types.Table, error) {
	if tableID == "" {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	return b.getTable(ctx, tableID)
}

// getTable loads a table record. The caller must hold b.mu.
func (b *Backend) getTable(ctx context.Context, tableID string) (*types.Table, error) {
	var tbl types.Table
	var createdAt, updatedAt string
	err := b.db.QueryRowContext(ctx, `
		SELECT table_id, name, next_row_index, next_column_order, row_count, created_at, updated_at
		FROM grid_tables WHERE table_id = ?`, tableID).
		Scan(&tbl.TableID, &tbl.Name, &tbl.NextRowIndex, &tbl.NextColumnOrder,
			&tbl.RowCount, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, types.ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning table: %w", err)
	}
	tbl.CreatedAt = parseTime(createdAt)
	tbl.UpdatedAt = parseTime(updatedAt)
	return &tbl, nil
}

// tableExists checks table presence without hydrating the full record.
// The caller must hold b.mu.
func (b *Backend) tableExists(ctx context.Context, tableID string) error {
	var one int
	err := b.db.QueryRowContext(ctx,
		"SELECT 1 FROM grid_tables WHERE table_id = ?", tableID).Scan(&one)
	if err == sql.ErrNoRows {
		return types.ErrTableNotFound
	}
	if err != nil {
		return fmt.Errorf("checking table: %w", err)
	}
	return nil
}
