package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// CreateColumn appends a typed column to a table. The column order is
// drawn from the table's next_column_order counter inside the same
// transaction as the insert, so orders stay dense under concurrent
// creation. Column type is immutable after creation.
func (b *Backend) CreateColumn(ctx context.Context, tableID, name, columnType string) (*types.Column, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}
	if !types.IsValidColumnType(columnType) {
		return nil, types.ErrInvalidColumnType
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

	var next int64
	err = tx.QueryRowContext(ctx, `
		UPDATE grid_tables
		SET next_column_order = next_column_order + 1, updated_at = ?
		WHERE table_id = ?
		RETURNING next_column_order`,
		formatTime(time.Now()), tableID).Scan(&next)
	if err == sql.ErrNoRows {
		return nil, types.ErrTableNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("claiming column order: %w", err)
	}

	col := &types.Column{
		ColumnID: newUUID(),
		TableID:  tableID,
		Name:     name,
		Type:     columnType,
		Order:    next - 1,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO grid_columns (column_id, table_id, name, column_type, col_order)
		VALUES (?, ?, ?, ?, ?)`,
		col.ColumnID, col.TableID, col.Name, col.Type, col.Order)
	if err != nil {
		return nil, fmt.Errorf("inserting column: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing column: %w", err)
	}
	return col, nil
}

// ListColumns returns a table's columns ordered by their order value.
// Returns ErrTableNotFound if the table does not exist.
func (b *Backend) ListColumns(ctx context.Context, tableID string) ([]types.Column, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if err := b.tableExists(ctx, tableID); err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, `
		SELECT column_id, table_id, name, column_type, col_order
		FROM grid_columns WHERE table_id = ? ORDER BY col_order`, tableID)
	if err != nil {
		return nil, fmt.Errorf("fetching columns: %w", err)
	}
	defer rows.Close()

	var results []types.Column
	for rows.Next() {
		var c types.Column
		if err := rows.Scan(&c.ColumnID, &c.TableID, &c.Name, &c.Type, &c.Order); err != nil {
			return nil, fmt.Errorf("scanning column: %w", err)
		}
		results = append(results, c)
	}
	if results == nil {
		results = []types.Column{}
	}
	return results, rows.Err()
}

// columnTypes loads the column set of a table as a columnID -> type map.
// Used to validate filter and sort column references before any of them
// is interpolated into a query. The caller must hold b.mu.
func (b *Backend) columnTypes(ctx context.Context, tableID string) (map[string]string, error) {
	rows, err := b.db.QueryContext(ctx,
		"SELECT column_id, column_type FROM grid_columns WHERE table_id = ?", tableID)
	if err != nil {
		return nil, fmt.Errorf("fetching column types: %w", err)
	}
	defer rows.Close()

	cols := make(map[string]string)
	for rows.Next() {
		var id, typ string
		if err := rows.Scan(&id, &typ); err != nil {
			return nil, fmt.Errorf("scanning column type: %w", err)
		}
		cols[id] = typ
	}
	return cols, rows.Err()
}
