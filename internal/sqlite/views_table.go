package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// ListViews returns a table's views ordered by creation time.
// Returns ErrTableNotFound if the table does not exist.
func (b *Backend) ListViews(ctx context.Context, tableID string) ([]types.View, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if err := b.tableExists(ctx, tableID); err != nil {
		return nil, err
	}

	rows, err := b.db.QueryContext(ctx, `
		SELECT view_id, table_id, name, config, created_at, updated_at
		FROM grid_views WHERE table_id = ? ORDER BY created_at`, tableID)
	if err != nil {
		return nil, fmt.Errorf("fetching views: %w", err)
	}
	defer rows.Close()

	var results []types.View
	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *v)
	}
	if results == nil {
		results = []types.View{}
	}
	return results, rows.Err()
}

// CreateView persists a new named view configuration.
func (b *Backend) CreateView(ctx context.Context, tableID, name string, config types.ViewConfig) (*types.View, error) {
	if name == "" {
		return nil, types.ErrInvalidName
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	if err := b.tableExists(ctx, tableID); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshaling view config: %w", err)
	}

	now := time.Now().UTC()
	v := &types.View{
		ViewID:    newUUID(),
		TableID:   tableID,
		Name:      name,
		Config:    raw,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = b.db.ExecContext(ctx, `
		INSERT INTO grid_views (view_id, table_id, name, config, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		v.ViewID, v.TableID, v.Name, string(raw), formatTime(now), formatTime(now))
	if err != nil {
		return nil, fmt.Errorf("inserting view: %w", err)
	}
	return v, nil
}

// UpdateView updates a view's name and/or configuration. An empty name
// or nil config leaves the respective field unchanged.
// Returns ErrViewNotFound if the view does not exist.
func (b *Backend) UpdateView(ctx context.Context, viewID, name string, config *types.ViewConfig) (*types.View, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	var one int
	err := b.db.QueryRowContext(ctx,
		"SELECT 1 FROM grid_views WHERE view_id = ?", viewID).Scan(&one)
	if err == sql.ErrNoRows {
		return nil, types.ErrViewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("checking view: %w", err)
	}

	now := time.Now().UTC()
	if name != "" {
		if _, err := b.db.ExecContext(ctx,
			"UPDATE grid_views SET name = ?, updated_at = ? WHERE view_id = ?",
			name, formatTime(now), viewID); err != nil {
			return nil, fmt.Errorf("updating view name: %w", err)
		}
	}
	if config != nil {
		if err := config.Validate(); err != nil {
			return nil, err
		}
		raw, err := json.Marshal(config)
		if err != nil {
			return nil, fmt.Errorf("marshaling view config: %w", err)
		}
		if _, err := b.db.ExecContext(ctx,
			"UPDATE grid_views SET config = ?, updated_at = ? WHERE view_id = ?",
			string(raw), formatTime(now), viewID); err != nil {
			return nil, fmt.Errorf("updating view config: %w", err)
		}
	}

	row := b.db.QueryRowContext(ctx, `
		SELECT view_id, table_id, name, config, created_at, updated_at
		FROM grid_views WHERE view_id = ?`, viewID)
	return scanViewRow(row)
}

// rowScanner is the subset of sql.Row / sql.Rows both scan paths need.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanView(rows *sql.Rows) (*types.View, error) {
	return scanViewRow(rows)
}

func scanViewRow(row rowScanner) (*types.View, error) {
	var v types.View
	var config, createdAt, updatedAt string
	if err := row.Scan(&v.ViewID, &v.TableID, &v.Name, &config, &createdAt, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrViewNotFound
		}
		return nil, fmt.Errorf("scanning view: %w", err)
	}
	v.Config = json.RawMessage(config)
	v.CreatedAt = parseTime(createdAt)
	v.UpdatedAt = parseTime(updatedAt)
	return &v, nil
}
