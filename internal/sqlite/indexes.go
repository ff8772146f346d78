package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// EnsureColumnIndexes creates the secondary indexes for a column if they
// do not already exist. CREATE INDEX IF NOT EXISTS makes the operation
// idempotent at the store level and tolerant of concurrent callers; the
// per-session dedup that keeps repeat calls off the wire lives with the
// caller.
//
// Index shape follows the column type. TEXT columns get an index on the
// text extraction (equality and prefix matches) plus one on its lower()
// form; substring LIKE still scans, an accepted gap since SQLite has no
// trigram indexes. NUMBER columns get an index on the cell_number()
// expression, the exact expression numeric filters and sorts compare
// with. All are partial per table.
func (b *Backend) EnsureColumnIndexes(ctx context.Context, tableID, columnID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	if err := b.tableExists(ctx, tableID); err != nil {
		return err
	}

	var colType string
	err := b.db.QueryRowContext(ctx,
		"SELECT column_type FROM grid_columns WHERE column_id = ? AND table_id = ?",
		columnID, tableID).Scan(&colType)
	if err == sql.ErrNoRows {
		return types.ErrColumnNotFound
	}
	if err != nil {
		return fmt.Errorf("checking column: %w", err)
	}

	baseName := "gr_" + indexNamePart(tableID) + "_" + indexNamePart(columnID)
	scope := " WHERE table_id = '" + escapeLiteral(tableID) + "'"

	var ddl []string
	if colType == types.ColumnText {
		ddl = []string{
			`CREATE INDEX IF NOT EXISTS "` + baseName + `_t_b" ON grid_rows (` +
				cellTextExpr(columnID) + `)` + scope + `;`,
			`CREATE INDEX IF NOT EXISTS "` + baseName + `_t_l" ON grid_rows (lower(` +
				cellTextExpr(columnID) + `))` + scope + `;`,
		}
	} else {
		ddl = []string{
			`CREATE INDEX IF NOT EXISTS "` + baseName + `_n_b" ON grid_rows (` +
				cellNumberExpr(columnID) + `)` + scope + `;`,
		}
	}

	for _, stmt := range ddl {
		if _, err := b.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating index: %w", err)
		}
	}
	return nil
}

// indexNamePart shortens an entity ID for use in an index name.
func indexNamePart(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
