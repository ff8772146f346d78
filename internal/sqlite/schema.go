// Package sqlite implements the SQLite storage backend for Gridbase.
// Rows are stored as schemaless JSON cell maps and queried through typed
// expressions compiled at request time.
package sqlite

// Schema DDL. The database file persists across attaches, so every
// statement is idempotent.
const (
	createTables = `CREATE TABLE IF NOT EXISTS grid_tables (
    table_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    next_row_index INTEGER NOT NULL DEFAULT 1,
    next_column_order INTEGER NOT NULL DEFAULT 0,
    row_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	createColumns = `CREATE TABLE IF NOT EXISTS grid_columns (
    column_id TEXT PRIMARY KEY,
    table_id TEXT NOT NULL,
    name TEXT NOT NULL,
    column_type TEXT NOT NULL,
    col_order INTEGER NOT NULL,
    FOREIGN KEY (table_id) REFERENCES grid_tables(table_id)
);`

	createRows = `CREATE TABLE IF NOT EXISTS grid_rows (
    row_id TEXT PRIMARY KEY,
    table_id TEXT NOT NULL,
    row_index INTEGER NOT NULL,
    cells TEXT NOT NULL DEFAULT '{}',
    search_text TEXT NOT NULL DEFAULT '',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (table_id) REFERENCES grid_tables(table_id)
);`

	createViews = `CREATE TABLE IF NOT EXISTS grid_views (
    view_id TEXT PRIMARY KEY,
    table_id TEXT NOT NULL,
    name TEXT NOT NULL,
    config TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL,
    FOREIGN KEY (table_id) REFERENCES grid_tables(table_id)
);`
)

// Index DDL for the access paths every query takes. The unique index on
// (table_id, row_index) also enforces that bulk inserts never collide on
// row indexes. Per-column secondary indexes are created on demand by
// EnsureColumnIndexes, not here.
const (
	idxRowsTableRowIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_grid_rows_table_row_index
    ON grid_rows(table_id, row_index);`
	idxColumnsTableOrder = `CREATE INDEX IF NOT EXISTS idx_grid_columns_table_order
    ON grid_columns(table_id, col_order);`
	idxViewsTableCreated = `CREATE INDEX IF NOT EXISTS idx_grid_views_table_created
    ON grid_views(table_id, created_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createTables,
	createColumns,
	createRows,
	createViews,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxRowsTableRowIndex,
	idxColumnsTableOrder,
	idxViewsTableCreated,
}
