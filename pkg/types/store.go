package types

import "context"

// Store defines the interface for backend-agnostic tabular storage.
// Callers attach to a backend, operate on tables, rows, columns, and
// views, and detach when done.
//
// All operations take a context so callers can cancel superseded
// requests; a cancelled query must not partially apply any write.
type Store interface {
	// Attach connects the Store to the backend described by config.
	// Creates the DataDir if it does not exist.
	// Returns ErrAlreadyAttached if called while already attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent: multiple calls
	// succeed. After Detach, operations return ErrStoreDetached.
	Detach() error

	// CreateTable creates an empty table with the given name.
	CreateTable(ctx context.Context, name string) (*Table, error)

	// GetTable returns the catalog record for a table.
	// Returns ErrTableNotFound if the table does not exist.
	GetTable(ctx context.Context, tableID string) (*Table, error)

	// CreateColumn appends a typed column to a table, assigning the next
	// dense order value. Type must be ColumnText or ColumnNumber.
	CreateColumn(ctx context.Context, tableID, name, columnType string) (*Column, error)

	// ListColumns returns a table's columns ordered by their order value.
	ListColumns(ctx context.Context, tableID string) ([]Column, error)

	// QueryRows serves one page of a searchable, filterable, sortable
	// row query. See RowQuery and RowPage for the contract.
	QueryRows(ctx context.Context, q RowQuery) (*RowPage, error)

	// AddRows bulk-generates count empty rows in one atomic transaction:
	// the table's row counters and the set-based insert commit together
	// or not at all, so concurrent calls never collide on row indexes.
	AddRows(ctx context.Context, tableID string, count int64) (*AddRowsResult, error)

	// UpdateCell applies a single-cell edit, recomputing the row's
	// search text and committing both atomically. A nil or empty-string
	// value deletes the cell.
	UpdateCell(ctx context.Context, u CellUpdate) (*RowSummary, error)

	// EnsureColumnIndexes creates the secondary indexes for a column if
	// they do not already exist. Idempotent and safe to call repeatedly,
	// including concurrently.
	EnsureColumnIndexes(ctx context.Context, tableID, columnID string) error

	// ListViews returns a table's views ordered by creation time.
	ListViews(ctx context.Context, tableID string) ([]View, error)

	// CreateView persists a new named view configuration.
	CreateView(ctx context.Context, tableID, name string, config ViewConfig) (*View, error)

	// UpdateView updates a view's name and/or configuration. Nil config
	// and empty name leave the respective field unchanged.
	UpdateView(ctx context.Context, viewID, name string, config *ViewConfig) (*View, error)
}
