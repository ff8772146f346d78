// fakeStore is a scriptable Store for session tests: only the operations
// the session calls are hookable, the rest fail loudly.
package grid

import (
	"context"
	"errors"
	"sync"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

type fakeStore struct {
	mu sync.Mutex

	queryFn  func(ctx context.Context, q types.RowQuery) (*types.RowPage, error)
	updateFn func(ctx context.Context, u types.CellUpdate) (*types.RowSummary, error)
	ensureFn func(ctx context.Context, tableID, columnID string) error

	queries []types.RowQuery
	ensures []string
}

var errUnexpectedCall = errors.New("unexpected store call")

func (f *fakeStore) QueryRows(ctx context.Context, q types.RowQuery) (*types.RowPage, error) {
	f.mu.Lock()
	f.queries = append(f.queries, q)
	fn := f.queryFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errUnexpectedCall
	}
	return fn(ctx, q)
}

func (f *fakeStore) UpdateCell(ctx context.Context, u types.CellUpdate) (*types.RowSummary, error) {
	f.mu.Lock()
	fn := f.updateFn
	f.mu.Unlock()
	if fn == nil {
		return nil, errUnexpectedCall
	}
	return fn(ctx, u)
}

func (f *fakeStore) EnsureColumnIndexes(ctx context.Context, tableID, columnID string) error {
	f.mu.Lock()
	f.ensures = append(f.ensures, tableID+"/"+columnID)
	fn := f.ensureFn
	f.mu.Unlock()
	if fn == nil {
		return nil
	}
	return fn(ctx, tableID, columnID)
}

func (f *fakeStore) ensureCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ensures...)
}

func (f *fakeStore) queryCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func (f *fakeStore) Attach(types.Config) error { return nil }
func (f *fakeStore) Detach() error             { return nil }

func (f *fakeStore) CreateTable(context.Context, string) (*types.Table, error) {
	return nil, errUnexpectedCall
}

func (f *fakeStore) GetTable(context.Context, string) (*types.Table, error) {
	return nil, errUnexpectedCall
}

func (f *fakeStore) CreateColumn(context.Context, string, string, string) (*types.Column, error) {
	return nil, errUnexpectedCall
}

func (f *fakeStore) ListColumns(context.Context, string) ([]types.Column, error) {
	return nil, errUnexpectedCall
}

func (f *fakeStore) AddRows(context.Context, string, int64) (*types.AddRowsResult, error) {
	return nil, errUnexpectedCall
}

func (f *fakeStore) ListViews(context.Context, string) ([]types.View, error) {
	return nil, errUnexpectedCall
}

func (f *fakeStore) CreateView(context.Context, string, string, types.ViewConfig) (*types.View, error) {
	return nil, errUnexpectedCall
}

func (f *fakeStore) UpdateView(context.Context, string, string, *types.ViewConfig) (*types.View, error) {
	return nil, errUnexpectedCall
}

// pageOf builds a RowPage with one row per ID, empty cells.
func pageOf(next *types.Cursor, total int64, rowIDs ...string) *types.RowPage {
	items := make([]types.Row, len(rowIDs))
	for i, id := range rowIDs {
		items[i] = types.Row{RowID: id, RowIndex: int64(i + 1), Cells: map[string]any{}}
	}
	return &types.RowPage{Items: items, NextCursor: next, TotalCount: total}
}
