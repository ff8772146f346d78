// Unit tests for optimistic cell editing.
package grid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// loadedSession returns a session with one page of two empty rows.
func loadedSession(t *testing.T, store *fakeStore) *Session {
	t.Helper()
	store.mu.Lock()
	store.queryFn = func(context.Context, types.RowQuery) (*types.RowPage, error) {
		return pageOf(nil, 2, "r1", "r2"), nil
	}
	store.mu.Unlock()

	s := NewSession(store, nil, "tbl-1")
	require.NoError(t, s.LoadNextPage(context.Background(), 10))
	require.Len(t, s.Rows(), 2)
	return s
}

func TestEditCellPatchesWindow(t *testing.T) {
	store := &fakeStore{}
	store.updateFn = func(_ context.Context, u types.CellUpdate) (*types.RowSummary, error) {
		return &types.RowSummary{RowID: u.RowID, Cells: map[string]any{u.ColumnID: u.Value}}, nil
	}
	s := loadedSession(t, store)

	res, err := s.EditCell(context.Background(), CellKey{RowID: "r1", ColumnID: "col-a"}, "hello")
	require.NoError(t, err)
	assert.False(t, res.RefetchRequired)
	assert.Equal(t, "hello", res.Row.Cells["col-a"])

	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "hello", rows[0].Cells["col-a"])
	assert.Empty(t, rows[1].Cells)
}

func TestEditCellClearsValue(t *testing.T) {
	store := &fakeStore{}
	store.updateFn = func(_ context.Context, u types.CellUpdate) (*types.RowSummary, error) {
		return &types.RowSummary{RowID: u.RowID, Cells: map[string]any{}}, nil
	}
	s := loadedSession(t, store)

	_, err := s.EditCell(context.Background(), CellKey{RowID: "r1", ColumnID: "col-a"}, "x")
	require.NoError(t, err)
	_, err = s.EditCell(context.Background(), CellKey{RowID: "r1", ColumnID: "col-a"}, "")
	require.NoError(t, err)

	_, ok := s.Rows()[0].Cells["col-a"]
	assert.False(t, ok)
}

func TestEditCellRollsBackOnStoreError(t *testing.T) {
	boom := errors.New("disk full")
	store := &fakeStore{}
	store.updateFn = func(context.Context, types.CellUpdate) (*types.RowSummary, error) {
		return nil, boom
	}
	s := loadedSession(t, store)

	_, err := s.EditCell(context.Background(), CellKey{RowID: "r1", ColumnID: "col-a"}, "hello")
	require.ErrorIs(t, err, boom)

	// The optimistic patch must be gone.
	rows := s.Rows()
	require.Len(t, rows, 2)
	assert.Empty(t, rows[0].Cells)
}

func TestEditCellRefetchMatrix(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(s *Session)
		want    bool
	}{
		{"no active config", func(*Session) {}, false},
		{"search active", func(s *Session) { s.SetSearch("x") }, true},
		{"filter active", func(s *Session) {
			s.SetFilters([]types.Filter{{ColumnID: "col-a", Op: types.OpIsEmpty}})
		}, true},
		{"sort active", func(s *Session) {
			s.SetSort(&types.Sort{ColumnID: "col-a", Direction: types.SortAsc, Type: types.ColumnText})
		}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &fakeStore{}
			store.updateFn = func(_ context.Context, u types.CellUpdate) (*types.RowSummary, error) {
				return &types.RowSummary{RowID: u.RowID}, nil
			}
			s := loadedSession(t, store)
			tt.prepare(s)
			if tt.want {
				// The config change reset the window; load it again so the
				// edit has something to invalidate.
				require.NoError(t, s.LoadNextPage(context.Background(), 10))
			}

			res, err := s.EditCell(context.Background(), CellKey{RowID: "r1", ColumnID: "col-a"}, "v")
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.RefetchRequired)
			if tt.want {
				// Membership or order may have changed: the window resets.
				assert.Empty(t, s.Rows())
				assert.True(t, s.HasNextPage())
			} else {
				assert.Len(t, s.Rows(), 2)
			}
		})
	}
}
