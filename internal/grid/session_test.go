// Unit tests for session state: dirty tracking, pagination windows, and
// superseded query handling.
package grid

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

func TestSessionDirtyTracking(t *testing.T) {
	s := NewSession(&fakeStore{}, nil, "tbl-1")

	assert.False(t, s.Dirty())

	s.SetSearch("acme")
	assert.True(t, s.Dirty())

	s.MarkSaved()
	assert.False(t, s.Dirty())

	s.SetSearch("acme") // unchanged value is a no-op
	assert.False(t, s.Dirty())
}

func TestSessionDirtyIgnoresFilterOrder(t *testing.T) {
	s := NewSession(&fakeStore{}, nil, "tbl-1")
	a := types.Filter{ColumnID: "col-a", Op: types.OpContains, Value: "x"}
	b := types.Filter{ColumnID: "col-b", Op: types.OpIsEmpty}

	s.SetFilters([]types.Filter{a, b})
	s.MarkSaved()

	s.SetFilters([]types.Filter{b, a})
	assert.False(t, s.Dirty())

	s.SetFilters([]types.Filter{a})
	assert.True(t, s.Dirty())
}

func TestSessionInitFromView(t *testing.T) {
	store := &fakeStore{}
	advisor := NewAdvisor(store)
	s := NewSession(store, advisor, "tbl-1")

	cfg := types.DefaultViewConfig()
	cfg.Sort = &types.Sort{ColumnID: "col-a", Direction: types.SortAsc, Type: types.ColumnText}
	s.InitFromView("view-1", cfg)

	assert.Equal(t, "view-1", s.ActiveViewID())
	assert.False(t, s.Dirty())
	assert.Equal(t, cfg.Fingerprint(), s.Fingerprint())

	// Adopting a sorted view nudges the advisor for the sort column.
	advisor.Wait()
	assert.Equal(t, []string{"tbl-1/col-a"}, store.ensureCalls())
}

func TestSessionLoadNextPage(t *testing.T) {
	store := &fakeStore{}
	store.queryFn = func(_ context.Context, q types.RowQuery) (*types.RowPage, error) {
		if q.Cursor == nil {
			return pageOf(&types.Cursor{RowIndex: 2}, 3, "r1", "r2"), nil
		}
		return pageOf(nil, 3, "r3"), nil
	}
	s := NewSession(store, nil, "tbl-1")
	ctx := context.Background()

	require.NoError(t, s.LoadNextPage(ctx, 2))
	assert.Len(t, s.Rows(), 2)
	assert.Equal(t, int64(3), s.TotalCount())
	assert.True(t, s.HasNextPage())

	require.NoError(t, s.LoadNextPage(ctx, 2))
	rows := s.Rows()
	require.Len(t, rows, 3)
	assert.Equal(t, "r3", rows[2].RowID)
	assert.False(t, s.HasNextPage())

	// Exhausted: no further store calls.
	before := store.queryCount()
	require.NoError(t, s.LoadNextPage(ctx, 2))
	assert.Equal(t, before, store.queryCount())

	// The second request carried the first page's cursor.
	assert.Nil(t, store.queries[0].Cursor)
	require.NotNil(t, store.queries[1].Cursor)
	assert.Equal(t, int64(2), store.queries[1].Cursor.RowIndex)
}

func TestSessionConfigChangeResetsWindow(t *testing.T) {
	store := &fakeStore{}
	store.queryFn = func(context.Context, types.RowQuery) (*types.RowPage, error) {
		return pageOf(nil, 2, "r1", "r2"), nil
	}
	s := NewSession(store, nil, "tbl-1")
	require.NoError(t, s.LoadNextPage(context.Background(), 10))
	require.Len(t, s.Rows(), 2)
	s.SetActiveCell(&CellKey{RowID: "r1", ColumnID: "col-a"})

	s.SetFilters([]types.Filter{{ColumnID: "col-a", Op: types.OpIsEmpty}})

	assert.Empty(t, s.Rows())
	assert.Equal(t, int64(0), s.TotalCount())
	assert.True(t, s.HasNextPage())
	assert.Nil(t, s.ActiveCell())
}

func TestSessionSupersededPageIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	store := &fakeStore{}
	store.queryFn = func(ctx context.Context, q types.RowQuery) (*types.RowPage, error) {
		close(started)
		<-release
		return pageOf(nil, 2, "stale-1", "stale-2"), nil
	}
	s := NewSession(store, nil, "tbl-1")

	done := make(chan error, 1)
	go func() { done <- s.LoadNextPage(context.Background(), 10) }()

	<-started
	s.SetSearch("new search") // supersedes the in-flight load
	close(release)
	require.NoError(t, <-done)

	// The stale response must not populate the window.
	assert.Empty(t, s.Rows())
	assert.True(t, s.HasNextPage())
}

func TestSessionToggleHiddenColumn(t *testing.T) {
	s := NewSession(&fakeStore{}, nil, "tbl-1")

	s.ToggleHiddenColumn("col-a")
	assert.Equal(t, []string{"col-a"}, s.Config().HiddenColumnIDs)
	assert.True(t, s.Dirty())

	s.ToggleHiddenColumn("col-b")
	assert.ElementsMatch(t, []string{"col-a", "col-b"}, s.Config().HiddenColumnIDs)

	s.ToggleHiddenColumn("col-a")
	assert.Equal(t, []string{"col-b"}, s.Config().HiddenColumnIDs)
}

func TestSessionSetSortNudgesAdvisor(t *testing.T) {
	store := &fakeStore{}
	advisor := NewAdvisor(store)
	s := NewSession(store, advisor, "tbl-1")

	s.SetSort(&types.Sort{ColumnID: "col-a", Direction: types.SortDesc, Type: types.ColumnNumber})
	advisor.Wait()
	assert.Equal(t, []string{"tbl-1/col-a"}, store.ensureCalls())

	// Clearing the sort does not call the advisor.
	s.SetSort(nil)
	advisor.Wait()
	assert.Len(t, store.ensureCalls(), 1)
}

func TestSessionEditingState(t *testing.T) {
	s := NewSession(&fakeStore{}, nil, "tbl-1")

	s.StartEditing(CellKey{RowID: "r1", ColumnID: "col-a"}, "initial")
	assert.Equal(t, "initial", s.EditorValue())

	s.SetEditorValue("typed")
	assert.Equal(t, "typed", s.EditorValue())

	s.StopEditing()
	assert.Equal(t, "", s.EditorValue())
}
