// Unit tests for the backend attach/detach lifecycle.
package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// setupBackend creates an attached Backend over a temp directory.
func setupBackend(t *testing.T) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	require.NoError(t, b.Attach(config))
	t.Cleanup(func() { b.Detach() })
	return b
}

func TestAttachDetachLifecycle(t *testing.T) {
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))

	t.Run("double attach fails", func(t *testing.T) {
		assert.ErrorIs(t, b.Attach(config), types.ErrAlreadyAttached)
	})

	t.Run("detach is idempotent", func(t *testing.T) {
		require.NoError(t, b.Detach())
		require.NoError(t, b.Detach())
	})

	t.Run("operations after detach fail", func(t *testing.T) {
		_, err := b.CreateTable(context.Background(), "orders")
		assert.ErrorIs(t, err, types.ErrStoreDetached)

		_, err = b.QueryRows(context.Background(), types.RowQuery{TableID: "t"})
		assert.ErrorIs(t, err, types.ErrStoreDetached)
	})
}

func TestAttachValidatesConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{
			name:    "empty backend",
			config:  types.Config{DataDir: t.TempDir()},
			wantErr: types.ErrBackendEmpty,
		},
		{
			name:    "unknown backend",
			config:  types.Config{Backend: "postgres", DataDir: t.TempDir()},
			wantErr: types.ErrBackendUnknown,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			assert.ErrorIs(t, b.Attach(tt.config), tt.wantErr)
		})
	}
}

func TestDataSurvivesReattach(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	config := types.Config{Backend: types.BackendSQLite, DataDir: dir}

	b := NewBackend()
	require.NoError(t, b.Attach(config))
	tbl, err := b.CreateTable(ctx, "inventory")
	require.NoError(t, err)
	_, err = b.AddRows(ctx, tbl.TableID, 3)
	require.NoError(t, err)
	require.NoError(t, b.Detach())

	b2 := NewBackend()
	require.NoError(t, b2.Attach(config))
	defer b2.Detach()

	got, err := b2.GetTable(ctx, tbl.TableID)
	require.NoError(t, err)
	assert.Equal(t, "inventory", got.Name)
	assert.Equal(t, int64(3), got.RowCount)
}
