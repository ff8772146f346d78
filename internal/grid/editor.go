package grid

import (
	"context"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// EditResult reports the outcome of an optimistic cell edit.
type EditResult struct {
	Row *types.RowSummary

	// RefetchRequired is set when the edit could have changed the row's
	// presence or position in the active view: whenever a non-empty
	// search, any filter, or any sort is active. The caller must then
	// treat the whole page window as stale rather than trust the local
	// patch, which this session does by resetting pagination.
	RefetchRequired bool
}

// EditCell applies a single-cell edit through the store with optimistic
// local patching: the cached page window is patched before the write is
// confirmed, the pre-edit snapshot kept, and on failure the snapshot is
// restored with the error returned untouched (compensating action, no
// retry).
func (s *Session) EditCell(ctx context.Context, key CellKey, value any) (*EditResult, error) {
	s.mu.Lock()
	snapshot := snapshotPages(s.pages)
	gen := s.generation
	s.patchRowLocked(key, value)
	cfg := s.config
	s.mu.Unlock()

	row, err := s.store.UpdateCell(ctx, types.CellUpdate{
		TableID:  s.tableID,
		RowID:    key.RowID,
		ColumnID: key.ColumnID,
		Value:    value,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if gen == s.generation {
			s.pages = snapshot
		}
		return nil, err
	}

	affects := cfg.Search != "" || len(cfg.Filters) > 0 || cfg.Sort != nil
	if affects && gen == s.generation {
		// Membership or order may have changed; the window is stale.
		s.resetLocked()
	}
	return &EditResult{Row: row, RefetchRequired: affects}, nil
}

// patchRowLocked applies the tentative cell delta to the cached pages.
// The caller must hold s.mu.
func (s *Session) patchRowLocked(key CellKey, value any) {
	for pi := range s.pages {
		items := s.pages[pi].Items
		for ri := range items {
			if items[ri].RowID != key.RowID {
				continue
			}
			cells := make(map[string]any, len(items[ri].Cells)+1)
			for k, v := range items[ri].Cells {
				cells[k] = v
			}
			if value == nil || value == "" {
				delete(cells, key.ColumnID)
			} else {
				cells[key.ColumnID] = value
			}
			items[ri].Cells = cells
			return
		}
	}
}

// snapshotPages deep-copies the page window down to the cell maps, so a
// rollback restores exactly the pre-edit state.
func snapshotPages(pages []types.RowPage) []types.RowPage {
	if pages == nil {
		return nil
	}
	out := make([]types.RowPage, len(pages))
	for pi, p := range pages {
		items := make([]types.Row, len(p.Items))
		for ri, r := range p.Items {
			cells := make(map[string]any, len(r.Cells))
			for k, v := range r.Cells {
				cells[k] = v
			}
			r.Cells = cells
			items[ri] = r
		}
		p.Items = items
		out[pi] = p
	}
	return out
}
