package grid

import (
	"context"
	"sync"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// CellKey addresses one cell of the grid.
type CellKey struct {
	RowID    string
	ColumnID string
}

// Session holds the live query state of one table grid: the view
// configuration and its fingerprint, the loaded page window, and the
// cell selection. Any change to search, filters, sort, or hidden columns
// recomputes the fingerprint, resets pagination and selection, and
// cancels the in-flight page load so a stale response can never
// overwrite state from a newer configuration.
type Session struct {
	mu      sync.Mutex
	store   types.Store
	advisor *Advisor
	tableID string

	initialized  bool
	activeViewID string

	config           types.ViewConfig
	fingerprint      string
	savedFingerprint string

	activeCell  *CellKey
	editingCell *CellKey
	editorValue string

	pages      []types.RowPage
	nextCursor *types.Cursor
	totalCount int64
	exhausted  bool

	generation uint64
	cancel     context.CancelFunc
}

// NewSession creates a session for one table. The advisor may be nil to
// disable index advisory (tests mostly run without it).
func NewSession(store types.Store, advisor *Advisor, tableID string) *Session {
	cfg := types.DefaultViewConfig()
	fp := cfg.Fingerprint()
	return &Session{
		store:            store,
		advisor:          advisor,
		tableID:          tableID,
		config:           cfg,
		fingerprint:      fp,
		savedFingerprint: fp,
	}
}

// InitFromView adopts a saved view's configuration as both the live and
// the saved state, clearing selection and pagination.
func (s *Session) InitFromView(viewID string, cfg types.ViewConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fp := cfg.Fingerprint()
	s.initialized = true
	s.activeViewID = viewID
	s.config = cfg
	s.fingerprint = fp
	s.savedFingerprint = fp
	s.resetLocked()
	s.ensureSortIndexesLocked()
}

// Config returns a copy of the live view configuration.
func (s *Session) Config() types.ViewConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// ActiveViewID returns the view the session was initialized from.
func (s *Session) ActiveViewID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeViewID
}

// Fingerprint returns the fingerprint of the live configuration.
func (s *Session) Fingerprint() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprint
}

// Dirty reports whether the live configuration differs from the last
// saved one. Fingerprint comparison is the sole mechanism: permuting
// filters or hidden columns does not dirty the view.
func (s *Session) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fingerprint != s.savedFingerprint
}

// MarkSaved records the live configuration as saved.
func (s *Session) MarkSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.savedFingerprint = s.fingerprint
}

// SetSearch replaces the search string. Callers typing interactively
// should feed this through a Debouncer.
func (s *Session) SetSearch(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.config.Search == v {
		return
	}
	s.config.Search = v
	s.configChangedLocked()
}

// SetFilters replaces the filter list.
func (s *Session) SetFilters(filters []types.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Filters = filters
	s.configChangedLocked()
}

// SetSort replaces the sort spec and nudges the index advisor for the
// newly sort-active column.
func (s *Session) SetSort(sort *types.Sort) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.Sort = sort
	s.configChangedLocked()
	s.ensureSortIndexesLocked()
}

// ToggleHiddenColumn flips one column's visibility.
func (s *Session) ToggleHiddenColumn(columnID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hidden := make([]string, 0, len(s.config.HiddenColumnIDs)+1)
	found := false
	for _, id := range s.config.HiddenColumnIDs {
		if id == columnID {
			found = true
			continue
		}
		hidden = append(hidden, id)
	}
	if !found {
		hidden = append(hidden, columnID)
	}
	s.config.HiddenColumnIDs = hidden
	s.configChangedLocked()
}

// SetHiddenColumnIDs replaces the hidden column set.
func (s *Session) SetHiddenColumnIDs(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config.HiddenColumnIDs = ids
	s.configChangedLocked()
}

// SetActiveCell moves the cell selection.
func (s *Session) SetActiveCell(cell *CellKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeCell = cell
}

// StartEditing begins an edit of the given cell with an initial editor
// value.
func (s *Session) StartEditing(cell CellKey, initial string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingCell = &cell
	s.editorValue = initial
}

// EditorValue returns the in-progress editor content.
func (s *Session) EditorValue() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editorValue
}

// SetEditorValue updates the in-progress editor content.
func (s *Session) SetEditorValue(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editorValue = v
}

// StopEditing abandons the in-progress edit.
func (s *Session) StopEditing() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingCell = nil
	s.editorValue = ""
}

// ActiveCell returns the current selection, nil when none.
func (s *Session) ActiveCell() *CellKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeCell
}

// Rows returns the loaded page window flattened in traversal order.
func (s *Session) Rows() []types.Row {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []types.Row
	for _, p := range s.pages {
		out = append(out, p.Items...)
	}
	return out
}

// TotalCount returns the match count reported by the latest page.
func (s *Session) TotalCount() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalCount
}

// HasNextPage reports whether another page can be loaded.
func (s *Session) HasNextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.exhausted
}

// LoadNextPage fetches the next page for the current configuration and
// appends it to the window. A page that arrives after the configuration
// changed is discarded: the session captures its generation before
// issuing the query and ignores the response on mismatch.
func (s *Session) LoadNextPage(ctx context.Context, limit int) error {
	s.mu.Lock()
	if s.exhausted {
		s.mu.Unlock()
		return nil
	}
	gen := s.generation
	cursor := s.nextCursor
	cfg := s.config

	qctx, cancel := context.WithCancel(ctx)
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	page, err := s.store.QueryRows(qctx, types.RowQuery{
		TableID: s.tableID,
		Limit:   limit,
		Cursor:  cursor,
		Search:  cfg.Search,
		Filters: cfg.Filters,
		Sort:    cfg.Sort,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		// Superseded by a configuration change; drop the response.
		return nil
	}
	if err != nil {
		return err
	}

	s.pages = append(s.pages, *page)
	s.nextCursor = page.NextCursor
	s.totalCount = page.TotalCount
	s.exhausted = page.NextCursor == nil
	return nil
}

// configChangedLocked recomputes the fingerprint and resets everything a
// cursor or selection could be stale against.
func (s *Session) configChangedLocked() {
	s.fingerprint = s.config.Fingerprint()
	s.resetLocked()
}

// resetLocked clears pagination and selection state and invalidates any
// in-flight query. The caller must hold s.mu.
func (s *Session) resetLocked() {
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.pages = nil
	s.nextCursor = nil
	s.totalCount = 0
	s.exhausted = false
	s.activeCell = nil
	s.editingCell = nil
	s.editorValue = ""
}

// ensureSortIndexesLocked kicks the advisor for the sort-active column.
func (s *Session) ensureSortIndexesLocked() {
	if s.advisor == nil || s.config.Sort == nil {
		return
	}
	s.advisor.Ensure(s.tableID, s.config.Sort.ColumnID)
}
