package grid

import (
	"context"
	"log"
	"sync"

	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// Advisor issues on-demand secondary-index creation for columns the
// moment they become sort-active or filter-active. Deduplication is two
// layered: this per-session set keeps repeat requests off the wire, and
// the store's create-if-not-exists makes concurrent sessions race-safe.
//
// Ensure is fire-and-forget: a failure degrades query performance, never
// correctness, so it is logged and swallowed and the dedup key stays
// consumed (no automatic retry within the session). The set is owned by
// the advisor, not hidden module state, so tests can construct and reset
// their own.
type Advisor struct {
	mu      sync.Mutex
	store   types.Store
	ensured map[string]struct{}
	wg      sync.WaitGroup
}

// NewAdvisor creates an advisor with an empty dedup set.
func NewAdvisor(store types.Store) *Advisor {
	return &Advisor{
		store:   store,
		ensured: make(map[string]struct{}),
	}
}

// Ensure requests indexes for a column, once per (table, column) per
// advisor lifetime. Returns immediately; creation runs in the
// background off the query critical path.
func (a *Advisor) Ensure(tableID, columnID string) {
	key := tableID + "/" + columnID

	a.mu.Lock()
	if _, done := a.ensured[key]; done {
		a.mu.Unlock()
		return
	}
	a.ensured[key] = struct{}{}
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if err := a.store.EnsureColumnIndexes(context.Background(), tableID, columnID); err != nil {
			log.Printf("grid: ensure indexes for column %s: %v", columnID, err)
		}
	}()
}

// Reset clears the dedup set.
func (a *Advisor) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensured = make(map[string]struct{})
}

// Wait blocks until all in-flight ensure calls finish. Test hook.
func (a *Advisor) Wait() {
	a.wg.Wait()
}
