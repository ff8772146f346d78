// Unit tests for the index advisor's dedup and failure semantics.
package grid

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdvisorDeduplicates(t *testing.T) {
	store := &fakeStore{}
	a := NewAdvisor(store)

	a.Ensure("tbl-1", "col-a")
	a.Ensure("tbl-1", "col-a")
	a.Ensure("tbl-1", "col-b")
	a.Ensure("tbl-2", "col-a")
	a.Wait()

	assert.ElementsMatch(t,
		[]string{"tbl-1/col-a", "tbl-1/col-b", "tbl-2/col-a"},
		store.ensureCalls())
}

func TestAdvisorFailureConsumesKey(t *testing.T) {
	store := &fakeStore{}
	store.ensureFn = func(context.Context, string, string) error {
		return errors.New("locked")
	}
	a := NewAdvisor(store)

	a.Ensure("tbl-1", "col-a")
	a.Wait()
	// A failed attempt is not retried within the advisor's lifetime.
	a.Ensure("tbl-1", "col-a")
	a.Wait()

	assert.Len(t, store.ensureCalls(), 1)
}

func TestAdvisorReset(t *testing.T) {
	store := &fakeStore{}
	a := NewAdvisor(store)

	a.Ensure("tbl-1", "col-a")
	a.Wait()
	a.Reset()
	a.Ensure("tbl-1", "col-a")
	a.Wait()

	assert.Len(t, store.ensureCalls(), 2)
}
