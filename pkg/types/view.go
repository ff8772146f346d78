package types

import (
	"encoding/json"
	"sort"
	"time"
)

// View is a named, persisted snapshot of a table's query state.
// Views are mutable; comparing the fingerprint of a live configuration
// against the last-saved one is how callers detect unsaved changes.
type View struct {
	ViewID    string          `json:"id"`
	TableID   string          `json:"tableId"`
	Name      string          `json:"name"`
	Config    json.RawMessage `json:"config"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ViewConfig is the canonical shape of a saved view's query state.
type ViewConfig struct {
	Search          string   `json:"search"`
	Filters         []Filter `json:"filters"`
	Sort            *Sort    `json:"sort"`
	HiddenColumnIDs []string `json:"hiddenColumnIds"`
}

// DefaultViewConfig returns the well-defined default configuration:
// empty search, no filters, no sort, no hidden columns.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		Search:          "",
		Filters:         []Filter{},
		Sort:            nil,
		HiddenColumnIDs: []string{},
	}
}

// Validate checks every filter and the sort spec for shape errors.
func (c ViewConfig) Validate() error {
	for _, f := range c.Filters {
		if err := f.Validate(); err != nil {
			return err
		}
	}
	if c.Sort != nil {
		return c.Sort.Validate()
	}
	return nil
}

// NormalizeViewConfig validates an arbitrary persisted blob against the
// ViewConfig shape. On any validation failure it substitutes the default
// configuration rather than failing the read, so a corrupted view record
// never breaks the grid.
func NormalizeViewConfig(raw []byte) ViewConfig {
	var probe struct {
		Search          *string   `json:"search"`
		Filters         *[]Filter `json:"filters"`
		Sort            *Sort     `json:"sort"`
		HiddenColumnIDs *[]string `json:"hiddenColumnIds"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return DefaultViewConfig()
	}
	if probe.Search == nil || probe.Filters == nil || probe.HiddenColumnIDs == nil {
		return DefaultViewConfig()
	}
	cfg := ViewConfig{
		Search:          *probe.Search,
		Filters:         *probe.Filters,
		Sort:            probe.Sort,
		HiddenColumnIDs: *probe.HiddenColumnIDs,
	}
	if err := cfg.Validate(); err != nil {
		return DefaultViewConfig()
	}
	return cfg
}

// Fingerprint produces a deterministic digest of the configuration.
// Filters are ordered by their derived key and hidden-column IDs are
// ordered lexicographically before serialization, so two configurations
// that differ only in insertion order fingerprint identically, while any
// change to the search text, the sort spec, or the filter or
// hidden-column sets changes the result.
func (c ViewConfig) Fingerprint() string {
	filters := make([]Filter, len(c.Filters))
	copy(filters, c.Filters)
	sort.SliceStable(filters, func(i, j int) bool {
		return filters[i].Key() < filters[j].Key()
	})

	hidden := make([]string, len(c.HiddenColumnIDs))
	copy(hidden, c.HiddenColumnIDs)
	sort.Strings(hidden)

	canonical := ViewConfig{
		Search:          c.Search,
		Filters:         filters,
		Sort:            c.Sort,
		HiddenColumnIDs: hidden,
	}
	b, err := json.Marshal(canonical)
	if err != nil {
		// Marshaling a ViewConfig cannot fail; filters hold scalars only.
		return ""
	}
	return string(b)
}
