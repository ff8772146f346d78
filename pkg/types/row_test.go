// Unit tests for cell rendering and derived search text.
package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellString(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"string", "alice", "alice"},
		{"whole float", 5.0, "5"},
		{"fractional float", 19.99, "19.99"},
		{"int", 7, "7"},
		{"int64", int64(7), "7"},
		{"bool", true, "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellString(tt.in))
		})
	}
}

func TestSearchTextFor(t *testing.T) {
	t.Run("empty cells", func(t *testing.T) {
		assert.Equal(t, "", SearchTextFor(nil))
		assert.Equal(t, "", SearchTextFor(map[string]any{}))
	})

	t.Run("values join in column ID order", func(t *testing.T) {
		cells := map[string]any{
			"col-b": 19.5,
			"col-a": "alice",
		}
		assert.Equal(t, "alice 19.5", SearchTextFor(cells))
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		cells := map[string]any{"z": "1", "a": "2", "m": "3"}
		first := SearchTextFor(cells)
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, SearchTextFor(cells))
		}
	})
}
