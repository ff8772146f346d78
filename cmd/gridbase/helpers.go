// Shared helpers for gridbase CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mesh-intelligence/gridbase/internal/sqlite"
	"github.com/mesh-intelligence/gridbase/pkg/types"
)

// attachBackend resolves the data directory, creates a SQLite backend, and
// attaches it. The caller must defer backend.Detach(). Returns the attached
// backend or an error suitable for the CLI.
func attachBackend() (*sqlite.Backend, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: types.BackendSQLite,
		DataDir: dataDir,
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(cfg); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return backend, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// parseFilterSpec parses a --filter argument of the form
// column:op or column:op:value. The value is parsed as a number for the
// numeric operators and kept as a string otherwise.
func parseFilterSpec(spec string) (types.Filter, error) {
	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 {
		return types.Filter{}, fmt.Errorf("invalid filter %q (expected column:op[:value])", spec)
	}

	f := types.Filter{ColumnID: parts[0], Op: parts[1]}
	if len(parts) == 3 {
		switch f.Op {
		case types.OpGreaterThan, types.OpLessThan:
			n, err := strconv.ParseFloat(parts[2], 64)
			if err != nil {
				return types.Filter{}, fmt.Errorf("invalid filter %q: %s needs a numeric value", spec, f.Op)
			}
			f.Value = n
		default:
			f.Value = parts[2]
		}
	}

	if err := f.Validate(); err != nil {
		return types.Filter{}, fmt.Errorf("invalid filter %q: %w", spec, err)
	}
	return f, nil
}

// parseSortSpec parses a --sort argument of the form column:direction.
// The column type is resolved from the table's column list.
func parseSortSpec(spec string, columns []types.Column) (*types.Sort, error) {
	parts := strings.SplitN(spec, ":", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid sort %q (expected column:asc|desc)", spec)
	}

	s := &types.Sort{ColumnID: parts[0], Direction: parts[1]}
	for _, col := range columns {
		if col.ColumnID == s.ColumnID {
			s.Type = col.Type
			break
		}
	}
	if s.Type == "" {
		return nil, fmt.Errorf("invalid sort %q: unknown column %q", spec, s.ColumnID)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid sort %q: %w", spec, err)
	}
	return s, nil
}

// parseCursorSpec decodes a --cursor argument. Cursors round-trip through
// the CLI as the JSON the previous query page printed.
func parseCursorSpec(spec string) (*types.Cursor, error) {
	if spec == "" {
		return nil, nil
	}
	var c types.Cursor
	if err := json.Unmarshal([]byte(spec), &c); err != nil {
		return nil, fmt.Errorf("invalid cursor %q: %w", spec, err)
	}
	return &c, nil
}
