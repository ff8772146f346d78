package sqlite

import (
	"database/sql/driver"
	"strconv"
	"strings"

	sqlite3 "modernc.org/sqlite"
)

// cell_number coerces a cell value to a float for numeric filtering,
// sorting, and expression indexes. Empty and unparsable values become
// NULL so they compare as absent, and the same expression appears
// bit-for-bit in both the ORDER BY and the keyset cursor predicate.
//
// Registered as deterministic so SQLite accepts it inside expression
// indexes; registration happens once per process, before any connection
// is opened.
func init() {
	sqlite3.MustRegisterDeterministicScalarFunction("cell_number", 1, cellNumber)
}

func cellNumber(_ *sqlite3.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		return parseCellFloat(v)
	case []byte:
		return parseCellFloat(string(v))
	default:
		return nil, nil
	}
}

func parseCellFloat(s string) (driver.Value, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, nil
	}
	return f, nil
}
