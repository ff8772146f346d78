package types

import (
	"fmt"
	"strconv"
)

// Filter operators. is_empty and is_not_empty are type-agnostic and carry
// no value; contains, not_contains, and equals carry a string value;
// gt and lt carry a numeric value.
const (
	OpIsEmpty     = "is_empty"
	OpIsNotEmpty  = "is_not_empty"
	OpContains    = "contains"
	OpNotContains = "not_contains"
	OpEquals      = "equals"
	OpGreaterThan = "gt"
	OpLessThan    = "lt"
)

// Filter is a predicate over a single column. All filters in a query are
// conjunctive. The referenced column must belong to the queried table.
type Filter struct {
	ColumnID string `json:"columnId"`
	Op       string `json:"op"`
	Value    any    `json:"value,omitempty"`
}

// Validate checks the filter shape: a known operator, a non-empty column
// reference, and a value of the type the operator requires.
// Returns ErrInvalidFilter (wrapped with detail) on failure.
func (f Filter) Validate() error {
	if f.ColumnID == "" {
		return fmt.Errorf("%w: missing columnId", ErrInvalidFilter)
	}
	switch f.Op {
	case OpIsEmpty, OpIsNotEmpty:
		if f.Value != nil {
			return fmt.Errorf("%w: %s takes no value", ErrInvalidFilter, f.Op)
		}
		return nil
	case OpContains, OpNotContains, OpEquals:
		if _, ok := f.Value.(string); !ok {
			return fmt.Errorf("%w: %s requires a string value", ErrInvalidFilter, f.Op)
		}
		return nil
	case OpGreaterThan, OpLessThan:
		if _, ok := NumberValue(f.Value); !ok {
			return fmt.Errorf("%w: %s requires a numeric value", ErrInvalidFilter, f.Op)
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidFilter, f.Op)
	}
}

// TextValue returns the filter's string value. Only meaningful for the
// contains, not_contains, and equals operators.
func (f Filter) TextValue() string {
	s, _ := f.Value.(string)
	return s
}

// Key derives the canonical ordering key used when fingerprinting a view
// configuration: columnId|op|value. Two filter lists that are permutations
// of each other produce the same sorted key sequence.
func (f Filter) Key() string {
	return f.ColumnID + "|" + f.Op + "|" + CellString(f.Value)
}

// NumberValue coerces a filter or cursor value to float64. JSON decoding
// yields float64 for numbers, but callers constructing filters in Go may
// pass any numeric type or a numeric string.
func NumberValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
