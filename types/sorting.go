package types

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Order represents sorting direction.
type Order string

const (
	Ascending  Order = "asc"  // Ascending order
	Descending Order = "desc" // Descending order
)

// OrderOf maps a signed sort direction (1 / -1) to an Order.
func OrderOf(direction int) Order {
	if direction < 0 {
		return Descending
	}
	return Ascending
}

// Criterion represents a single sorting criterion.
type Criterion struct {
	Field string `json:"field"` // Field to sort by
	Order Order  `json:"order"` // Sort direction
}

// MultiCriteria supports multi-field sorting.
type MultiCriteria struct {
	Criteria []Criterion `json:"criteria"` // List of sorting criteria
}

// DynamicSorter sorts documents in place by the given criteria.
type DynamicSorter struct {
	Data   []JSON                                     // Dataset to be sorted
	Getter func(item JSON, field string) (any, error) // Field value getter
}

// Sort sorts the dataset based on the given MultiCriteria.
func (ds *DynamicSorter) Sort(criteria MultiCriteria) error {
	if ds.Getter == nil {
		return errors.New("getter function is not defined")
	}

	sort.SliceStable(ds.Data, func(i, j int) bool {
		for _, c := range criteria.Criteria {
			val1, err1 := ds.Getter(ds.Data[i], c.Field)
			val2, err2 := ds.Getter(ds.Data[j], c.Field)
			if err1 != nil || err2 != nil {
				continue
			}

			comparison := CompareValues(val1, val2)
			if c.Order == Descending {
				comparison = -comparison
			}

			if comparison != 0 {
				return comparison < 0
			}
		}
		return false
	})

	return nil
}

// CompareValues compares two values and returns -1, 0, or 1.
// Returns 0 if a == b or types are not comparable.
func CompareValues(a, b any) int {
	c, _ := Compare(a, b)
	return c
}

// Compare compares two values and reports whether they were comparable.
//
// Numbers of any width compare numerically, strings lexicographically.
// A string compared to a number, bool or time.Time is converted first.
func Compare(a, b any) (int, bool) {
	if a == nil || b == nil {
		return compareNil(a, b), true
	}

	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), true
		}
		c, ok := Compare(b, a)
		return -c, ok
	}

	switch av := a.(type) {
	case bool:
		var bv bool
		switch x := b.(type) {
		case bool:
			bv = x
		case string:
			parsed, err := strconv.ParseBool(x)
			if err != nil {
				return 0, false
			}
			bv = parsed
		default:
			return 0, false
		}
		return compareBool(av, bv), true
	case time.Time:
		var bv time.Time
		switch x := b.(type) {
		case time.Time:
			bv = x
		case string:
			parsed, err := cast.ToTimeE(x)
			if err != nil {
				return 0, false
			}
			bv = parsed
		default:
			return 0, false
		}
		return av.Compare(bv), true
	}

	af, ok := toFloat(a)
	if !ok {
		return 0, false
	}
	var bf float64
	if bs, isString := b.(string); isString {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(bs), 64)
		if err != nil {
			return 0, false
		}
		bf = parsed
	} else if bf, ok = toFloat(b); !ok {
		return 0, false
	}
	return CompareFloat(af, bf), true
}

// Equal reports whether a and b are comparable and equal.
func Equal(a, b any) bool {
	c, ok := Compare(a, b)
	return ok && c == 0
}

// CompareFloat compares two floats.
func CompareFloat(a, b float64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// CompareString compares two strings lexicographically.
func CompareString(a, b string) int {
	return strings.Compare(a, b)
}

func compareNil(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	default:
		return 1
	}
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		f, err := cast.ToFloat64E(n)
		return f, err == nil
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}
