package query

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/ncobase/geocontent/cursor"
)

// Operator is a filter comparison operator.
type Operator string

const (
	OpEq     Operator = "eq"
	OpNe     Operator = "ne"
	OpGt     Operator = "gt"
	OpGte    Operator = "gte"
	OpLt     Operator = "lt"
	OpLte    Operator = "lte"
	OpIn     Operator = "in"
	OpNin    Operator = "nin"
	OpExists Operator = "exists"
)

// Valid reports whether o is a supported operator.
func (o Operator) Valid() bool {
	switch o {
	case OpEq, OpNe, OpGt, OpGte, OpLt, OpLte, OpIn, OpNin, OpExists:
		return true
	}
	return false
}

// FieldMask maps a dotted field path to inclusion (1) or exclusion (0).
type FieldMask map[string]int

// Clone returns a copy of m.
func (m FieldMask) Clone() FieldMask {
	if m == nil {
		return nil
	}
	out := make(FieldMask, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// With returns a copy of m with path set to v.
func (m FieldMask) With(path string, v int) FieldMask {
	out := m.Clone()
	if out == nil {
		out = FieldMask{}
	}
	out[path] = v
	return out
}

// Without returns a copy of m without path.
func (m FieldMask) Without(path string) FieldMask {
	out := m.Clone()
	delete(out, path)
	return out
}

// Merge returns the union of m and other; other wins on conflicts.
func (m FieldMask) Merge(other FieldMask) FieldMask {
	out := m.Clone()
	for k, v := range other {
		if out == nil {
			out = FieldMask{}
		}
		out[k] = v
	}
	return out
}

// Paths returns the paths of m in lexical order.
func (m FieldMask) Paths() []string {
	paths := make([]string, 0, len(m))
	for k := range m {
		paths = append(paths, k)
	}
	sort.Strings(paths)
	return paths
}

// SortField is one ordered sort entry; Order is 1 (ascending) or -1.
type SortField = cursor.Key

// SortMask is an ordered field mask for sorting.
type SortMask []SortField

// Get returns the order of path.
func (s SortMask) Get(path string) (int, bool) {
	for _, f := range s {
		if f.Path == path {
			return f.Order, true
		}
	}
	return 0, false
}

// With returns a copy of s with path set to order, keeping its position
// when already present.
func (s SortMask) With(path string, order int) SortMask {
	out := make(SortMask, 0, len(s)+1)
	found := false
	for _, f := range s {
		if f.Path == path {
			f.Order = order
			found = true
		}
		out = append(out, f)
	}
	if !found {
		out = append(out, SortField{Path: path, Order: order})
	}
	return out
}

// Without returns a copy of s without path.
func (s SortMask) Without(path string) SortMask {
	var out SortMask
	for _, f := range s {
		if f.Path != path {
			out = append(out, f)
		}
	}
	return out
}

// Merge appends the entries of other, overriding orders of shared paths.
func (s SortMask) Merge(other SortMask) SortMask {
	out := append(SortMask(nil), s...)
	for _, f := range other {
		out = out.With(f.Path, f.Order)
	}
	return out
}

// Keys returns s as cursor keys.
func (s SortMask) Keys() []cursor.Key {
	return []cursor.Key(s)
}

// MarshalJSON writes s as an object preserving order.
func (s SortMask) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(f.Path)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(f.Order))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FilterClause is a single key/operator/value predicate. Value is a string,
// a []string for in/nin, or a bool for exists; predefined clauses may carry
// any value.
type FilterClause struct {
	Key   string   `json:"key"`
	Op    Operator `json:"op"`
	Value any      `json:"value"`
}

// IsWildcard reports whether c is addressed to every population branch.
func (c FilterClause) IsWildcard() bool {
	return strings.HasPrefix(c.Key, wildcard)
}

// IsEmpty reports whether c carries a nil or empty value.
func (c FilterClause) IsEmpty() bool {
	return isEmptyValue(c.Value)
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x) == ""
	case []string:
		return len(x) == 0
	case []any:
		return len(x) == 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// FilterTree is the conjunction of its clauses.
type FilterTree []FilterClause

// Map returns the nested key/operator view of t, e.g. {age: {gte: "5"}}.
// Later clauses win for a repeated key and operator.
func (t FilterTree) Map() map[string]map[Operator]any {
	out := make(map[string]map[Operator]any, len(t))
	for _, c := range t {
		ops, ok := out[c.Key]
		if !ok {
			ops = map[Operator]any{}
			out[c.Key] = ops
		}
		ops[c.Op] = c.Value
	}
	return out
}

// Contains reports whether t holds a clause equal to c.
func (t FilterTree) Contains(c FilterClause) bool {
	for _, x := range t {
		if x.Key == c.Key && x.Op == c.Op && reflect.DeepEqual(x.Value, c.Value) {
			return true
		}
	}
	return false
}

// Append returns t with the clauses of other that t does not already hold.
func (t FilterTree) Append(other ...FilterClause) FilterTree {
	out := append(FilterTree(nil), t...)
	for _, c := range other {
		if !out.Contains(c) {
			out = append(out, c)
		}
	}
	return out
}

// Condition returns the conjunction of the clauses of t.
func (t FilterTree) Condition() Condition {
	conds := make([]Condition, 0, len(t))
	for _, c := range t {
		conds = append(conds, Leaf(c.Key, c.Op, c.Value))
	}
	return All(conds...)
}

// MarshalJSON writes the Map view of t.
func (t FilterTree) MarshalJSON() ([]byte, error) {
	if t == nil {
		return []byte("null"), nil
	}
	return json.Marshal(t.Map())
}

// PopulationNode is a relation to join, with relation-local directives.
type PopulationNode struct {
	Path     string           `json:"path"`
	Select   FieldMask        `json:"select,omitempty"`
	Sort     SortMask         `json:"sort,omitempty"`
	Filter   FilterTree       `json:"filter,omitempty"`
	Children []PopulationNode `json:"populate,omitempty"`
}

// Clone returns a deep copy of n.
func (n PopulationNode) Clone() PopulationNode {
	out := PopulationNode{
		Path:   n.Path,
		Select: n.Select.Clone(),
		Sort:   append(SortMask(nil), n.Sort...),
		Filter: append(FilterTree(nil), n.Filter...),
	}
	if n.Children != nil {
		out.Children = clonePopulation(n.Children)
	}
	return out
}

func clonePopulation(nodes []PopulationNode) []PopulationNode {
	if nodes == nil {
		return nil
	}
	out := make([]PopulationNode, len(nodes))
	for i, n := range nodes {
		out[i] = n.Clone()
	}
	return out
}

// Options is the compiled, store-agnostic list query.
//
// Skip is a 1-based page number. Skip/Limit and Cursor are always both
// populated; Cursor, when non-nil, governs pagination.
type Options struct {
	Select   FieldMask        `json:"select,omitempty"`
	Populate []PopulationNode `json:"populate,omitempty"`
	Sort     SortMask         `json:"sort,omitempty"`
	Filter   FilterTree       `json:"filter,omitempty"`
	Search   string           `json:"search,omitempty"`
	Limit    int              `json:"limit"`
	Skip     int              `json:"skip"`
	Cursor   *cursor.Cursor   `json:"cursor,omitempty"`
}

// Offset returns the number of records to skip in offset mode.
func (o Options) Offset() int {
	if o.Skip <= 1 {
		return 0
	}
	return (o.Skip - 1) * o.Limit
}

// CursorMode reports whether the cursor governs pagination.
func (o Options) CursorMode() bool {
	return o.Cursor != nil
}

// Clone returns a deep copy of o. The cursor is shared; it is never mutated.
func (o Options) Clone() Options {
	out := o
	out.Select = o.Select.Clone()
	out.Sort = append(SortMask(nil), o.Sort...)
	out.Filter = append(FilterTree(nil), o.Filter...)
	out.Populate = clonePopulation(o.Populate)
	return out
}
