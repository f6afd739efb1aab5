package query

// Condition is a store-agnostic boolean predicate tree.
//
// Exactly one of And, Or, Clause or Text is set on a non-zero condition.
// The zero Condition matches every record.
type Condition struct {
	And    []Condition   `json:"and,omitempty"`
	Or     []Condition   `json:"or,omitempty"`
	Clause *FilterClause `json:"clause,omitempty"`
	Text   string        `json:"text,omitempty"`
}

// IsZero reports whether c matches everything.
func (c Condition) IsZero() bool {
	return len(c.And) == 0 && len(c.Or) == 0 && c.Clause == nil && c.Text == ""
}

// Leaf returns a single-clause condition.
func Leaf(key string, op Operator, value any) Condition {
	return Condition{Clause: &FilterClause{Key: key, Op: op, Value: value}}
}

// TextSearch returns a free-text search condition.
func TextSearch(text string) Condition {
	return Condition{Text: text}
}

// All returns the conjunction of conds, dropping zero conditions and
// flattening nested conjunctions.
func All(conds ...Condition) Condition {
	var out []Condition
	for _, c := range conds {
		switch {
		case c.IsZero():
		case len(c.And) > 0:
			out = append(out, c.And...)
		default:
			out = append(out, c)
		}
	}
	switch len(out) {
	case 0:
		return Condition{}
	case 1:
		return out[0]
	}
	return Condition{And: out}
}

// Any returns the disjunction of conds. A zero operand matches every record,
// so it makes the whole disjunction zero.
func Any(conds ...Condition) Condition {
	out := make([]Condition, 0, len(conds))
	for _, c := range conds {
		if c.IsZero() {
			return Condition{}
		}
		out = append(out, c)
	}
	switch len(out) {
	case 0:
		return Condition{}
	case 1:
		return out[0]
	}
	return Condition{Or: out}
}
