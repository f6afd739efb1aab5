package paging

import (
	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/query"
)

// offsetSort appends an ascending id tiebreaker to sort.
func offsetSort(sort query.SortMask, idField string) query.SortMask {
	out := append(query.SortMask(nil), sort...)
	if _, ok := out.Get(idField); !ok {
		out = append(out, query.SortField{Path: idField, Order: 1})
	}
	return out
}

// scanSort returns the order records are read in. A reverse cursor reads
// every field, the tiebreaker included, against its requested direction.
func scanSort(sort query.SortMask, c *cursor.Cursor, idField string) query.SortMask {
	reverse := c != nil && c.Reverse
	out := make(query.SortMask, 0, len(sort)+1)
	for _, f := range sort {
		order := f.Order
		if reverse {
			order = -order
		}
		out = append(out, query.SortField{Path: f.Path, Order: order})
	}
	if _, ok := out.Get(idField); !ok {
		order := 1
		if reverse {
			order = -1
		}
		out = append(out, query.SortField{Path: idField, Order: order})
	}
	return out
}

// seekCondition matches the records strictly after c in scan order.
//
// For sort fields f1..fn it is the lexicographic disjunction
//
//	f1 > v1
//	OR (f1 == v1 AND f2 > v2)
//	...
//	OR (f1 == v1 AND ... AND fn == vn AND id > c.ID)
//
// where each ">" follows the field's effective order stored in c, and the
// id comparison is "<" for a reverse cursor. An empty cursor matches all.
func seekCondition(sort query.SortMask, c *cursor.Cursor, idField string) query.Condition {
	if c.IsEmpty() {
		return query.Condition{}
	}

	var (
		disjuncts []query.Condition
		equal     []query.Condition
	)
	for _, k := range sort {
		if k.Path == idField {
			break
		}
		f, ok := c.Field(k.Path)
		if !ok {
			continue
		}
		cmp := query.Leaf(f.Path, successor(f.Order), f.Value)
		disjuncts = append(disjuncts, query.All(append(append([]query.Condition(nil), equal...), cmp)...))
		equal = append(equal, query.Leaf(f.Path, query.OpEq, f.Value))
	}

	idOrder := 1
	if o, ok := sort.Get(idField); ok && o < 0 {
		idOrder = -1
	}
	if c.Reverse {
		idOrder = -idOrder
	}
	tie := query.Leaf(idField, successor(idOrder), c.ID)
	disjuncts = append(disjuncts, query.All(append(equal, tie)...))
	return query.Any(disjuncts...)
}

func successor(order int) query.Operator {
	if order < 0 {
		return query.OpLt
	}
	return query.OpGt
}
