package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cast"

	"github.com/ncobase/geocontent/paging"
	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/types"
)

// Relation joins records of From whose ForeignField equals the LocalField
// of the parent record. Many relations populate a list, others the first
// match or nil.
type Relation struct {
	From         *Collection
	LocalField   string
	ForeignField string
	Many         bool
}

// Collection is an in-memory paging.Collection.
type Collection struct {
	mu        sync.RWMutex
	records   []types.JSON
	relations map[string]Relation
}

var _ paging.Collection = (*Collection)(nil)

// New creates a collection holding records.
func New(records ...types.JSON) *Collection {
	c := &Collection{relations: map[string]Relation{}}
	c.Insert(records...)
	return c
}

// Insert appends records.
func (c *Collection) Insert(records ...types.JSON) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.records = append(c.records, records...)
}

// Relate registers the relation populated at path.
func (c *Collection) Relate(path string, r Relation) *Collection {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.relations[path] = r
	return c
}

// Find returns the records matching q.
func (c *Collection) Find(ctx context.Context, q paging.FindQuery) ([]paging.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	matched := c.match(q.Where)
	if err := sortRecords(matched, q.Sort); err != nil {
		return nil, err
	}

	if q.Offset >= len(matched) {
		return []paging.Record{}, nil
	}
	matched = matched[q.Offset:]
	if q.Limit >= 0 && q.Limit < len(matched) {
		matched = matched[:q.Limit]
	}

	out := make([]paging.Record, 0, len(matched))
	for _, rec := range matched {
		doc := copyRecord(rec)
		if err := c.populate(ctx, doc, q.Populate); err != nil {
			return nil, err
		}
		out = append(out, project(doc, q.Select, q.Populate))
	}
	return out, nil
}

// Count returns the number of records matching where.
func (c *Collection) Count(ctx context.Context, where query.Condition) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(c.match(where))), nil
}

// Aggregate groups the records matching where by field. Array values count
// once per element.
func (c *Collection) Aggregate(ctx context.Context, where query.Condition, field string) ([]paging.Bucket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		out   []paging.Bucket
		index = map[string]int{}
	)
	add := func(v any) {
		key := fmt.Sprint(v)
		if i, ok := index[key]; ok {
			out[i].Count++
			return
		}
		index[key] = len(out)
		out = append(out, paging.Bucket{Value: v, Count: 1})
	}
	for _, rec := range c.match(where) {
		v, ok := types.Lookup(rec, field)
		if !ok {
			continue
		}
		if list, isList := v.([]any); isList {
			for _, item := range list {
				add(item)
			}
			continue
		}
		add(v)
	}
	return out, nil
}

func (c *Collection) match(where query.Condition) []types.JSON {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []types.JSON
	for _, rec := range c.records {
		if Match(where, rec) {
			out = append(out, rec)
		}
	}
	return out
}

func (c *Collection) populate(ctx context.Context, doc types.JSON, nodes []query.PopulationNode) error {
	for _, n := range nodes {
		c.mu.RLock()
		rel, ok := c.relations[n.Path]
		c.mu.RUnlock()
		if !ok || rel.From == nil {
			continue
		}

		local, ok := types.Lookup(doc, rel.LocalField)
		if !ok {
			continue
		}
		where := query.All(query.Leaf(rel.ForeignField, query.OpIn, anyList(local)), n.Filter.Condition())
		joined, err := rel.From.Find(ctx, paging.FindQuery{
			Where:    where,
			Select:   n.Select,
			Sort:     n.Sort,
			Populate: n.Children,
			Limit:    -1,
		})
		if err != nil {
			return err
		}

		if rel.Many {
			list := make([]any, 0, len(joined))
			for _, j := range joined {
				list = append(list, map[string]any(j))
			}
			doc[n.Path] = list
		} else if len(joined) > 0 {
			doc[n.Path] = map[string]any(joined[0])
		} else {
			doc[n.Path] = nil
		}
	}
	return nil
}

// Match reports whether rec satisfies cond.
func Match(cond query.Condition, rec types.JSON) bool {
	switch {
	case len(cond.And) > 0:
		for _, c := range cond.And {
			if !Match(c, rec) {
				return false
			}
		}
		return true
	case len(cond.Or) > 0:
		for _, c := range cond.Or {
			if Match(c, rec) {
				return true
			}
		}
		return false
	case cond.Clause != nil:
		return matchClause(*cond.Clause, rec)
	case cond.Text != "":
		return matchText(cond.Text, rec)
	}
	return true
}

func matchClause(c query.FilterClause, rec types.JSON) bool {
	v, ok := types.Lookup(rec, c.Key)
	switch c.Op {
	case query.OpEq:
		return ok && equal(v, c.Value)
	case query.OpNe:
		return !ok || !equal(v, c.Value)
	case query.OpIn:
		return ok && inList(v, c.Value)
	case query.OpNin:
		return !ok || !inList(v, c.Value)
	case query.OpExists:
		return (ok && v != nil) == cast.ToBool(c.Value)
	}
	if !ok {
		return false
	}
	cmp, comparable := types.Compare(v, c.Value)
	if !comparable {
		return false
	}
	switch c.Op {
	case query.OpGt:
		return cmp > 0
	case query.OpGte:
		return cmp >= 0
	case query.OpLt:
		return cmp < 0
	case query.OpLte:
		return cmp <= 0
	}
	return false
}

// equal matches an array field when any element equals want.
func equal(v, want any) bool {
	if list, ok := v.([]any); ok {
		for _, item := range list {
			if types.Equal(item, want) {
				return true
			}
		}
		return false
	}
	return types.Equal(v, want)
}

func inList(v, list any) bool {
	for _, want := range anyList(list) {
		if equal(v, want) {
			return true
		}
	}
	return false
}

func anyList(v any) []any {
	switch x := v.(type) {
	case []any:
		return x
	case []string:
		out := make([]any, len(x))
		for i, s := range x {
			out[i] = s
		}
		return out
	}
	return []any{v}
}

func matchText(text string, rec types.JSON) bool {
	needle := strings.ToLower(text)
	for _, v := range rec {
		if s, ok := v.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func sortRecords(records []types.JSON, sort query.SortMask) error {
	if len(sort) == 0 {
		return nil
	}
	criteria := make([]types.Criterion, 0, len(sort))
	for _, f := range sort {
		criteria = append(criteria, types.Criterion{Field: f.Path, Order: types.OrderOf(f.Order)})
	}
	sorter := &types.DynamicSorter{
		Data: records,
		Getter: func(item types.JSON, field string) (any, error) {
			v, _ := types.Lookup(item, field)
			return v, nil
		},
	}
	return sorter.Sort(types.MultiCriteria{Criteria: criteria})
}

// project applies an inclusion or exclusion mask to top-level and dotted
// fields. An inclusion mask keeps the id and the populated relations.
func project(doc types.JSON, mask query.FieldMask, populated []query.PopulationNode) types.JSON {
	if len(mask) == 0 {
		return doc
	}
	include := false
	for _, v := range mask {
		if v == 1 {
			include = true
			break
		}
	}

	if !include {
		for path := range mask {
			removePath(doc, path)
		}
		return doc
	}

	out := types.JSON{}
	if id, ok := doc[paging.DefaultIDField]; ok {
		out[paging.DefaultIDField] = id
	}
	for _, n := range populated {
		if v, ok := doc[n.Path]; ok {
			out[n.Path] = v
		}
	}
	for path, v := range mask {
		if v != 1 {
			continue
		}
		if val, ok := types.Lookup(doc, path); ok {
			setPath(out, path, val)
		}
	}
	return out
}

func removePath(doc map[string]any, path string) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		delete(doc, head)
		return
	}
	if child, ok := doc[head].(map[string]any); ok {
		removePath(child, rest)
	}
}

func setPath(doc map[string]any, path string, v any) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		doc[head] = v
		return
	}
	child, ok := doc[head].(map[string]any)
	if !ok {
		child = map[string]any{}
		doc[head] = child
	}
	setPath(child, rest, v)
}

func copyRecord(rec types.JSON) types.JSON {
	out := make(types.JSON, len(rec))
	for k, v := range rec {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return map[string]any(copyRecord(x))
	case []any:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = copyValue(item)
		}
		return out
	}
	return v
}
