package paging

import (
	"context"

	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/types"
)

// DefaultIDField is the unique id field used as the sort tiebreaker.
const DefaultIDField = "_id"

// Record is one document returned by a Collection.
type Record = types.JSON

// FindQuery is a page read against a Collection.
type FindQuery struct {
	Where    query.Condition
	Select   query.FieldMask
	Sort     query.SortMask
	Populate []query.PopulationNode
	Offset   int
	Limit    int
}

// Bucket is one group of a facet aggregation.
type Bucket struct {
	Value any   `json:"value"`
	Count int64 `json:"count"`
}

// Collection is a document collection adapter.
type Collection interface {
	// Find returns the records matching q, in q.Sort order.
	Find(ctx context.Context, q FindQuery) ([]Record, error)
	// Count returns the number of records matching where.
	Count(ctx context.Context, where query.Condition) (int64, error)
	// Aggregate groups the records matching where by field.
	Aggregate(ctx context.Context, where query.Condition, field string) ([]Bucket, error)
}

// KnownValuesResolver enumerates the values a facet field can take, so that
// values with no matching record still appear with a zero count.
type KnownValuesResolver interface {
	KnownValues(ctx context.Context, field string) ([]string, error)
}

// Searcher resolves free text to the ids of matching records.
type Searcher interface {
	SearchIDs(ctx context.Context, text string, limit int) ([]string, error)
}

// Result holds the pagination result
type Result[T any] struct {
	Items       []T                 `json:"items"`
	Total       int64               `json:"total"`
	NextCursor  string              `json:"next,omitempty"`
	PrevCursor  string              `json:"previous,omitempty"`
	HasNextPage bool                `json:"has_next"`
	Facets      map[string][]Bucket `json:"facets,omitempty"`
}

// Map converts the items of r, keeping its metadata.
func Map[T, U any](r *Result[T], fn func(T) (U, error)) (*Result[U], error) {
	out := &Result[U]{
		Items:       make([]U, 0, len(r.Items)),
		Total:       r.Total,
		NextCursor:  r.NextCursor,
		PrevCursor:  r.PrevCursor,
		HasNextPage: r.HasNextPage,
		Facets:      r.Facets,
	}
	for _, item := range r.Items {
		u, err := fn(item)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, u)
	}
	return out, nil
}
