package paging

import (
	"context"
	"fmt"
	"sort"

	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/types"
)

func (e *Executor) facet(ctx context.Context, where query.Condition, field string) ([]Bucket, error) {
	buckets, err := e.coll.Aggregate(ctx, where, field)
	if err != nil {
		return nil, storeError("aggregate "+field, err)
	}
	var known []string
	if e.known != nil {
		if known, err = e.known.KnownValues(ctx, field); err != nil {
			return nil, storeError("known values "+field, err)
		}
	}
	return MergeBuckets(buckets, known), nil
}

// MergeBuckets adds a zero-count bucket for every known value missing from
// buckets and sorts the result by value ascending. Buckets with a nil value
// are dropped.
func MergeBuckets(buckets []Bucket, known []string) []Bucket {
	out := make([]Bucket, 0, len(buckets)+len(known))
	seen := make(map[string]bool, len(buckets))
	for _, b := range buckets {
		if b.Value == nil {
			continue
		}
		seen[fmt.Sprint(b.Value)] = true
		out = append(out, b)
	}
	for _, v := range known {
		if !seen[v] {
			seen[v] = true
			out = append(out, Bucket{Value: v})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return types.CompareValues(out[i].Value, out[j].Value) < 0
	})
	return out
}
