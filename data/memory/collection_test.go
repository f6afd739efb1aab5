package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncobase/geocontent/paging"
	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/types"
)

func sample() *Collection {
	return New(
		types.JSON{"_id": "1", "name": "Depot", "elevation": 120, "tags": []any{"road", "north"}, "geo": map[string]any{"zone": "a"}},
		types.JSON{"_id": "2", "name": "Gate", "elevation": 40, "tags": []any{"north"}},
		types.JSON{"_id": "3", "name": "Harbor", "elevation": 3, "geo": map[string]any{"zone": "b"}},
	)
}

func TestMatch(t *testing.T) {
	c := sample()
	tests := []struct {
		name string
		cond query.Condition
		want int64
	}{
		{"zero", query.Condition{}, 3},
		{"eq array contains", query.Leaf("tags", query.OpEq, "north"), 2},
		{"ne missing field", query.Leaf("tags", query.OpNe, "road"), 2},
		{"nin", query.Leaf("name", query.OpNin, []string{"Depot", "Gate"}), 1},
		{"gte string value", query.Leaf("elevation", query.OpGte, "40"), 2},
		{"lt", query.Leaf("elevation", query.OpLt, 40), 1},
		{"dotted", query.Leaf("geo.zone", query.OpEq, "b"), 1},
		{"exists", query.Leaf("geo", query.OpExists, true), 2},
		{"not exists", query.Leaf("geo", query.OpExists, "false"), 1},
		{"or", query.Any(query.Leaf("_id", query.OpEq, "1"), query.Leaf("_id", query.OpEq, "3")), 2},
		{"text", query.TextSearch("har"), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := c.Count(context.Background(), tt.cond)
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestFindSortOffsetProject(t *testing.T) {
	c := sample()
	out, err := c.Find(context.Background(), paging.FindQuery{
		Sort:   query.SortMask{{Path: "elevation", Order: -1}},
		Select: query.FieldMask{"name": 1, "geo.zone": 1},
		Offset: 1,
		Limit:  5,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, types.JSON{"_id": "2", "name": "Gate"}, out[0])
	assert.Equal(t, types.JSON{"_id": "3", "name": "Harbor", "geo": map[string]any{"zone": "b"}}, out[1])

	out, err = c.Find(context.Background(), paging.FindQuery{Select: query.FieldMask{"tags": 0, "geo.zone": 0}, Limit: 1})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.NotContains(t, out[0], "tags")
	assert.Equal(t, map[string]any{}, out[0]["geo"])

	all, err := c.Find(context.Background(), paging.FindQuery{Limit: 1})
	require.NoError(t, err)
	assert.Contains(t, all[0], "tags", "find must not mutate stored records")
}

func TestFindOffsetPastEnd(t *testing.T) {
	out, err := sample().Find(context.Background(), paging.FindQuery{Offset: 10, Limit: 5})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestAggregate(t *testing.T) {
	buckets, err := sample().Aggregate(context.Background(), query.Condition{}, "tags")
	require.NoError(t, err)
	assert.ElementsMatch(t, []paging.Bucket{{Value: "road", Count: 1}, {Value: "north", Count: 2}}, buckets)
}

func TestPopulate(t *testing.T) {
	owners := New(
		types.JSON{"_id": "u1", "name": "ann", "tenant": "t1"},
		types.JSON{"_id": "u2", "name": "bob", "tenant": "t2"},
	)
	c := New(
		types.JSON{"_id": "1", "owner": "u1", "editors": []any{"u1", "u2"}},
		types.JSON{"_id": "2", "owner": "u9"},
	).
		Relate("owner", Relation{From: owners, LocalField: "owner", ForeignField: "_id"}).
		Relate("editors", Relation{From: owners, LocalField: "editors", ForeignField: "_id", Many: true})

	out, err := c.Find(context.Background(), paging.FindQuery{
		Sort: query.SortMask{{Path: "_id", Order: 1}},
		Populate: []query.PopulationNode{
			{Path: "owner", Select: query.FieldMask{"name": 1}},
			{Path: "editors", Filter: query.FilterTree{{Key: "tenant", Op: query.OpEq, Value: "t1"}}},
		},
		Select: query.FieldMask{"owner": 1},
		Limit:  -1,
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, map[string]any{"_id": "u1", "name": "ann"}, out[0]["owner"])
	editors := out[0]["editors"].([]any)
	require.Len(t, editors, 1)
	assert.Equal(t, "ann", editors[0].(map[string]any)["name"])
	assert.Nil(t, out[1]["owner"])
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := sample().Find(ctx, paging.FindQuery{})
	assert.ErrorIs(t, err, context.Canceled)
}
