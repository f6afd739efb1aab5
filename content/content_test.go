package content

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncobase/geocontent/data/memory"
	"github.com/ncobase/geocontent/paging"
	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/types"
)

func TestLookup(t *testing.T) {
	assert.Equal(t, []string{"dashboards", "layers", "locations", "widgets"}, Names())

	l, ok := Lookup("layers")
	require.True(t, ok)
	assert.True(t, l.HasFacet("type"))
	assert.False(t, l.HasFacet("name"))

	_, ok = Lookup("tiles")
	assert.False(t, ok)
}

func TestKnownValues(t *testing.T) {
	values, err := Widgets.KnownValues(context.Background(), "kind")
	require.NoError(t, err)
	assert.Contains(t, values, "map")

	values[0] = "changed"
	again, _ := Widgets.KnownValues(context.Background(), "kind")
	assert.Equal(t, "map", again[0])

	none, err := Widgets.KnownValues(context.Background(), "name")
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestMongoRelations(t *testing.T) {
	rels := Dashboards.MongoRelations()

	require.Contains(t, rels, "widgets")
	require.Contains(t, rels, "widgets.layer")
	require.Contains(t, rels, "widgets.layer.locations")
	assert.NotContains(t, rels, "widgets.layer.locations.layers")

	assert.Equal(t, "layers", rels["widgets.layer"].From)
	assert.False(t, rels["widgets.layer"].Many)
	assert.True(t, rels["widgets"].Many)
}

func TestTenantFilters(t *testing.T) {
	assert.Empty(t, TenantFilters(""))

	clauses := TenantFilters("t1")
	assert.Equal(t, []query.FilterClause{
		{Key: "tenant", Op: query.OpEq, Value: "t1"},
		{Key: "*.tenant", Op: query.OpEq, Value: "t1"},
	}, clauses)
}

func TestTenantScopedPopulation(t *testing.T) {
	layers := memory.New(
		types.JSON{"_id": "a", "name": "roads", "type": "vector", "tenant": "t1", "locations": []any{"l1", "l2"}},
		types.JSON{"_id": "b", "name": "parks", "type": "raster", "tenant": "t1", "locations": []any{"l3"}},
		types.JSON{"_id": "c", "name": "hidden", "type": "vector", "tenant": "t2", "locations": []any{"l1"}},
	)
	locations := memory.New(
		types.JSON{"_id": "l1", "name": "depot", "tenant": "t1"},
		types.JSON{"_id": "l2", "name": "foreign", "tenant": "t2"},
		types.JSON{"_id": "l3", "name": "gate", "tenant": "t1"},
	)
	BindMemory(map[string]*memory.Collection{"layers": layers, "locations": locations})

	params, err := query.DecodeQuery("populate=locations&sort=name&filter=tenant==t2")
	require.NoError(t, err)
	opts, err := query.NewParser(nil).Parse(params, query.WithPredefined(TenantFilters("t1")...))
	require.NoError(t, err)

	exec := paging.NewExecutor(layers, paging.WithKnownValues(Layers))
	res, err := exec.List(context.Background(), opts, "type")
	require.NoError(t, err)

	// the client clause conflicts with the tenant clause, nothing matches
	assert.Empty(t, res.Items)

	opts, err = query.NewParser(nil).Parse(query.Params{"populate": "locations", "sort": "name"},
		query.WithPredefined(TenantFilters("t1")...))
	require.NoError(t, err)
	res, err = exec.List(context.Background(), opts, "type")
	require.NoError(t, err)

	require.Len(t, res.Items, 2)
	assert.Equal(t, "parks", res.Items[0]["name"])
	roads := res.Items[1]
	assert.Equal(t, "roads", roads["name"])
	locs, ok := roads["locations"].([]any)
	require.True(t, ok)
	require.Len(t, locs, 1)
	assert.Equal(t, "depot", locs[0].(map[string]any)["name"])

	var kinds []string
	for _, b := range res.Facets["type"] {
		kinds = append(kinds, b.Value.(string))
	}
	assert.ElementsMatch(t, []string{"vector", "raster", "geojson", "heatmap", "tile"}, kinds)
}
