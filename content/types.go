package content

import (
	"context"
	"sort"

	"github.com/ncobase/geocontent/data/mongodb"
	"github.com/ncobase/geocontent/paging"
)

// TenantField holds the owning tenant on every content record.
const TenantField = "tenant"

// Relation is a populatable reference from one content type to another.
type Relation struct {
	Path         string
	Target       string
	LocalField   string
	ForeignField string
	Many         bool
}

// Type describes one content collection.
type Type struct {
	Name      string
	Schema    mongodb.Schema
	Relations []Relation
	// Facets are the fields a list request may aggregate.
	Facets []string
	// Enums are the closed value sets of facet fields.
	Enums map[string][]string
}

var _ paging.KnownValuesResolver = (*Type)(nil)

// KnownValues returns the closed value set of field, or nil when field is
// not enumerated.
func (t *Type) KnownValues(_ context.Context, field string) ([]string, error) {
	values, ok := t.Enums[field]
	if !ok {
		return nil, nil
	}
	return append([]string(nil), values...), nil
}

// HasFacet reports whether field may be aggregated.
func (t *Type) HasFacet(field string) bool {
	for _, f := range t.Facets {
		if f == field {
			return true
		}
	}
	return false
}

var common = mongodb.Schema{
	"_id":        mongodb.ObjectID,
	"created_at": mongodb.Date,
	"updated_at": mongodb.Date,
}

func schema(fields mongodb.Schema) mongodb.Schema {
	out := mongodb.Schema{}
	for k, v := range common {
		out[k] = v
	}
	for k, v := range fields {
		out[k] = v
	}
	return out
}

var (
	Locations = &Type{
		Name: "locations",
		Schema: schema(mongodb.Schema{
			"elevation": mongodb.Number,
			"layers":    mongodb.ObjectID,
		}),
		Relations: []Relation{
			{Path: "layers", Target: "layers", LocalField: "layers", ForeignField: "_id", Many: true},
		},
		Facets: []string{"status", "category"},
		Enums: map[string][]string{
			"status": {"draft", "published", "archived"},
		},
	}

	Layers = &Type{
		Name: "layers",
		Schema: schema(mongodb.Schema{
			"opacity":   mongodb.Number,
			"zindex":    mongodb.Number,
			"visible":   mongodb.Bool,
			"locations": mongodb.ObjectID,
		}),
		Relations: []Relation{
			{Path: "locations", Target: "locations", LocalField: "locations", ForeignField: "_id", Many: true},
		},
		Facets: []string{"type", "status"},
		Enums: map[string][]string{
			"type":   {"vector", "raster", "geojson", "heatmap", "tile"},
			"status": {"draft", "published", "archived"},
		},
	}

	Widgets = &Type{
		Name: "widgets",
		Schema: schema(mongodb.Schema{
			"layer": mongodb.ObjectID,
			"order": mongodb.Number,
		}),
		Relations: []Relation{
			{Path: "layer", Target: "layers", LocalField: "layer", ForeignField: "_id"},
		},
		Facets: []string{"kind"},
		Enums: map[string][]string{
			"kind": {"map", "chart", "table", "metric", "legend"},
		},
	}

	Dashboards = &Type{
		Name: "dashboards",
		Schema: schema(mongodb.Schema{
			"widgets": mongodb.ObjectID,
			"public":  mongodb.Bool,
		}),
		Relations: []Relation{
			{Path: "widgets", Target: "widgets", LocalField: "widgets", ForeignField: "_id", Many: true},
		},
		Facets: []string{"status"},
		Enums: map[string][]string{
			"status": {"draft", "published", "archived"},
		},
	}
)

var registry = map[string]*Type{
	Locations.Name:  Locations,
	Layers.Name:     Layers,
	Widgets.Name:    Widgets,
	Dashboards.Name: Dashboards,
}

// Lookup returns the content type stored in collection name.
func Lookup(name string) (*Type, bool) {
	t, ok := registry[name]
	return t, ok
}

// Names returns the registered collection names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
