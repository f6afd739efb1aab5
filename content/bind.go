package content

import (
	"github.com/ncobase/geocontent/data/memory"
	"github.com/ncobase/geocontent/data/mongodb"
)

// MaxPopulateDepth bounds how far relations are followed when the
// relation table of a type is expanded.
const MaxPopulateDepth = 3

// MongoRelations expands the relations of t into full population paths,
// following the relations of each target type. Layers and locations
// reference each other, so expansion stops at MaxPopulateDepth.
func (t *Type) MongoRelations() mongodb.Relations {
	out := mongodb.Relations{}
	expand(t, "", 1, out)
	return out
}

func expand(t *Type, prefix string, depth int, out mongodb.Relations) {
	if depth > MaxPopulateDepth {
		return
	}
	for _, r := range t.Relations {
		target, ok := Lookup(r.Target)
		if !ok {
			continue
		}
		path := r.Path
		if prefix != "" {
			path = prefix + "." + r.Path
		}
		out[path] = mongodb.Relation{
			From:         target.Name,
			LocalField:   r.LocalField,
			ForeignField: r.ForeignField,
			Many:         r.Many,
			Schema:       target.Schema,
		}
		expand(target, path, depth+1, out)
	}
}

// BindMemory registers the relations of every type between the in-memory
// collections in colls, keyed by type name.
func BindMemory(colls map[string]*memory.Collection) {
	for name, c := range colls {
		t, ok := Lookup(name)
		if !ok {
			continue
		}
		for _, r := range t.Relations {
			from, ok := colls[r.Target]
			if !ok {
				continue
			}
			c.Relate(r.Path, memory.Relation{
				From:         from,
				LocalField:   r.LocalField,
				ForeignField: r.ForeignField,
				Many:         r.Many,
			})
		}
	}
}
