package query

import "strings"

// wildcard prefixes a key addressed to every population node.
const wildcard = "*"

// MergePopulation folds population nodes that share a path, then distributes
// relation-prefixed select, sort and filter keys into the population tree.
//
// A key "owner.team.name" moves to the team node under owner, becoming
// "name" there; the deepest matching node wins. A wildcard key "*.name" is
// copied to every node at every depth. Wildcard keys left on the top-level
// directives afterwards are dropped. Keys matching no node stay where they
// are. The input is not modified, and merging a merged result is a no-op.
func MergePopulation(o Options) Options {
	out := o.Clone()
	if len(out.Populate) > 0 {
		out.Populate = groupPopulation(out.Populate)
		d := &distributor{sel: out.Select, sort: out.Sort, filter: out.Filter}
		out.Populate = d.distribute(out.Populate, "")
		out.Select, out.Sort, out.Filter = d.sel, d.sort, d.filter
	}
	out.Select, out.Sort, out.Filter = stripWildcards(out.Select, out.Sort, out.Filter)
	return out
}

type distributor struct {
	sel    FieldMask
	sort   SortMask
	filter FilterTree
}

// distribute walks children before their parent so a child consumes the
// keys of its longer prefix first.
func (d *distributor) distribute(nodes []PopulationNode, prefix string) []PopulationNode {
	for i := range nodes {
		full := prefix + nodes[i].Path + "."
		nodes[i].Children = d.distribute(nodes[i].Children, full)
		d.absorb(&nodes[i], full)
	}
	return nodes
}

func (d *distributor) absorb(n *PopulationNode, prefix string) {
	for _, k := range d.sel.Paths() {
		if local, ok := localKey(k, prefix); ok {
			n.Select = n.Select.With(local, d.sel[k])
			delete(d.sel, k)
		} else if local, ok := wildcardKey(k); ok {
			n.Select = n.Select.With(local, d.sel[k])
		}
	}

	var keep SortMask
	for _, f := range d.sort {
		if local, ok := localKey(f.Path, prefix); ok {
			n.Sort = n.Sort.With(local, f.Order)
			continue
		}
		if local, ok := wildcardKey(f.Path); ok {
			n.Sort = n.Sort.With(local, f.Order)
		}
		keep = append(keep, f)
	}
	d.sort = keep

	var rest FilterTree
	for _, c := range d.filter {
		if local, ok := localKey(c.Key, prefix); ok {
			n.Filter = n.Filter.Append(FilterClause{Key: local, Op: c.Op, Value: c.Value})
			continue
		}
		if local, ok := wildcardKey(c.Key); ok {
			n.Filter = n.Filter.Append(FilterClause{Key: local, Op: c.Op, Value: c.Value})
		}
		rest = append(rest, c)
	}
	d.filter = rest
}

func localKey(key, prefix string) (string, bool) {
	if len(key) <= len(prefix) || !strings.HasPrefix(key, prefix) {
		return "", false
	}
	return key[len(prefix):], true
}

func wildcardKey(key string) (string, bool) {
	if !strings.HasPrefix(key, wildcard) {
		return "", false
	}
	local := strings.TrimPrefix(strings.TrimPrefix(key, wildcard), ".")
	return local, local != ""
}

// groupPopulation folds nodes sharing a path, in first-seen order, and
// recurses into the merged children.
func groupPopulation(nodes []PopulationNode) []PopulationNode {
	if len(nodes) == 0 {
		return nodes
	}
	var (
		out   []PopulationNode
		index = map[string]int{}
	)
	for _, n := range nodes {
		i, ok := index[n.Path]
		if !ok {
			index[n.Path] = len(out)
			out = append(out, n)
			continue
		}
		m := &out[i]
		m.Select = m.Select.Merge(n.Select)
		m.Sort = m.Sort.Merge(n.Sort)
		m.Filter = m.Filter.Append(n.Filter...)
		m.Children = append(m.Children, n.Children...)
	}
	for i := range out {
		out[i].Children = groupPopulation(out[i].Children)
	}
	return out
}

func stripWildcards(sel FieldMask, sort SortMask, filter FilterTree) (FieldMask, SortMask, FilterTree) {
	for k := range sel {
		if strings.HasPrefix(k, wildcard) {
			sel = sel.Without(k)
		}
	}

	var keptSort SortMask
	for _, f := range sort {
		if !strings.HasPrefix(f.Path, wildcard) {
			keptSort = append(keptSort, f)
		}
	}

	var keptFilter FilterTree
	for _, c := range filter {
		if !c.IsWildcard() {
			keptFilter = append(keptFilter, c)
		}
	}
	return sel, keptSort, keptFilter
}
