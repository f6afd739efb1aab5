package query

import "strings"

// ParsePopulate builds population nodes from a raw populate directive.
//
// Each entry is a comma-separated list of dotted paths; paths of one entry
// that share a prefix share the node, so "owner,owner.team" yields one owner
// node with a team child. Separate entries build separate trees, which
// MergePopulation later folds together.
func ParsePopulate(raw any) []PopulationNode {
	var entries []string
	switch v := raw.(type) {
	case []string:
		entries = v
	case []any:
		for _, x := range v {
			entries = append(entries, rawString(x))
		}
	default:
		entries = []string{rawString(v)}
	}

	var out []PopulationNode
	for _, entry := range entries {
		b := newPopulateBuilder()
		for _, path := range rawTokens(entry) {
			b.add(path)
		}
		out = append(out, b.nodes()...)
	}
	return out
}

type populateBuilder struct {
	roots []*populateNode
	// seen indexes nodes by their accumulated path.
	seen map[string]*populateNode
}

type populateNode struct {
	path     string
	children []*populateNode
}

func newPopulateBuilder() *populateBuilder {
	return &populateBuilder{seen: map[string]*populateNode{}}
}

func (b *populateBuilder) add(path string) {
	var (
		parent *populateNode
		prefix string
	)
	for _, seg := range strings.Split(path, ".") {
		if seg = strings.TrimSpace(seg); seg == "" {
			continue
		}
		if prefix == "" {
			prefix = seg
		} else {
			prefix += "." + seg
		}

		n, ok := b.seen[prefix]
		if !ok {
			n = &populateNode{path: seg}
			b.seen[prefix] = n
			if parent == nil {
				b.roots = append(b.roots, n)
			} else {
				parent.children = append(parent.children, n)
			}
		}
		parent = n
	}
}

func (b *populateBuilder) nodes() []PopulationNode {
	return toPopulation(b.roots)
}

func toPopulation(nodes []*populateNode) []PopulationNode {
	if len(nodes) == 0 {
		return nil
	}
	out := make([]PopulationNode, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, PopulationNode{Path: n.path, Children: toPopulation(n.children)})
	}
	return out
}
