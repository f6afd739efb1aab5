package paging

import (
	"strings"

	"github.com/ncobase/geocontent/query"
	"github.com/ncobase/geocontent/types"
)

// hidden is a path the executor added to the projection. keep lists the
// selected paths beneath it that survive the strip.
type hidden struct {
	path string
	keep []string
}

// widenSelect returns sel extended so that records carry every path in need,
// and the paths to strip from records before they are returned.
//
// An inclusion mask gains each needed path not already covered by an
// included ancestor. An exclusion mask loses the entries excluding a
// needed path or one of its ancestors.
func widenSelect(sel query.FieldMask, need []string) (query.FieldMask, []hidden) {
	if len(sel) == 0 {
		return sel, nil
	}
	out := sel.Clone()
	include := false
	for _, v := range sel {
		if v == 1 {
			include = true
			break
		}
	}

	var added []hidden
	seen := map[string]bool{}
	for _, p := range need {
		if include {
			if p == DefaultIDField {
				if v, ok := out[p]; !ok || v == 1 {
					continue
				}
				delete(out, p)
				added = append(added, hidden{path: p})
				continue
			}
			if covered(out, p) || seen[p] {
				continue
			}
			var keep []string
			for k, v := range out {
				if v == 1 && strings.HasPrefix(k, p+".") {
					keep = append(keep, k)
					delete(out, k)
				}
			}
			out[p] = 1
			seen[p] = true
			added = append(added, hidden{path: p, keep: keep})
			continue
		}
		for k, v := range out {
			if v == 0 && (k == p || strings.HasPrefix(p, k+".")) && !seen[k] {
				delete(out, k)
				seen[k] = true
				added = append(added, hidden{path: k})
			}
		}
	}
	return out, added
}

func covered(sel query.FieldMask, path string) bool {
	for {
		if sel[path] == 1 {
			return true
		}
		i := strings.LastIndexByte(path, '.')
		if i < 0 {
			return false
		}
		path = path[:i]
	}
}

func strip(items []Record, added []hidden) {
	for _, rec := range items {
		for _, h := range added {
			var kept map[string]any
			for _, k := range h.keep {
				if v, ok := types.Lookup(rec, k); ok {
					if kept == nil {
						kept = map[string]any{}
					}
					kept[k] = v
				}
			}
			types.Delete(rec, h.path)
			for k, v := range kept {
				types.Set(rec, k, v)
			}
		}
	}
}
