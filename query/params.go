package query

import (
	"net/url"
	"sort"
	"strings"

	"github.com/ncobase/geocontent/ecode"
)

// Params is the nested key/value tree of a request's directives.
// Leaves are strings, or []string for repeated keys.
type Params map[string]any

// DecodeQuery parses a raw query string into a Params tree. A leading "?" is
// ignored. Bracketed and dotted keys nest: page[number]=2 and page.number=2
// both decode to {page: {number: "2"}}. A raw ";" is literal.
func DecodeQuery(raw string) (Params, error) {
	values, err := ParseValues(raw)
	if err != nil {
		return nil, err
	}
	return FromValues(values), nil
}

// ParseValues parses a raw query string into flat url.Values, keeping a raw
// ";" inside values.
func ParseValues(raw string) (url.Values, error) {
	raw = strings.TrimPrefix(strings.TrimSpace(raw), "?")
	// ";" joins filter values here; net/url rejects it as a separator.
	values, err := url.ParseQuery(strings.ReplaceAll(raw, ";", "%3B"))
	if err != nil {
		return nil, ecode.WrapValidation(ecode.RequestErr, "query", raw, err)
	}
	return values, nil
}

// FromValues nests already-parsed url.Values.
func FromValues(values url.Values) Params {
	p := Params{}
	for _, k := range sortedKeys(values) {
		vs := values[k]
		if len(vs) == 0 {
			continue
		}
		var v any = vs[0]
		if len(vs) > 1 {
			v = append([]string(nil), vs...)
		}
		p.set(splitKey(k), v)
	}
	return p
}

// NormalizeParams nests the top-level bracketed or dotted keys of in and
// converts nested objects to Params. It is idempotent on nested input.
func NormalizeParams(in map[string]any) Params {
	p := Params{}
	for _, k := range sortedKeys(in) {
		p.set(splitKey(k), normalizeValue(in[k]))
	}
	return p
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case Params:
		return normalizeNested(x)
	case map[string]any:
		return normalizeNested(x)
	case []any:
		strs := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return x
			}
			strs = append(strs, s)
		}
		return strs
	}
	return v
}

func normalizeNested(in map[string]any) Params {
	out := make(Params, len(in))
	for k, v := range in {
		out[k] = normalizeValue(v)
	}
	return out
}

// Lookup returns the value at a dotted path.
func (p Params) Lookup(path string) (any, bool) {
	var cur any = p
	for _, seg := range strings.Split(path, ".") {
		m, ok := asMap(cur)
		if !ok {
			return nil, false
		}
		if cur, ok = m[seg]; !ok {
			return nil, false
		}
	}
	return cur, true
}

func (p Params) set(path []string, v any) {
	if len(path) == 0 {
		return
	}
	cur := p
	for _, seg := range path[:len(path)-1] {
		next, ok := asMap(cur[seg])
		if !ok {
			next = Params{}
			cur[seg] = next
		}
		cur = next
	}

	leaf := path[len(path)-1]
	if existing, ok := asMap(cur[leaf]); ok {
		if incoming, ok := asMap(v); ok {
			for k, x := range incoming {
				existing.set([]string{k}, x)
			}
			return
		}
	}
	cur[leaf] = v
}

func asMap(v any) (Params, bool) {
	switch m := v.(type) {
	case Params:
		return m, true
	case map[string]any:
		return Params(m), true
	}
	return nil, false
}

// splitKey splits "a.b[c][d.e]" into [a b c d.e]. Dots inside brackets are
// literal; an unterminated bracket is kept as text.
func splitKey(key string) []string {
	var (
		segs []string
		cur  strings.Builder
	)
	flush := func() {
		if cur.Len() > 0 {
			segs = append(segs, cur.String())
			cur.Reset()
		}
	}

	for i := 0; i < len(key); i++ {
		switch key[i] {
		case '.':
			flush()
		case '[':
			end := strings.IndexByte(key[i+1:], ']')
			if end < 0 {
				cur.WriteString(key[i:])
				i = len(key)
				continue
			}
			flush()
			cur.WriteString(key[i+1 : i+1+end])
			flush()
			i += end + 1
		default:
			cur.WriteByte(key[i])
		}
	}
	flush()
	return segs
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
