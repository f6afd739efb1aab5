package paging

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/query"
)

// Links are the navigation links of a list response.
type Links struct {
	Self  string `json:"self"`
	First string `json:"first,omitempty"`
	Prev  string `json:"prev,omitempty"`
	Next  string `json:"next,omitempty"`
	Last  string `json:"last,omitempty"`
}

// BuildLinks renders the links of r from the request's base URL and query.
//
// next and prev follow the result's cursors. first restarts cursor
// pagination in cursor mode and points to page 1 otherwise. last and the
// page-number prev exist in offset mode only.
func BuildLinks[T any](base string, values url.Values, cfg *query.Config, o query.Options, r *Result[T]) Links {
	skipKey := cfg.Key(query.DirectiveSkip)
	cursorKey := cfg.Key(query.DirectiveCursor)

	l := Links{Self: render(base, values)}
	with := func(set map[string]string, drop ...string) string {
		v := cloneValues(values)
		for _, k := range drop {
			deleteKey(v, k)
		}
		for k, val := range set {
			deleteKey(v, k)
			v.Set(bracketKey(k), val)
		}
		return render(base, v)
	}

	if r.NextCursor != "" {
		l.Next = with(map[string]string{cursorKey: r.NextCursor}, skipKey)
	}

	if o.CursorMode() {
		l.First = with(map[string]string{cursorKey: cursor.Begin}, skipKey)
		if r.PrevCursor != "" {
			l.Prev = with(map[string]string{cursorKey: r.PrevCursor}, skipKey)
		}
		return l
	}

	l.First = with(map[string]string{skipKey: "1"}, cursorKey)
	if o.Skip > 1 {
		l.Prev = with(map[string]string{skipKey: strconv.Itoa(o.Skip - 1)}, cursorKey)
	}
	if o.Limit > 0 && r.Total > 0 {
		pages := (r.Total + int64(o.Limit) - 1) / int64(o.Limit)
		l.Last = with(map[string]string{skipKey: strconv.FormatInt(pages, 10)}, cursorKey)
	}
	return l
}

func render(base string, v url.Values) string {
	q := v.Encode()
	if q == "" {
		return base
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + q
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vs := range v {
		out[k] = append([]string(nil), vs...)
	}
	return out
}

// deleteKey removes every spelling of a dotted key: "page.cursor",
// "page[cursor]".
func deleteKey(v url.Values, key string) {
	v.Del(key)
	v.Del(bracketKey(key))
}

// bracketKey renders "page.cursor" as "page[cursor]".
func bracketKey(key string) string {
	parts := strings.Split(key, ".")
	if len(parts) == 1 {
		return key
	}
	return parts[0] + "[" + strings.Join(parts[1:], "][") + "]"
}
