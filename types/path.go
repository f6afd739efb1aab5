package types

import (
	"strings"

	"github.com/ohler55/ojg/jp"
)

// PathExpr compiles a dotted field path into a JSONPath child expression.
func PathExpr(path string) jp.Expr {
	var x jp.Expr
	for _, seg := range strings.Split(path, ".") {
		x = append(x, jp.Child(seg))
	}
	return x
}

// Lookup reads a dotted field path from a decoded document.
// The second result is false when any segment is absent.
func Lookup(doc any, path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	if m, ok := doc.(JSON); ok {
		doc = map[string]any(m)
	}
	got := PathExpr(path).Get(doc)
	if len(got) == 0 {
		return nil, false
	}
	return got[0], true
}

// Delete removes a dotted field path from a decoded document.
func Delete(doc JSON, path string) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		delete(doc, head)
		return
	}
	if child, ok := doc[head].(map[string]any); ok {
		Delete(child, rest)
	}
}

// Set writes v at a dotted field path, creating intermediate objects.
func Set(doc JSON, path string, v any) {
	head, rest, nested := strings.Cut(path, ".")
	if !nested {
		doc[head] = v
		return
	}
	child, ok := doc[head].(map[string]any)
	if !ok {
		child = map[string]any{}
		doc[head] = child
	}
	Set(child, rest, v)
}
