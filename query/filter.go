package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ncobase/geocontent/ecode"
)

// listSeparator joins multiple values of an equality or inequality.
const listSeparator = ";"

type operatorMatcher struct {
	symbol string
	op     Operator
	listOp Operator
}

// operatorMatchers are tried in order. Two-character operators precede the
// one-character operators they start with, so "age>=5" is read as gte and
// never as gt with the value "=5".
var operatorMatchers = []operatorMatcher{
	{symbol: "==", op: OpEq, listOp: OpIn},
	{symbol: "!=", op: OpNe, listOp: OpNin},
	{symbol: ">=", op: OpGte},
	{symbol: "<=", op: OpLte},
	{symbol: ">", op: OpGt},
	{symbol: "<", op: OpLt},
}

// ParseFilterExpr parses one "key<op>value" expression.
func ParseFilterExpr(expr string) (FilterClause, bool) {
	for _, m := range operatorMatchers {
		i := strings.Index(expr, m.symbol)
		if i <= 0 {
			continue
		}
		key := strings.TrimSpace(expr[:i])
		if key == "" || strings.ContainsAny(key, "=!<>") {
			continue
		}
		value := strings.TrimSpace(expr[i+len(m.symbol):])
		if value == "" {
			continue
		}
		if m.listOp != "" && strings.Contains(value, listSeparator) {
			return FilterClause{Key: key, Op: m.listOp, Value: splitList(value)}, true
		}
		return FilterClause{Key: key, Op: m.op, Value: value}, true
	}
	return FilterClause{}, false
}

// ParseFilter parses a raw filter directive.
//
// The string form is a comma-separated list of expressions such as
// "age>=5,name==a;b". The object form maps a key to a value (equality) or to
// an operator object, as decoded from filter[age][gte]=5.
func ParseFilter(raw any) (FilterTree, error) {
	if m, ok := asMap(raw); ok {
		return parseFilterObject(m)
	}

	var tree FilterTree
	for _, token := range rawTokens(raw) {
		clause, ok := ParseFilterExpr(token)
		if !ok {
			return nil, ecode.NewValidation(ecode.FilterErr, string(DirectiveFilter), rawFilterInput(raw),
				fmt.Sprintf("unrecognized filter expression %q", token))
		}
		tree = append(tree, clause)
	}
	return tree, nil
}

func parseFilterObject(m Params) (FilterTree, error) {
	var tree FilterTree
	for _, key := range sortedKeys(m) {
		switch v := m[key].(type) {
		case Params, map[string]any:
			ops, _ := asMap(v)
			for _, name := range sortedKeys(ops) {
				op := Operator(name)
				if !op.Valid() {
					return nil, ecode.NewValidation(ecode.FilterErr, string(DirectiveFilter)+"."+key, name, "unsupported operator")
				}
				value, err := operatorValue(op, ops[name])
				if err != nil {
					return nil, ecode.WrapValidation(ecode.FilterErr, string(DirectiveFilter)+"."+key, rawString(ops[name]), err)
				}
				tree = append(tree, FilterClause{Key: key, Op: op, Value: value})
			}
		default:
			value := strings.TrimSpace(rawString(v))
			if value == "" {
				continue
			}
			if strings.Contains(value, listSeparator) {
				tree = append(tree, FilterClause{Key: key, Op: OpIn, Value: splitList(value)})
				continue
			}
			tree = append(tree, FilterClause{Key: key, Op: OpEq, Value: value})
		}
	}
	return tree, nil
}

func operatorValue(op Operator, raw any) (any, error) {
	switch op {
	case OpIn, OpNin:
		if list, ok := raw.([]string); ok {
			return list, nil
		}
		return splitList(rawString(raw)), nil
	case OpExists:
		return strconv.ParseBool(strings.TrimSpace(rawString(raw)))
	}
	return strings.TrimSpace(rawString(raw)), nil
}

func splitList(value string) []string {
	parts := strings.Split(value, listSeparator)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func rawFilterInput(raw any) string {
	if list, ok := raw.([]string); ok {
		return strings.Join(list, ",")
	}
	return rawString(raw)
}

// Predefined drops clauses with a nil or empty value.
func Predefined(clauses ...FilterClause) FilterTree {
	var out FilterTree
	for _, c := range clauses {
		if c.Key == "" || c.IsEmpty() {
			continue
		}
		out = append(out, c)
	}
	return out
}
