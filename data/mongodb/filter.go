package mongodb

import (
	"fmt"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ncobase/geocontent/ecode"
	"github.com/ncobase/geocontent/query"
)

var operators = map[query.Operator]string{
	query.OpEq:     "$eq",
	query.OpNe:     "$ne",
	query.OpGt:     "$gt",
	query.OpGte:    "$gte",
	query.OpLt:     "$lt",
	query.OpLte:    "$lte",
	query.OpIn:     "$in",
	query.OpNin:    "$nin",
	query.OpExists: "$exists",
}

// BuildFilter renders cond as a mongo filter document. Values are coerced
// with schema; a value that does not fit its field is a validation error.
func BuildFilter(cond query.Condition, schema Schema) (bson.M, error) {
	switch {
	case len(cond.And) > 0:
		parts, err := buildAll(cond.And, schema)
		if err != nil {
			return nil, err
		}
		return bson.M{"$and": parts}, nil
	case len(cond.Or) > 0:
		parts, err := buildAll(cond.Or, schema)
		if err != nil {
			return nil, err
		}
		return bson.M{"$or": parts}, nil
	case cond.Clause != nil:
		return buildClause(*cond.Clause, schema)
	case cond.Text != "":
		return bson.M{"$text": bson.M{"$search": cond.Text}}, nil
	}
	return bson.M{}, nil
}

func buildAll(conds []query.Condition, schema Schema) (bson.A, error) {
	out := make(bson.A, 0, len(conds))
	for _, c := range conds {
		m, err := BuildFilter(c, schema)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

func buildClause(c query.FilterClause, schema Schema) (bson.M, error) {
	op, ok := operators[c.Op]
	if !ok {
		return nil, ecode.NewValidation(ecode.FilterErr, c.Key, string(c.Op), "unsupported operator")
	}

	if c.Op == query.OpExists {
		exists, err := cast.ToBoolE(c.Value)
		if err != nil {
			return nil, ecode.WrapValidation(ecode.FilterErr, c.Key, fmt.Sprint(c.Value), err)
		}
		return bson.M{c.Key: bson.M{op: exists}}, nil
	}

	value, err := schema.Coerce(c.Key, c.Value)
	if err != nil {
		return nil, ecode.WrapValidation(ecode.FilterErr, c.Key, fmt.Sprint(c.Value), err)
	}
	if c.Op == query.OpIn || c.Op == query.OpNin {
		if _, isList := value.([]any); !isList {
			value = []any{value}
		}
		value = bson.A(value.([]any))
	}
	return bson.M{c.Key: bson.M{op: value}}, nil
}

// Projection renders mask. A mask mixing inclusions and exclusions keeps
// only the inclusions, since mongo rejects mixed projections; keep names
// fields always included, such as populated relations.
func Projection(mask query.FieldMask, keep ...string) bson.M {
	if len(mask) == 0 {
		return nil
	}
	include := false
	for _, v := range mask {
		if v == 1 {
			include = true
			break
		}
	}

	out := bson.M{}
	for _, path := range mask.Paths() {
		v := mask[path]
		if include && v != 1 {
			continue
		}
		out[path] = v
	}
	if include {
		for _, k := range keep {
			out[k] = 1
		}
	}
	return out
}

// SortDoc renders sort as an ordered sort document.
func SortDoc(sort query.SortMask) bson.D {
	if len(sort) == 0 {
		return nil
	}
	out := make(bson.D, 0, len(sort))
	for _, f := range sort {
		order := 1
		if f.Order < 0 {
			order = -1
		}
		out = append(out, bson.E{Key: f.Path, Value: order})
	}
	return out
}
