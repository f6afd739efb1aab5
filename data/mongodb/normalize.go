package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ncobase/geocontent/types"
)

// Normalize converts a decoded document into plain maps and lists: object
// ids become hex strings and datetimes become UTC time.Time values.
func Normalize(doc bson.M) types.JSON {
	out := make(types.JSON, len(doc))
	for k, v := range doc {
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case bson.M:
		return map[string]any(Normalize(x))
	case map[string]any:
		return map[string]any(Normalize(bson.M(x)))
	case bson.D:
		m := make(map[string]any, len(x))
		for _, e := range x {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = normalizeValue(item)
		}
		return out
	case []any:
		return normalizeValue(bson.A(x))
	case primitive.ObjectID:
		return x.Hex()
	case primitive.DateTime:
		return x.Time().UTC()
	case primitive.Decimal128:
		return x.String()
	}
	return v
}
