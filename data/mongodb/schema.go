package mongodb

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FieldType tells how string filter values are converted before they reach
// the store.
type FieldType int

const (
	// String keeps values as they are.
	String FieldType = iota
	Number
	Bool
	Date
	ObjectID
)

// Schema maps a dotted field path to its type. Unlisted fields are String.
type Schema map[string]FieldType

// Coerce converts v for field. Lists are converted element by element.
func (s Schema) Coerce(field string, v any) (any, error) {
	switch list := v.(type) {
	case []string:
		out := make([]any, 0, len(list))
		for _, item := range list {
			c, err := s.Coerce(field, item)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	case []any:
		out := make([]any, 0, len(list))
		for _, item := range list {
			c, err := s.Coerce(field, item)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	}

	if v == nil {
		return nil, nil
	}
	switch s[field] {
	case Number:
		if i, err := cast.ToInt64E(v); err == nil {
			if f, ferr := cast.ToFloat64E(v); ferr == nil && float64(i) == f {
				return i, nil
			}
		}
		return cast.ToFloat64E(v)
	case Bool:
		return cast.ToBoolE(v)
	case Date:
		if t, ok := v.(time.Time); ok {
			return t, nil
		}
		return cast.ToTimeE(v)
	case ObjectID:
		switch id := v.(type) {
		case primitive.ObjectID:
			return id, nil
		case string:
			return primitive.ObjectIDFromHex(id)
		}
		return nil, fmt.Errorf("cannot use %T as an object id", v)
	}
	return v, nil
}
