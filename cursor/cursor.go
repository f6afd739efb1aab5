package cursor

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ncobase/geocontent/ecode"
	"github.com/ncobase/geocontent/types"
)

// Begin is the reserved token that starts cursor pagination at the first page.
const Begin = "-1"

// Key is one entry of an ordered sort.
type Key struct {
	Path  string `json:"path"`
	Order int    `json:"order"`
}

// Field is the comparison state stored for one sort path.
type Field struct {
	Path  string
	Value any
	Order int
}

// Fields keeps sort state in sort order.
type Fields []Field

// Cursor is the decoded pagination token.
type Cursor struct {
	ID      string `json:"id"`
	Sort    Fields `json:"sort"`
	Reverse bool   `json:"reverse"`
}

// IsEmpty reports whether c carries no seek state. A nil cursor is empty.
func (c *Cursor) IsEmpty() bool {
	return c == nil || (c.ID == "" && len(c.Sort) == 0)
}

// Field returns the stored state of path.
func (c *Cursor) Field(path string) (Field, bool) {
	if c == nil {
		return Field{}, false
	}
	for _, f := range c.Sort {
		if f.Path == path {
			return f, true
		}
	}
	return Field{}, false
}

// Matches reports whether c was issued under keys: same path set and, for
// every path, the same requested direction.
func (c *Cursor) Matches(keys []Key) bool {
	if c == nil {
		return len(keys) == 0
	}
	if len(c.Sort) != len(keys) {
		return false
	}
	for _, k := range keys {
		f, ok := c.Field(k.Path)
		if !ok {
			return false
		}
		if f.requestedOrder(c.Reverse) != normalizeOrder(k.Order) {
			return false
		}
	}
	return true
}

func (f Field) requestedOrder(reverse bool) int {
	if reverse {
		return -f.Order
	}
	return f.Order
}

// Token serializes c into its wire form.
func (c *Cursor) Token() (string, error) {
	if c == nil {
		return "", nil
	}
	data, err := marshal(c)
	if err != nil {
		return "", fmt.Errorf("cursor: marshal: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// Encode builds a token from the boundary record of a page.
//
// Every path of spec must be present on record; a missing path is a
// configuration error since the collection cannot be paginated on it.
func Encode(id string, spec []Key, record any, reverse bool) (string, error) {
	c := &Cursor{ID: id, Reverse: reverse, Sort: make(Fields, 0, len(spec))}
	for _, k := range spec {
		v, ok := types.Lookup(record, k.Path)
		if !ok {
			return "", ecode.NewConfig(k.Path, "sort path is absent on record, cannot paginate on it")
		}
		order := normalizeOrder(k.Order)
		if reverse {
			order = -order
		}
		c.Sort = append(c.Sort, Field{Path: k.Path, Value: v, Order: order})
	}
	return c.Token()
}

// Decode parses a token.
//
// An empty or blank token yields a nil cursor. Begin yields an empty, non-nil
// cursor. Anything else must decode; failures are validation errors.
func Decode(token string) (*Cursor, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, nil
	}
	if token == Begin {
		return &Cursor{}, nil
	}

	raw, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, ecode.WrapValidation(ecode.CursorErr, "cursor", token, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var c Cursor
	if err := dec.Decode(&c); err != nil {
		return nil, ecode.WrapValidation(ecode.CursorErr, "cursor", token, err)
	}
	if c.ID == "" {
		return nil, ecode.NewValidation(ecode.CursorErr, "cursor", token, ecode.FieldIsRequired("id"))
	}
	return &c, nil
}

// MarshalJSON writes fields as an object keyed by path, in order.
func (f Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, field := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := marshal(field.Path)
		if err != nil {
			return nil, err
		}
		value, err := marshal(field.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteString(":[")
		buf.Write(value)
		fmt.Fprintf(&buf, ",%d]", field.Order)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads fields back, preserving their order.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*f = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return errors.New("sort must be an object")
	}

	out := Fields{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		path, ok := tok.(string)
		if !ok || path == "" {
			return errors.New("sort path must be a non-empty string")
		}

		var pair []json.RawMessage
		if err := dec.Decode(&pair); err != nil {
			return fmt.Errorf("sort %q: %w", path, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("sort %q: want [value, order]", path)
		}

		value, err := decodeValue(pair[0])
		if err != nil {
			return fmt.Errorf("sort %q: %w", path, err)
		}
		var order int
		if err := json.Unmarshal(pair[1], &order); err != nil || (order != 1 && order != -1) {
			return fmt.Errorf("sort %q: order must be 1 or -1", path)
		}
		out = append(out, Field{Path: path, Value: value, Order: order})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

func decodeValue(raw json.RawMessage) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if n, ok := v.(json.Number); ok {
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		return n.Float64()
	}
	return v, nil
}

func marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func normalizeOrder(order int) int {
	if order < 0 {
		return -1
	}
	return 1
}
