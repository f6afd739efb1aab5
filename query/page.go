package query

import (
	"strconv"
	"strings"

	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/ecode"
)

// ParseSkip reads a 1-based page number. Values that are not integers fall
// back to DefaultSkip; values below 1 are raised to 1.
func ParseSkip(raw any) int {
	n, ok := parseInt(raw)
	if !ok {
		return DefaultSkip
	}
	if n < 1 {
		return 1
	}
	return n
}

// ParseLimit reads a page size clamped to [0, max]. Values that are not
// integers fall back to def.
func ParseLimit(raw any, def, max int) int {
	n, ok := parseInt(raw)
	if !ok {
		n = def
	}
	if n < 0 {
		return 0
	}
	if n > max {
		return max
	}
	return n
}

// ParseSearch reads a free-text search string.
func ParseSearch(raw any) string {
	return strings.TrimSpace(rawString(raw))
}

// ParseCursor decodes a cursor token. The returned error names key.
func ParseCursor(raw any, key string) (*cursor.Cursor, error) {
	token := strings.TrimSpace(rawString(raw))
	c, err := cursor.Decode(token)
	if err != nil {
		if e, ok := ecode.As(err); ok {
			named := *e
			named.Field = key
			return nil, &named
		}
		return nil, ecode.WrapValidation(ecode.CursorErr, key, token, err)
	}
	return c, nil
}

func parseInt(raw any) (int, bool) {
	s := strings.TrimSpace(rawString(raw))
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
