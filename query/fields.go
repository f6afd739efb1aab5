package query

import (
	"fmt"
	"strings"
)

// ParseSelect builds a select mask from "a,-b,owner.-secret".
// A leading "+" or "-" on the path, or on its last segment, sets inclusion.
func ParseSelect(raw any) FieldMask {
	var mask FieldMask
	for _, token := range rawTokens(raw) {
		path, sign := parseFieldToken(token)
		if path == "" {
			continue
		}
		v := 1
		if sign < 0 {
			v = 0
		}
		mask = mask.With(path, v)
	}
	return mask
}

// ParseSort builds an ordered sort mask from "-rank,name".
func ParseSort(raw any) SortMask {
	var mask SortMask
	for _, token := range rawTokens(raw) {
		path, sign := parseFieldToken(token)
		if path == "" {
			continue
		}
		mask = mask.With(path, sign)
	}
	return mask
}

func parseFieldToken(token string) (string, int) {
	sign := 1
	switch {
	case strings.HasPrefix(token, "-"):
		return strings.TrimSpace(token[1:]), -1
	case strings.HasPrefix(token, "+"):
		return strings.TrimSpace(token[1:]), 1
	}

	i := strings.LastIndexByte(token, '.')
	if i < 0 || i == len(token)-1 {
		return token, sign
	}
	switch token[i+1] {
	case '-':
		sign = -1
	case '+':
	default:
		return token, sign
	}
	return token[:i+1] + token[i+2:], sign
}

// rawTokens splits a raw directive value on commas, trimming blanks.
func rawTokens(raw any) []string {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []string:
		for _, s := range v {
			parts = append(parts, strings.Split(s, ",")...)
		}
	case []any:
		for _, s := range v {
			parts = append(parts, strings.Split(fmt.Sprint(s), ",")...)
		}
	case nil:
		return nil
	default:
		parts = strings.Split(fmt.Sprint(v), ",")
	}

	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// rawString returns the last value of a raw directive.
func rawString(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[len(v)-1]
		}
	case nil:
	default:
		return fmt.Sprint(v)
	}
	return ""
}
