package ecode

import (
	"errors"
	"fmt"
)

const (
	emptyMsg    = "empty"
	requiredMsg = "required"
	invalidMsg  = "invalid"
	mismatchMsg = "does not match"
)

// FieldIsRequired returns field required message
func FieldIsRequired(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], requiredMsg)
	}
	return emptyMsg
}

// FieldIsEmpty returns field empty message
func FieldIsEmpty(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], emptyMsg)
	}
	return emptyMsg
}

// FieldIsInvalid returns field invalid message
func FieldIsInvalid(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], invalidMsg)
	}
	return invalidMsg
}

// FieldMismatch returns field mismatch message
func FieldMismatch(k, other string) string {
	return fmt.Sprintf("%s %s %s", k, mismatchMsg, other)
}

// Kind classifies an *Error.
type Kind int

const (
	// KindValidation marks malformed client input.
	KindValidation Kind = iota + 1
	// KindConfig marks a server-side defect.
	KindConfig
	// KindStore marks a failed read against a backing store.
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConfig:
		return "config"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error is a classified error carrying the offending field and raw input.
type Error struct {
	Kind    Kind   `json:"-"`
	Code    int    `json:"code"`
	Field   string `json:"field,omitempty"`
	Input   string `json:"input,omitempty"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = Text(e.Code)
	}
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Input != "" {
		msg = fmt.Sprintf("%s (%q)", msg, e.Input)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidation creates a validation error.
func NewValidation(code int, field, input, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Field: field, Input: input, Message: message}
}

// WrapValidation creates a validation error wrapping cause.
func WrapValidation(code int, field, input string, cause error) *Error {
	return &Error{Kind: KindValidation, Code: code, Field: field, Input: input, Message: Text(code), Err: cause}
}

// NewConfig creates a configuration error.
func NewConfig(field, message string) *Error {
	return &Error{Kind: KindConfig, Code: ConfigErr, Field: field, Message: message}
}

// WrapStore creates a store error wrapping cause.
func WrapStore(op string, cause error) *Error {
	return &Error{Kind: KindStore, Code: ServiceUnavailable, Field: op, Message: Text(ServiceUnavailable), Err: cause}
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindValidation
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindConfig
}

// IsStore reports whether err is a store error.
func IsStore(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindStore
}
