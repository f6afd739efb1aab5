package ecode

import (
	"net/http"
	"sync"
)

// Common business codes.
const (
	OK                 = 0
	RequestErr         = -400
	ParamErr           = -401
	FilterErr          = -402
	CursorErr          = -403
	NothingFound       = -404
	MethodNotAllowed   = -405
	Conflict           = -409
	ServerErr          = -500
	ConfigErr          = -501
	ServiceUnavailable = -503
	Deadline           = -504
)

var (
	mu    sync.RWMutex
	texts = map[int]string{
		OK:                 "ok",
		RequestErr:         "Invalid request",
		ParamErr:           "Invalid parameters",
		FilterErr:          "Invalid filter expression",
		CursorErr:          "Invalid pagination cursor",
		NothingFound:       "Resource not found",
		MethodNotAllowed:   "Method not allowed",
		Conflict:           "Resource conflict",
		ServerErr:          "Internal server error",
		ConfigErr:          "Server misconfiguration",
		ServiceUnavailable: "Service unavailable",
		Deadline:           "Deadline exceeded",
	}
	statuses = map[int]int{
		OK:                 http.StatusOK,
		RequestErr:         http.StatusBadRequest,
		ParamErr:           http.StatusBadRequest,
		FilterErr:          http.StatusBadRequest,
		CursorErr:          http.StatusBadRequest,
		NothingFound:       http.StatusNotFound,
		MethodNotAllowed:   http.StatusMethodNotAllowed,
		Conflict:           http.StatusConflict,
		ServerErr:          http.StatusInternalServerError,
		ConfigErr:          http.StatusInternalServerError,
		ServiceUnavailable: http.StatusServiceUnavailable,
		Deadline:           http.StatusGatewayTimeout,
	}
)

// Register adds or replaces the message of a custom code.
func Register(code int, text string) {
	mu.Lock()
	defer mu.Unlock()
	texts[code] = text
}

// Text returns the message of code, or an empty string when unknown.
func Text(code int) string {
	mu.RLock()
	defer mu.RUnlock()
	return texts[code]
}

// ToHTTPStatus maps a business code to an HTTP status.
// Unknown negative codes map to 500.
func ToHTTPStatus(code int) int {
	mu.RLock()
	defer mu.RUnlock()
	if status, ok := statuses[code]; ok {
		return status
	}
	if code <= -500 {
		return http.StatusInternalServerError
	}
	if code < 0 {
		return http.StatusBadRequest
	}
	return http.StatusOK
}
