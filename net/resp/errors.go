package resp

import (
	"context"
	"errors"
	"net/http"

	"github.com/ncobase/geocontent/ecode"
)

// BadRequest indicates a bad request.
func BadRequest(message string, data ...any) *Exception {
	return newResponse(http.StatusBadRequest, ecode.RequestErr, message, data...)
}

// NotFound indicates that the requested resource is not found.
func NotFound(message string, data ...any) *Exception {
	return newResponse(http.StatusNotFound, ecode.NothingFound, message, data...)
}

// InternalServer indicates a server error.
func InternalServer(message string, data ...any) *Exception {
	return newResponse(http.StatusInternalServerError, ecode.ServerErr, message, data...)
}

// Unavailable indicates a backing store could not serve the request.
func Unavailable(message string, data ...any) *Exception {
	return newResponse(http.StatusServiceUnavailable, ecode.ServiceUnavailable, message, data...)
}

// FromError maps err to a failure response.
//
// Validation errors carry their field and raw input back to the client.
// Configuration and store errors hide their cause.
func FromError(err error) *Exception {
	if err == nil {
		return nil
	}
	e, ok := ecode.As(err)
	switch {
	case !ok:
		if errors.Is(err, context.DeadlineExceeded) {
			return newResponse(http.StatusGatewayTimeout, ecode.Deadline, ecode.Text(ecode.Deadline))
		}
		return InternalServer(ecode.Text(ecode.ServerErr))
	case e.Kind == ecode.KindValidation:
		return newResponse(ecode.ToHTTPStatus(e.Code), e.Code, e.Message, map[string]string{
			"field": e.Field,
			"input": e.Input,
		})
	case e.Kind == ecode.KindStore:
		return Unavailable(ecode.Text(ecode.ServiceUnavailable))
	default:
		return newResponse(http.StatusInternalServerError, e.Code, ecode.Text(e.Code))
	}
}
