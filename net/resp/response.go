package resp

import (
	"encoding/json"
	"net/http"

	"github.com/ncobase/geocontent/ecode"
)

// Exception is the body of a failed request.
type Exception struct {
	Status  int    `json:"-"`
	Code    int    `json:"code"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

func newResponse(status, code int, message string, errs ...any) *Exception {
	e := &Exception{Status: status, Code: code, Message: message}
	if len(errs) > 0 {
		e.Errors = errs[0]
	}
	return e
}

// Success writes data with status 200, or an ok message without data.
func Success(w http.ResponseWriter, data ...any) {
	if len(data) > 0 && data[0] != nil {
		writeJSON(w, http.StatusOK, data[0])
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "ok"})
}

// Fail writes r. A nil r is an internal server error.
func Fail(w http.ResponseWriter, r *Exception) {
	if r == nil {
		r = InternalServer(ecode.Text(ecode.ServerErr))
	}
	status := r.Status
	if status == 0 {
		status = http.StatusBadRequest
	}
	if r.Code == 0 {
		r.Code = ecode.RequestErr
	}
	if r.Message == "" {
		r.Message = ecode.Text(r.Code)
	}
	writeJSON(w, status, r)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
