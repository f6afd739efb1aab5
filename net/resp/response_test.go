package resp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncobase/geocontent/ecode"
)

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w, map[string]any{"total": 3})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"total":3}`, w.Body.String())
}

func TestSuccessMessage(t *testing.T) {
	w := httptest.NewRecorder()
	Success(w)
	assert.JSONEq(t, `{"message":"ok"}`, w.Body.String())
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   int
	}{
		{"filter", ecode.NewValidation(ecode.FilterErr, "filter", "age=>", "unrecognized filter expression"), http.StatusBadRequest, ecode.FilterErr},
		{"cursor", ecode.WrapValidation(ecode.CursorErr, "cursor", "zz", errors.New("bad base64")), http.StatusBadRequest, ecode.CursorErr},
		{"config", ecode.NewConfig("rank", "sort path is absent"), http.StatusInternalServerError, ecode.ConfigErr},
		{"store", fmt.Errorf("list: %w", ecode.WrapStore("find", errors.New("connection reset"))), http.StatusServiceUnavailable, ecode.ServiceUnavailable},
		{"plain", errors.New("boom"), http.StatusInternalServerError, ecode.ServerErr},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			Fail(w, FromError(tt.err))

			assert.Equal(t, tt.status, w.Code)
			var body Exception
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.code, body.Code)
			assert.NotEmpty(t, body.Message)
		})
	}
}

func TestFromErrorExposesValidationInput(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, FromError(ecode.NewValidation(ecode.FilterErr, "filter", "age=>", "unrecognized filter expression")))

	var body struct {
		Errors map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "filter", body.Errors["field"])
	assert.Equal(t, "age=>", body.Errors["input"])
}

func TestFailNil(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Nil(t, FromError(nil))
}

func TestFailDefaults(t *testing.T) {
	w := httptest.NewRecorder()
	Fail(w, &Exception{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"code":-400,"message":"`+ecode.Text(ecode.RequestErr)+`"}`, w.Body.String())
}
