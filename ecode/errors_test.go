package ecode

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessage(t *testing.T) {
	err := NewValidation(FilterErr, "filter", "age=>5", "unrecognized filter expression")
	assert.Equal(t, `filter: unrecognized filter expression ("age=>5")`, err.Error())

	wrapped := WrapValidation(CursorErr, "page.cursor", "zz", errors.New("illegal base64 data"))
	assert.Equal(t, `page.cursor: Invalid pagination cursor ("zz"): illegal base64 data`, wrapped.Error())
}

func TestKinds(t *testing.T) {
	cause := errors.New("connection refused")
	store := fmt.Errorf("list layers: %w", WrapStore("count", cause))

	assert.True(t, IsStore(store))
	assert.False(t, IsValidation(store))
	assert.ErrorIs(t, store, cause)

	assert.True(t, IsConfig(NewConfig("rank", "sort path is absent")))
	assert.True(t, IsValidation(NewValidation(ParamErr, "facets", "name", "invalid")))
	assert.False(t, IsConfig(errors.New("plain")))

	e, ok := As(store)
	assert.True(t, ok)
	assert.Equal(t, "count", e.Field)
	assert.Equal(t, "store", e.Kind.String())
}

func TestToHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(FilterErr))
	assert.Equal(t, http.StatusServiceUnavailable, ToHTTPStatus(ServiceUnavailable))
	assert.Equal(t, http.StatusInternalServerError, ToHTTPStatus(-599))
	assert.Equal(t, http.StatusBadRequest, ToHTTPStatus(-499))
	assert.Equal(t, http.StatusOK, ToHTTPStatus(OK))
}

func TestRegister(t *testing.T) {
	Register(-460, "Tile not found")
	assert.Equal(t, "Tile not found", Text(-460))
}
