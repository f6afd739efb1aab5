package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/ecode"
)

func TestParseSkip(t *testing.T) {
	assert.Equal(t, 3, ParseSkip("3"))
	assert.Equal(t, 1, ParseSkip("0"))
	assert.Equal(t, 1, ParseSkip("-4"))
	assert.Equal(t, DefaultSkip, ParseSkip("abc"))
	assert.Equal(t, DefaultSkip, ParseSkip(nil))
}

func TestParseLimit(t *testing.T) {
	assert.Equal(t, 20, ParseLimit("20", DefaultLimit, MaxResultWindow))
	assert.Equal(t, 0, ParseLimit("0", DefaultLimit, MaxResultWindow))
	assert.Equal(t, 0, ParseLimit("-5", DefaultLimit, MaxResultWindow))
	assert.Equal(t, MaxResultWindow, ParseLimit("20000", DefaultLimit, MaxResultWindow))
	assert.Equal(t, DefaultLimit, ParseLimit("ten", DefaultLimit, MaxResultWindow))
	assert.Equal(t, 7, ParseLimit([]string{"3", "7"}, DefaultLimit, MaxResultWindow))
}

func TestParseCursor(t *testing.T) {
	c, err := ParseCursor(cursor.Begin, "page.cursor")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.IsEmpty())

	c, err = ParseCursor("  ", "page.cursor")
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = ParseCursor("not*base64", "page.cursor")
	require.Error(t, err)
	e, ok := ecode.As(err)
	require.True(t, ok)
	assert.Equal(t, "page.cursor", e.Field)
	assert.Equal(t, "not*base64", e.Input)
	assert.Equal(t, ecode.CursorErr, e.Code)
}
