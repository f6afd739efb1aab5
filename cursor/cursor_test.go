package cursor

import (
	"encoding/base64"
	"testing"

	"github.com/ncobase/geocontent/ecode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeWireFormat(t *testing.T) {
	record := map[string]any{"_id": "abc", "name": "<Oslo>", "rank": 3}
	token, err := Encode("abc", []Key{{Path: "name", Order: 1}, {Path: "rank", Order: -1}}, record, false)
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(token)
	require.NoError(t, err)
	assert.Equal(t, `{"id":"abc","sort":{"name":["<Oslo>",1],"rank":[3,-1]},"reverse":false}`, string(raw))
}

func TestRoundTrip(t *testing.T) {
	record := map[string]any{
		"name":  "layer",
		"stats": map[string]any{"views": 12, "score": 0.5},
		"live":  true,
	}
	spec := []Key{{Path: "stats.views", Order: -1}, {Path: "name", Order: 1}, {Path: "stats.score", Order: 1}, {Path: "live", Order: 1}}

	for _, reverse := range []bool{false, true} {
		token, err := Encode("id-7", spec, record, reverse)
		require.NoError(t, err)

		c, err := Decode(token)
		require.NoError(t, err)

		sign := 1
		if reverse {
			sign = -1
		}
		assert.Equal(t, &Cursor{
			ID: "id-7",
			Sort: Fields{
				{Path: "stats.views", Value: int64(12), Order: -1 * sign},
				{Path: "name", Value: "layer", Order: 1 * sign},
				{Path: "stats.score", Value: 0.5, Order: 1 * sign},
				{Path: "live", Value: true, Order: 1 * sign},
			},
			Reverse: reverse,
		}, c)
		assert.True(t, c.Matches(spec))
	}
}

func TestEncodeMissingPath(t *testing.T) {
	_, err := Encode("x", []Key{{Path: "owner.name", Order: 1}}, map[string]any{"owner": map[string]any{}}, false)
	require.Error(t, err)
	assert.True(t, ecode.IsConfig(err))
	e, _ := ecode.As(err)
	assert.Equal(t, "owner.name", e.Field)
}

func TestDecodeSpecialTokens(t *testing.T) {
	c, err := Decode("   ")
	assert.NoError(t, err)
	assert.Nil(t, c)

	c, err = Decode(Begin)
	assert.NoError(t, err)
	require.NotNil(t, c)
	assert.True(t, c.IsEmpty())
}

func TestDecodeMalformed(t *testing.T) {
	tokens := []string{
		"%%%not-base64",
		base64.StdEncoding.EncodeToString([]byte("not json")),
		base64.StdEncoding.EncodeToString([]byte(`{"id":"a","sort":{"name":["x"]}}`)),
		base64.StdEncoding.EncodeToString([]byte(`{"id":"a","sort":{"name":["x",2]}}`)),
		base64.StdEncoding.EncodeToString([]byte(`{"sort":{}}`)),
	}
	for _, token := range tokens {
		_, err := Decode(token)
		require.Error(t, err, token)
		assert.True(t, ecode.IsValidation(err), token)
		e, _ := ecode.As(err)
		assert.Equal(t, token, e.Input)
	}
}

func TestMatches(t *testing.T) {
	token, err := Encode("a", []Key{{Path: "name", Order: 1}}, map[string]any{"name": "n"}, false)
	require.NoError(t, err)
	c, err := Decode(token)
	require.NoError(t, err)

	assert.True(t, c.Matches([]Key{{Path: "name", Order: 1}}))
	assert.False(t, c.Matches([]Key{{Path: "name", Order: -1}}))
	assert.False(t, c.Matches([]Key{{Path: "other", Order: 1}}))
	assert.False(t, c.Matches(nil))

	reversed, err := Encode("a", []Key{{Path: "name", Order: 1}}, map[string]any{"name": "n"}, true)
	require.NoError(t, err)
	rc, err := Decode(reversed)
	require.NoError(t, err)
	assert.Equal(t, -1, rc.Sort[0].Order)
	assert.True(t, rc.Matches([]Key{{Path: "name", Order: 1}}))
}
