package commands

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncobase/geocontent/cursor"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := run(t, "parse", "--tenant", "t1", "filter=status==draft;published&sort=-name&page[size]=5")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.EqualValues(t, 5, got["limit"])
	assert.EqualValues(t, 1, got["skip"])

	filter, ok := got["filter"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"in": []any{"draft", "published"}}, filter["status"])
	assert.Equal(t, map[string]any{"eq": "t1"}, filter["tenant"])
	assert.NotContains(t, filter, "*.tenant")
}

func TestParseCommandExclude(t *testing.T) {
	out, err := run(t, "parse", "-x", "sort", "sort=-name")
	require.NoError(t, err)
	assert.NotContains(t, out, `"sort"`)
}

func TestParseCommandInvalid(t *testing.T) {
	_, err := run(t, "parse", "filter=name=>x")
	assert.Error(t, err)
}

func TestCursorRoundTrip(t *testing.T) {
	out, err := run(t, "cursor", "encode", "--id", "42", "--sort", "name,-rank", "--record", `{"name":"depot","rank":3}`)
	require.NoError(t, err)
	token := strings.TrimSpace(out)

	c, err := cursor.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "42", c.ID)
	require.Len(t, c.Sort, 2)
	assert.Equal(t, "name", c.Sort[0].Path)
	assert.Equal(t, -1, c.Sort[1].Order)

	out, err = run(t, "cursor", "decode", token)
	require.NoError(t, err)
	assert.Contains(t, out, `"depot"`)
}

func TestCursorEncodeMissingPath(t *testing.T) {
	_, err := run(t, "cursor", "encode", "--id", "1", "--sort", "rank", "--record", `{"name":"x"}`)
	assert.Error(t, err)
}

func TestCursorDecodeInvalid(t *testing.T) {
	_, err := run(t, "cursor", "decode", "%%")
	assert.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "version", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"goVersion"`)
}
