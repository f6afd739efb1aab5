package query

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/ecode"
)

func TestParseDefaults(t *testing.T) {
	o, err := NewParser(nil).ParseQuery("")
	require.NoError(t, err)

	assert.Equal(t, DefaultSkip, o.Skip)
	assert.Equal(t, DefaultLimit, o.Limit)
	assert.Nil(t, o.Cursor)
	assert.False(t, o.CursorMode())
	assert.Empty(t, o.Filter)
	assert.Empty(t, o.Sort)
}

func TestParseFullQuery(t *testing.T) {
	raw := "select=name,-secret,owner.email&sort=-rank&filter=age>=5,tag==a;b&search=%20park%20" +
		"&populate=owner&page[number]=3&page[size]=20"

	o, err := NewParser(nil).ParseQuery(raw)
	require.NoError(t, err)

	assert.Equal(t, FieldMask{"name": 1, "secret": 0}, o.Select)
	assert.Equal(t, SortMask{{Path: "rank", Order: -1}}, o.Sort)
	assert.Equal(t, FilterTree{
		{Key: "age", Op: OpGte, Value: "5"},
		{Key: "tag", Op: OpIn, Value: []string{"a", "b"}},
	}, o.Filter)
	assert.Equal(t, "park", o.Search)
	assert.Equal(t, 3, o.Skip)
	assert.Equal(t, 20, o.Limit)
	assert.Equal(t, 40, o.Offset())
	require.Len(t, o.Populate, 1)
	assert.Equal(t, FieldMask{"email": 1}, o.Populate[0].Select)
}

func TestParseLimitBounds(t *testing.T) {
	p := NewParser(&Config{MaxResultWindow: 50})

	o, err := p.ParseQuery("page[size]=500")
	require.NoError(t, err)
	assert.Equal(t, 50, o.Limit)

	o, err = p.ParseQuery("page[size]=-1&page[number]=0")
	require.NoError(t, err)
	assert.Equal(t, 0, o.Limit)
	assert.Equal(t, 1, o.Skip)

	o, err = p.ParseQuery("")
	require.NoError(t, err)
	assert.Equal(t, 50, o.Limit)
}

func TestParseRenamedKeys(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keys[DirectiveFilter] = "where"

	o, err := NewParser(cfg).ParseQuery("where=a==1&filter=b==2")
	require.NoError(t, err)
	assert.Equal(t, FilterTree{{Key: "a", Op: OpEq, Value: "1"}}, o.Filter)
}

func TestParsePredefinedFilters(t *testing.T) {
	tenant := FilterClause{Key: "tenant", Op: OpEq, Value: "t1"}
	p := NewParser(nil)

	o, err := p.ParseQuery("filter=a==1",
		WithPredefined(tenant, FilterClause{Key: "owner", Op: OpEq, Value: ""}))
	require.NoError(t, err)
	assert.Equal(t, FilterTree{{Key: "a", Op: OpEq, Value: "1"}, tenant}, o.Filter)

	// Client input cannot drop a predefined clause.
	o, err = p.ParseQuery("filter=tenant!=t1", WithPredefined(tenant))
	require.NoError(t, err)
	assert.True(t, o.Filter.Contains(tenant))

	// Excluding the filter directive still applies predefined clauses.
	o, err = p.ParseQuery("filter=a==1&sort=name", WithPredefined(tenant), WithExclude(DirectiveFilter))
	require.NoError(t, err)
	assert.Equal(t, FilterTree{tenant}, o.Filter)
	assert.Equal(t, SortMask{{Path: "name", Order: 1}}, o.Sort)
}

func TestParsePredefinedWildcardReachesPopulation(t *testing.T) {
	o, err := NewParser(nil).ParseQuery("populate=owner",
		WithPredefined(
			FilterClause{Key: "tenant", Op: OpEq, Value: "t1"},
			FilterClause{Key: "*.tenant", Op: OpEq, Value: "t1"},
		))
	require.NoError(t, err)

	assert.Equal(t, FilterTree{{Key: "tenant", Op: OpEq, Value: "t1"}}, o.Filter)
	require.Len(t, o.Populate, 1)
	assert.Equal(t, FilterTree{{Key: "tenant", Op: OpEq, Value: "t1"}}, o.Populate[0].Filter)
}

func TestParseConfigExclude(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Exclude = []Directive{DirectiveSearch}

	o, err := NewParser(cfg).ParseQuery("search=park")
	require.NoError(t, err)
	assert.Empty(t, o.Search)
}

func TestParseGrammarError(t *testing.T) {
	_, err := NewParser(nil).ParseQuery("filter=age>5,name")
	require.Error(t, err)
	assert.True(t, ecode.IsValidation(err))
}

func TestParseCursorSentinel(t *testing.T) {
	o, err := NewParser(nil).ParseQuery("sort=name&page[cursor]=-1")
	require.NoError(t, err)
	require.NotNil(t, o.Cursor)
	assert.True(t, o.CursorMode())
	assert.True(t, o.Cursor.IsEmpty())
}

func TestParseCursorMustMatchSort(t *testing.T) {
	record := map[string]any{"_id": "1", "name": "b", "rank": 2}

	forward, err := cursor.Encode("1", []cursor.Key{{Path: "name", Order: 1}}, record, false)
	require.NoError(t, err)
	backward, err := cursor.Encode("1", []cursor.Key{{Path: "name", Order: 1}}, record, true)
	require.NoError(t, err)

	p := NewParser(nil)

	o, err := p.ParseQuery("sort=name&page[cursor]=" + url.QueryEscape(forward))
	require.NoError(t, err)
	assert.Equal(t, "1", o.Cursor.ID)

	o, err = p.ParseQuery("sort=name&page[cursor]=" + url.QueryEscape(backward))
	require.NoError(t, err)
	assert.True(t, o.Cursor.Reverse)

	for _, sort := range []string{"-name", "rank", "name,rank"} {
		t.Run(sort, func(t *testing.T) {
			_, err := p.ParseQuery("sort=" + sort + "&page[cursor]=" + url.QueryEscape(forward))
			require.Error(t, err)

			e, ok := ecode.As(err)
			require.True(t, ok)
			assert.Equal(t, ecode.CursorErr, e.Code)
			assert.Equal(t, "page.cursor", e.Field)
			assert.Equal(t, forward, e.Input)
		})
	}
}

func TestParseMalformedCursor(t *testing.T) {
	_, err := NewParser(nil).ParseQuery("page[cursor]=bm90IGpzb24")
	require.Error(t, err)
	assert.True(t, ecode.IsValidation(err))
}
