package paging

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ncobase/geocontent/cursor"
	"github.com/ncobase/geocontent/query"
)

func linkQuery(t *testing.T, link string) url.Values {
	t.Helper()
	u, err := url.Parse(link)
	require.NoError(t, err)
	return u.Query()
}

func TestBuildLinksOffsetMode(t *testing.T) {
	values, err := url.ParseQuery("sort=rank&page[number]=2&page[size]=10")
	require.NoError(t, err)
	o := query.Options{Skip: 2, Limit: 10, Sort: query.SortMask{{Path: "rank", Order: 1}}}
	r := &Result[Record]{Total: 25, NextCursor: "abc"}

	l := BuildLinks("/v1/layers", values, query.DefaultConfig(), o, r)

	assert.Equal(t, "2", linkQuery(t, l.Self).Get("page[number]"))
	assert.Equal(t, "1", linkQuery(t, l.First).Get("page[number]"))
	assert.Equal(t, "1", linkQuery(t, l.Prev).Get("page[number]"))
	assert.Equal(t, "3", linkQuery(t, l.Last).Get("page[number]"))

	next := linkQuery(t, l.Next)
	assert.Equal(t, "abc", next.Get("page[cursor]"))
	assert.Empty(t, next.Get("page[number]"))
	assert.Equal(t, "rank", next.Get("sort"))
}

func TestBuildLinksCursorMode(t *testing.T) {
	values, err := url.ParseQuery("page.cursor=xyz&page.size=10")
	require.NoError(t, err)
	o := query.Options{Skip: 1, Limit: 10, Cursor: &cursor.Cursor{ID: "r10"}}
	r := &Result[Record]{Total: 25, NextCursor: "n", PrevCursor: "p"}

	l := BuildLinks("/v1/layers?tenant=t1", values, nil, o, r)

	first := linkQuery(t, l.First)
	assert.Equal(t, cursor.Begin, first.Get("page[cursor]"))
	assert.Empty(t, first.Get("page.cursor"))
	assert.Equal(t, "t1", first.Get("tenant"))
	assert.Equal(t, "p", linkQuery(t, l.Prev).Get("page[cursor]"))
	assert.Equal(t, "n", linkQuery(t, l.Next).Get("page[cursor]"))
	assert.Empty(t, l.Last)
}

func TestBracketKey(t *testing.T) {
	assert.Equal(t, "page[cursor]", bracketKey("page.cursor"))
	assert.Equal(t, "a[b][c]", bracketKey("a.b.c"))
	assert.Equal(t, "sort", bracketKey("sort"))
}
