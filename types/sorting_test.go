package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	day := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		a, b any
		want int
		ok   bool
	}{
		{"strings", "a", "b", -1, true},
		{"numeric strings stay lexical", "10", "9", -1, true},
		{"int vs float", 3, 2.5, 1, true},
		{"int vs numeric string", 5, "10", -1, true},
		{"string vs int", "10", 5, 1, true},
		{"json number", json.Number("7"), int64(7), 0, true},
		{"bool vs string", true, "false", 1, true},
		{"time vs string", day, "2024-05-01T00:00:00Z", 0, true},
		{"nil first", nil, 0, -1, true},
		{"both nil", nil, nil, 0, true},
		{"incomparable", "a", []any{1}, 0, false},
		{"number vs word", 1, "abc", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Compare(tt.a, tt.b)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDynamicSorter(t *testing.T) {
	data := []JSON{
		{"name": "b", "rank": 1},
		{"name": "a", "rank": 2},
		{"name": "c", "rank": 1},
	}
	sorter := &DynamicSorter{
		Data: data,
		Getter: func(item JSON, field string) (any, error) {
			v, _ := Lookup(item, field)
			return v, nil
		},
	}

	err := sorter.Sort(MultiCriteria{Criteria: []Criterion{
		{Field: "rank", Order: Ascending},
		{Field: "name", Order: Descending},
	}})

	assert.NoError(t, err)
	assert.Equal(t, []any{"c", "b", "a"}, []any{data[0]["name"], data[1]["name"], data[2]["name"]})
}

func TestLookup(t *testing.T) {
	doc := JSON{"owner": map[string]any{"team": map[string]any{"name": "maps", "lead": nil}}}

	v, ok := Lookup(doc, "owner.team.name")
	assert.True(t, ok)
	assert.Equal(t, "maps", v)

	v, ok = Lookup(doc, "owner.team.lead")
	assert.True(t, ok)
	assert.Nil(t, v)

	_, ok = Lookup(doc, "owner.missing")
	assert.False(t, ok)

	_, ok = Lookup(doc, "")
	assert.False(t, ok)
}

func TestDeleteAndSet(t *testing.T) {
	doc := JSON{"rank": 1, "geo": map[string]any{"zone": "a", "lat": 1.5}}

	Delete(doc, "geo.zone")
	Delete(doc, "rank")
	Delete(doc, "missing.path")
	assert.Equal(t, JSON{"geo": map[string]any{"lat": 1.5}}, doc)

	Set(doc, "geo.zone", "b")
	Set(doc, "owner.team.name", "maps")
	assert.Equal(t, JSON{
		"geo":   map[string]any{"lat": 1.5, "zone": "b"},
		"owner": map[string]any{"team": map[string]any{"name": "maps"}},
	}, doc)
}
