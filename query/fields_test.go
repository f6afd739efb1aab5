package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSelect(t *testing.T) {
	got := ParseSelect("name, -secret,owner.-token,+age,,")
	assert.Equal(t, FieldMask{
		"name":        1,
		"secret":      0,
		"owner.token": 0,
		"age":         1,
	}, got)

	assert.Nil(t, ParseSelect(""))
}

func TestParseSort(t *testing.T) {
	assert.Equal(t, SortMask{
		{Path: "rank", Order: -1},
		{Path: "name", Order: 1},
		{Path: "owner.age", Order: -1},
	}, ParseSort("-rank,name,owner.-age"))

	// A repeated path keeps its first position and its last order.
	assert.Equal(t, SortMask{
		{Path: "a", Order: -1},
		{Path: "b", Order: 1},
	}, ParseSort([]string{"a,b", "-a"}))
}

func TestSortMaskMarshalJSON(t *testing.T) {
	data, err := ParseSort("-rank,name").MarshalJSON()
	assert.NoError(t, err)
	assert.Equal(t, `{"rank":-1,"name":1}`, string(data))
}
