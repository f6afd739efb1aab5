package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/ncobase/geocontent/query"
)

func TestLookupStages(t *testing.T) {
	relations := Relations{
		"owner":      {From: "users", LocalField: "owner", ForeignField: "_id"},
		"owner.team": {From: "teams", LocalField: "team", ForeignField: "_id", Many: true},
	}
	nodes := []query.PopulationNode{{
		Path:   "owner",
		Select: query.FieldMask{"name": 1},
		Filter: query.FilterTree{{Key: "tenant", Op: query.OpEq, Value: "t1"}},
		Children: []query.PopulationNode{
			{Path: "team", Sort: query.SortMask{{Path: "name", Order: 1}}},
		},
	}, {
		Path: "unknown",
	}}

	got, err := LookupStages(nodes, relations)
	require.NoError(t, err)

	assert.Equal(t, bson.A{
		bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "users"},
			{Key: "let", Value: bson.D{{Key: "local", Value: "$owner"}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$eq": bson.A{"$_id", "$$local"}}}}},
				bson.D{{Key: "$match", Value: bson.M{"tenant": bson.M{"$eq": "t1"}}}},
				bson.D{{Key: "$lookup", Value: bson.D{
					{Key: "from", Value: "teams"},
					{Key: "let", Value: bson.D{{Key: "local", Value: "$team"}}},
					{Key: "pipeline", Value: bson.A{
						bson.D{{Key: "$match", Value: bson.M{"$expr": bson.M{"$in": bson.A{
							"$_id", bson.M{"$ifNull": bson.A{"$$local", bson.A{}}},
						}}}}},
						bson.D{{Key: "$sort", Value: bson.D{{Key: "name", Value: 1}}}},
					}},
					{Key: "as", Value: "team"},
				}}},
				bson.D{{Key: "$project", Value: bson.M{"name": 1, "team": 1}}},
			}},
			{Key: "as", Value: "owner"},
		}}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$owner"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}, got)
}

func TestFindPipeline(t *testing.T) {
	c := NewCollection(nil, WithRelations(Relations{
		"owner": {From: "users", LocalField: "owner", ForeignField: "_id"},
	}))

	got, err := c.findPipeline(bson.M{}, pagingQuery())
	require.NoError(t, err)
	require.Len(t, got, 7)
	assert.Equal(t, bson.D{{Key: "$skip", Value: int64(20)}}, got[2])
	assert.Equal(t, bson.D{{Key: "$limit", Value: int64(10)}}, got[3])
	assert.Equal(t, bson.D{{Key: "$project", Value: bson.M{"title": 1, "owner": 1}}}, got[6])
}

func TestFacetPipeline(t *testing.T) {
	got := FacetPipeline(bson.M{"tenant": "t1"}, "type")
	require.Len(t, got, 3)
	assert.Equal(t, bson.D{{Key: "$group", Value: bson.D{
		{Key: "_id", Value: "$type"},
		{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
	}}}, got[2])
}

func TestNormalize(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	got := Normalize(bson.M{
		"_id":        id,
		"created_at": primitive.NewDateTimeFromTime(at),
		"owner":      bson.M{"_id": id, "tags": bson.A{"a", bson.D{{Key: "k", Value: "v"}}}},
	})

	assert.Equal(t, id.Hex(), got["_id"])
	assert.Equal(t, at, got["created_at"])
	assert.Equal(t, map[string]any{
		"_id":  id.Hex(),
		"tags": []any{"a", map[string]any{"k": "v"}},
	}, got["owner"])
}
