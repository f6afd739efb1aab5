package mongodb

import (
	"context"

	"github.com/spf13/cast"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncobase/geocontent/paging"
	"github.com/ncobase/geocontent/query"
)

// Source resolves the mongo collection serving one read.
type Source func(ctx context.Context) *mongo.Collection

// Fixed returns a Source that always serves coll.
func Fixed(coll *mongo.Collection) Source {
	return func(context.Context) *mongo.Collection { return coll }
}

// Collection adapts a mongo collection to paging.Collection.
type Collection struct {
	source    Source
	schema    Schema
	relations Relations
}

var _ paging.Collection = (*Collection)(nil)

// CollectionOption configures a Collection.
type CollectionOption func(*Collection)

// WithSchema sets the field types used to coerce filter values.
func WithSchema(s Schema) CollectionOption {
	return func(c *Collection) { c.schema = s }
}

// WithRelations sets the relations available to population.
func WithRelations(r Relations) CollectionOption {
	return func(c *Collection) { c.relations = r }
}

// NewCollection reads through source, resolved again on every read.
func NewCollection(source Source, opts ...CollectionOption) *Collection {
	c := &Collection{source: source, schema: Schema{}, relations: Relations{}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Find reads q with find, or with an aggregation when q populates
// relations.
func (c *Collection) Find(ctx context.Context, q paging.FindQuery) ([]paging.Record, error) {
	filter, err := BuildFilter(q.Where, c.schema)
	if err != nil {
		return nil, err
	}

	var cur *mongo.Cursor
	if len(q.Populate) == 0 {
		opts := options.Find().SetSkip(int64(q.Offset))
		if q.Limit > 0 {
			opts.SetLimit(int64(q.Limit))
		}
		if proj := Projection(q.Select); proj != nil {
			opts.SetProjection(proj)
		}
		if sort := SortDoc(q.Sort); sort != nil {
			opts.SetSort(sort)
		}
		cur, err = c.source(ctx).Find(ctx, filter, opts)
	} else {
		var pipeline bson.A
		pipeline, err = c.findPipeline(filter, q)
		if err != nil {
			return nil, err
		}
		cur, err = c.source(ctx).Aggregate(ctx, pipeline)
	}
	if err != nil {
		return nil, err
	}
	return decodeAll(ctx, cur)
}

func (c *Collection) findPipeline(filter bson.M, q paging.FindQuery) (bson.A, error) {
	pipeline := bson.A{bson.D{{Key: "$match", Value: filter}}}
	if sort := SortDoc(q.Sort); sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}
	if q.Offset > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: int64(q.Offset)}})
	}
	if q.Limit > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$limit", Value: int64(q.Limit)}})
	}

	lookups, err := LookupStages(q.Populate, c.relations)
	if err != nil {
		return nil, err
	}
	pipeline = append(pipeline, lookups...)

	if proj := Projection(q.Select, childPaths(q.Populate)...); proj != nil {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: proj}})
	}
	return pipeline, nil
}

// Count counts the documents matching where.
func (c *Collection) Count(ctx context.Context, where query.Condition) (int64, error) {
	filter, err := BuildFilter(where, c.schema)
	if err != nil {
		return 0, err
	}
	return c.source(ctx).CountDocuments(ctx, filter)
}

// Aggregate groups the documents matching where by field; array fields
// are unwound first.
func (c *Collection) Aggregate(ctx context.Context, where query.Condition, field string) ([]paging.Bucket, error) {
	filter, err := BuildFilter(where, c.schema)
	if err != nil {
		return nil, err
	}
	cur, err := c.source(ctx).Aggregate(ctx, FacetPipeline(filter, field))
	if err != nil {
		return nil, err
	}
	rows, err := decodeAll(ctx, cur)
	if err != nil {
		return nil, err
	}

	out := make([]paging.Bucket, 0, len(rows))
	for _, row := range rows {
		out = append(out, paging.Bucket{Value: row["_id"], Count: cast.ToInt64(row["count"])})
	}
	return out, nil
}

// FacetPipeline groups the documents matching filter by field.
func FacetPipeline(filter bson.M, field string) bson.A {
	return bson.A{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + field},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$" + field},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}
}

func decodeAll(ctx context.Context, cur *mongo.Cursor) ([]paging.Record, error) {
	defer cur.Close(ctx)
	var docs []bson.M
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]paging.Record, 0, len(docs))
	for _, d := range docs {
		out = append(out, Normalize(d))
	}
	return out, nil
}
