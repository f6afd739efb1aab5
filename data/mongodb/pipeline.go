package mongodb

import (
	"go.mongodb.org/mongo-driver/bson"

	"github.com/ncobase/geocontent/query"
)

// Relation describes a populatable reference. Many relations hold a list
// of foreign keys in LocalField and populate a list; others populate a
// single document or null.
type Relation struct {
	From         string
	LocalField   string
	ForeignField string
	Many         bool
	// Schema coerces filter values of the populated collection.
	Schema Schema
}

// Relations maps a full population path, such as "owner" or "owner.team",
// to its relation.
type Relations map[string]Relation

// LookupStages renders the population tree as aggregation stages.
// Nodes without a registered relation are skipped.
func LookupStages(nodes []query.PopulationNode, relations Relations) (bson.A, error) {
	return lookupStages(nodes, relations, "")
}

func lookupStages(nodes []query.PopulationNode, relations Relations, prefix string) (bson.A, error) {
	var stages bson.A
	for _, n := range nodes {
		full := prefix + n.Path
		rel, ok := relations[full]
		if !ok {
			continue
		}

		pipeline, err := relationPipeline(n, rel, relations, full+".")
		if err != nil {
			return nil, err
		}

		stages = append(stages, bson.D{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: rel.From},
			{Key: "let", Value: bson.D{{Key: "local", Value: "$" + rel.LocalField}}},
			{Key: "pipeline", Value: pipeline},
			{Key: "as", Value: n.Path},
		}}})
		if !rel.Many {
			stages = append(stages, bson.D{{Key: "$unwind", Value: bson.D{
				{Key: "path", Value: "$" + n.Path},
				{Key: "preserveNullAndEmptyArrays", Value: true},
			}}})
		}
	}
	return stages, nil
}

func relationPipeline(n query.PopulationNode, rel Relation, relations Relations, prefix string) (bson.A, error) {
	join := bson.M{"$eq": bson.A{"$" + rel.ForeignField, "$$local"}}
	if rel.Many {
		join = bson.M{"$in": bson.A{"$" + rel.ForeignField, bson.M{"$ifNull": bson.A{"$$local", bson.A{}}}}}
	}
	pipeline := bson.A{bson.D{{Key: "$match", Value: bson.M{"$expr": join}}}}

	if len(n.Filter) > 0 {
		filter, err := BuildFilter(n.Filter.Condition(), rel.Schema)
		if err != nil {
			return nil, err
		}
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: filter}})
	}
	if sort := SortDoc(n.Sort); sort != nil {
		pipeline = append(pipeline, bson.D{{Key: "$sort", Value: sort}})
	}

	children, err := lookupStages(n.Children, relations, prefix)
	if err != nil {
		return nil, err
	}
	pipeline = append(pipeline, children...)

	if proj := Projection(n.Select, childPaths(n.Children)...); proj != nil {
		pipeline = append(pipeline, bson.D{{Key: "$project", Value: proj}})
	}
	return pipeline, nil
}

func childPaths(nodes []query.PopulationNode) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Path)
	}
	return out
}
