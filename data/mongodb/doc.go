// Package mongodb adapts mongo collections to paging.Collection.
//
// Filters render to query documents, population to $lookup stages, and
// facets to $group aggregations. MongoManager routes reads across replicas:
//
//	m, err := mongodb.NewMongoManager(ctx, cfg.MongoDB)
//	layers := mongodb.NewCollection(m.Reader(cfg.MongoDB.Database, "layers"),
//	    mongodb.WithSchema(mongodb.Schema{"_id": mongodb.ObjectID, "created_at": mongodb.Date}),
//	    mongodb.WithRelations(mongodb.Relations{
//	        "owner": {From: "users", LocalField: "owner", ForeignField: "_id"},
//	    }))
package mongodb
