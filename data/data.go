package data

import (
	"context"
	"errors"
	"sync"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"

	"github.com/ncobase/geocontent/data/config"
	"github.com/ncobase/geocontent/data/meilisearch"
	"github.com/ncobase/geocontent/data/mongodb"
	rdb "github.com/ncobase/geocontent/data/redis"
	"github.com/ncobase/geocontent/logging/logger"
)

// ProviderSet is the wire provider set for data connections.
var ProviderSet = wire.NewSet(New)

// Connections holds the store clients of a running service.
type Connections struct {
	Mongo  *mongodb.MongoManager
	Redis  *redis.Client
	Search *meilisearch.Client

	conf   *config.Config
	closed bool
	mu     sync.Mutex
}

// New connects every configured store. MongoDB is required, Redis and
// Meilisearch are optional and skipped with a warning when unreachable.
func New(ctx context.Context, conf *config.Config) (*Connections, func(), error) {
	if conf == nil || conf.MongoDB == nil {
		return nil, nil, errors.New("data: mongodb configuration is required")
	}
	c := &Connections{conf: conf}

	var err error
	c.Mongo, err = mongodb.NewMongoManager(ctx, conf.MongoDB)
	if err != nil {
		return nil, nil, err
	}

	if conf.Redis != nil && conf.Redis.Addr != "" {
		if c.Redis, err = rdb.NewClient(ctx, conf.Redis); err != nil {
			logger.Warnf(ctx, "redis unavailable, known values are not cached: %v", err)
		}
	}

	if conf.Meilisearch != nil && conf.Meilisearch.Host != "" {
		if c.Search, err = meilisearch.Connect(ctx, conf.Meilisearch); err != nil {
			logger.Warnf(ctx, "meilisearch unavailable, search falls back to the store: %v", err)
		}
	}

	cleanup := func() {
		for _, err := range c.Close(context.Background()) {
			logger.Errorf(context.Background(), "close data connections: %v", err)
		}
	}
	return c, cleanup, nil
}

// Collection returns a read source over a collection of the content
// database, resolved against the balanced slaves per read.
func (c *Connections) Collection(name string) mongodb.Source {
	return c.Mongo.Reader(c.conf.MongoDB.Database, name)
}

// Searcher returns a searcher over the index of collection, or nil when
// Meilisearch is not connected.
func (c *Connections) Searcher(collection string) *meilisearch.Searcher {
	if c.Search == nil {
		return nil
	}
	return meilisearch.NewSearcher(c.Search, c.conf.Meilisearch.IndexFor(collection), "")
}

// Ping checks the document store.
func (c *Connections) Ping(ctx context.Context) error {
	if c.Mongo == nil {
		return errors.New("data: mongodb is not connected")
	}
	return c.Mongo.Health(ctx)
}

// Close closes all data connections
func (c *Connections) Close(ctx context.Context) (errs []error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, errors.New("redis close error: "+err.Error()))
		}
		c.Redis = nil
	}

	if c.Mongo != nil {
		if err := c.Mongo.Close(ctx); err != nil {
			errs = append(errs, errors.New("mongodb close error: "+err.Error()))
		}
		c.Mongo = nil
	}

	c.Search = nil
	c.closed = true

	return errs
}
