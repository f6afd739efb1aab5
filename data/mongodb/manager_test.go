package mongodb

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncobase/geocontent/data/config"
	"github.com/ncobase/geocontent/paging"
	"github.com/ncobase/geocontent/query"
)

func pagingQuery() paging.FindQuery {
	return paging.FindQuery{
		Select:   query.FieldMask{"title": 1},
		Sort:     query.SortMask{{Path: "title", Order: 1}},
		Populate: []query.PopulationNode{{Path: "owner"}},
		Offset:   20,
		Limit:    10,
	}
}

func TestNewMongoManagerInvalidConfig(t *testing.T) {
	ctx := context.Background()

	_, err := NewMongoManager(ctx, nil)
	assert.Error(t, err)

	_, err = NewMongoManager(ctx, &config.MongoDB{})
	assert.Error(t, err)

	_, err = NewMongoManager(ctx, &config.MongoDB{Master: &config.MongoNode{}})
	assert.Error(t, err)

	_, err = NewMongoManager(ctx, &config.MongoDB{
		Master:   &config.MongoNode{URI: "mongodb://localhost:27017"},
		Strategy: "fastest",
	})
	assert.ErrorIs(t, err, ErrInvalidStrategy)
}

func TestBalancers(t *testing.T) {
	a, b := &mongo.Client{}, &mongo.Client{}
	clients := []*mongo.Client{a, b}

	rr := NewMongoRoundRobinBalancer()
	first, err := rr.Next(clients)
	require.NoError(t, err)
	second, err := rr.Next(clients)
	require.NoError(t, err)
	assert.NotSame(t, first, second)

	wb := NewMongoWeightBalancer([]*config.MongoNode{{Weight: 3}, {Weight: 0}})
	picks := map[*mongo.Client]int{}
	for i := 0; i < 4; i++ {
		c, err := wb.Next(clients)
		require.NoError(t, err)
		picks[c]++
	}
	assert.Equal(t, 3, picks[a])
	assert.Equal(t, 1, picks[b])

	_, err = (&MongoRandomBalancer{}).Next(nil)
	assert.ErrorIs(t, err, ErrNoAvailableSlaves)
}

func lazyClient(t *testing.T) *mongo.Client {
	t.Helper()
	c, err := mongo.Connect(context.Background(), options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Disconnect(context.Background()) })
	return c
}

func TestReaderBalancesEveryRead(t *testing.T) {
	master, a, b := lazyClient(t), lazyClient(t), lazyClient(t)
	down := map[*mongo.Client]bool{}
	m := &MongoManager{
		master:   master,
		slaves:   []*mongo.Client{a, b},
		strategy: NewMongoRoundRobinBalancer(),
		ping: func(_ context.Context, c *mongo.Client) error {
			if down[c] {
				return errors.New("unreachable")
			}
			return nil
		},
	}
	read := m.Reader("geo", "layers")
	ctx := context.Background()

	first, second := read(ctx), read(ctx)
	assert.Equal(t, "layers", first.Name())
	assert.Equal(t, "geo", first.Database().Name())
	assert.NotSame(t, first.Database().Client(), second.Database().Client())

	down[a], down[b] = true, true
	assert.Same(t, master, read(ctx).Database().Client())
	assert.Same(t, master, read(ctx).Database().Client())

	down[a] = false
	picked := map[*mongo.Client]int{}
	for i := 0; i < 4; i++ {
		picked[read(ctx).Database().Client()]++
	}
	assert.Equal(t, 2, picked[a])
	assert.Equal(t, 2, picked[master])

	// a slave set replaced by a health check applies to the next read
	m.slaves = []*mongo.Client{b}
	down[b] = false
	assert.Same(t, b, read(ctx).Database().Client())
}
