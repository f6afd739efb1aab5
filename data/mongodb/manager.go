package mongodb

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ncobase/geocontent/data/config"
	"github.com/ncobase/geocontent/logging/logger"
)

var (
	// ErrNoAvailableSlaves is returned by a balancer with no nodes.
	ErrNoAvailableSlaves = errors.New("no available slave databases")
	// ErrInvalidStrategy is returned for an unknown balance strategy.
	ErrInvalidStrategy = errors.New("invalid load balance strategy")
)

// MongoManager routes reads to slaves and writes to the master.
type MongoManager struct {
	master   *mongo.Client
	slaves   []*mongo.Client
	strategy MongoLoadBalancer
	ping     func(ctx context.Context, c *mongo.Client) error
	mutex    sync.RWMutex
}

// NewMongoManager connects the master and every reachable slave.
func NewMongoManager(ctx context.Context, conf *config.MongoDB) (*MongoManager, error) {
	if conf == nil || conf.Master == nil {
		return nil, errors.New("master mongodb configuration is required")
	}

	strategy, err := newBalancer(conf)
	if err != nil {
		return nil, err
	}

	master, err := newMongoClient(ctx, conf.Master)
	if err != nil {
		return nil, err
	}

	var slaves []*mongo.Client
	for i, slaveCfg := range conf.Slaves {
		slave, err := newMongoClient(ctx, slaveCfg)
		if err != nil {
			logger.Warnf(ctx, "failed to connect to slave mongodb %d: %v", i, err)
			continue
		}
		slaves = append(slaves, slave)
	}

	if len(slaves) == 0 {
		slaves = append(slaves, master)
	}

	return &MongoManager{
		master:   master,
		slaves:   slaves,
		strategy: strategy,
		ping:     pingClient,
	}, nil
}

func newBalancer(conf *config.MongoDB) (MongoLoadBalancer, error) {
	switch conf.Strategy {
	case "round_robin", "":
		return NewMongoRoundRobinBalancer(), nil
	case "random":
		return &MongoRandomBalancer{}, nil
	case "weight":
		return NewMongoWeightBalancer(conf.Slaves), nil
	default:
		return nil, ErrInvalidStrategy
	}
}

// MongoLoadBalancer picks the client serving the next read.
type MongoLoadBalancer interface {
	Next([]*mongo.Client) (*mongo.Client, error)
}

type MongoRoundRobinBalancer struct {
	current *uint64
}

func NewMongoRoundRobinBalancer() *MongoRoundRobinBalancer {
	var counter uint64
	return &MongoRoundRobinBalancer{
		current: &counter,
	}
}

func (rb *MongoRoundRobinBalancer) Next(slaves []*mongo.Client) (*mongo.Client, error) {
	if len(slaves) == 0 {
		return nil, ErrNoAvailableSlaves
	}

	next := atomic.AddUint64(rb.current, 1) % uint64(len(slaves))
	return slaves[next], nil
}

type MongoRandomBalancer struct{}

func (rb *MongoRandomBalancer) Next(slaves []*mongo.Client) (*mongo.Client, error) {
	if len(slaves) == 0 {
		return nil, ErrNoAvailableSlaves
	}

	idx := rand.Intn(len(slaves))
	return slaves[idx], nil
}

type MongoWeightBalancer struct {
	weights []int
	current *uint64
}

func NewMongoWeightBalancer(nodes []*config.MongoNode) *MongoWeightBalancer {
	weights := make([]int, len(nodes))
	for i, node := range nodes {
		weights[i] = node.Weight
		if weights[i] <= 0 {
			weights[i] = 1
		}
	}

	var counter uint64
	return &MongoWeightBalancer{
		weights: weights,
		current: &counter,
	}
}

// Next picks a client by weight. Slaves that failed to connect shift the
// weights, so a weight beyond the slave list falls back to the first one.
func (wb *MongoWeightBalancer) Next(slaves []*mongo.Client) (*mongo.Client, error) {
	if len(slaves) == 0 {
		return nil, ErrNoAvailableSlaves
	}

	totalWeight := 0
	for _, w := range wb.weights {
		totalWeight += w
	}
	if totalWeight == 0 {
		return slaves[0], nil
	}

	next := atomic.AddUint64(wb.current, 1) % uint64(totalWeight)

	var accumulator int
	for i, w := range wb.weights {
		accumulator += w
		if uint64(accumulator) > next && i < len(slaves) {
			return slaves[i], nil
		}
	}

	return slaves[0], nil
}

// Master returns the write client.
func (m *MongoManager) Master() *mongo.Client {
	if m == nil {
		return nil
	}
	return m.master
}

// Slave returns a read client, falling back to the master.
func (m *MongoManager) Slave(ctx context.Context) *mongo.Client {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	if len(m.slaves) == 0 {
		return m.master
	}

	slave, err := m.strategy.Next(m.slaves)
	if err != nil {
		return m.master
	}

	ping := m.ping
	if ping == nil {
		ping = pingClient
	}
	if err := ping(ctx, slave); err != nil {
		return m.master
	}

	return slave
}

func pingClient(ctx context.Context, c *mongo.Client) error {
	return c.Ping(ctx, nil)
}

// GetCollection returns a collection handle; readOnly routes to a slave.
func (m *MongoManager) GetCollection(ctx context.Context, dbName, collName string, readOnly bool) *mongo.Collection {
	if readOnly {
		return m.Slave(ctx).Database(dbName).Collection(collName)
	}
	return m.master.Database(dbName).Collection(collName)
}

// Reader returns a Source that picks a read client on every call, so each
// read is balanced across the healthy slaves.
func (m *MongoManager) Reader(dbName, collName string) Source {
	return func(ctx context.Context) *mongo.Collection {
		return m.GetCollection(ctx, dbName, collName, true)
	}
}

// Health pings every node and drops unhealthy slaves.
func (m *MongoManager) Health(ctx context.Context) error {
	if err := m.master.Ping(ctx, nil); err != nil {
		return fmt.Errorf("master mongodb health check failed: %v", err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	var healthySlaves []*mongo.Client
	for _, slave := range m.slaves {
		if err := slave.Ping(ctx, nil); err != nil {
			logger.Warnf(ctx, "slave mongodb health check failed: %v", err)
			continue
		}
		healthySlaves = append(healthySlaves, slave)
	}

	m.slaves = healthySlaves

	if len(m.slaves) == 0 {
		logger.Warn(ctx, "no healthy slave mongodb available, using master for reads")
		m.slaves = append(m.slaves, m.master)
	}

	return nil
}

func (m *MongoManager) Close(ctx context.Context) error {
	var errs []error

	if err := m.master.Disconnect(ctx); err != nil {
		errs = append(errs, fmt.Errorf("error closing master connection: %v", err))
	}

	for i, slave := range m.slaves {
		if slave != m.master {
			if err := slave.Disconnect(ctx); err != nil {
				errs = append(errs, fmt.Errorf("error closing slave %d connection: %v", i, err))
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing mongodb connections: %v", errs)
	}

	return nil
}

func newMongoClient(ctx context.Context, conf *config.MongoNode) (*mongo.Client, error) {
	if conf == nil || conf.URI == "" {
		return nil, errors.New("mongodb configuration is nil or empty")
	}

	clientOptions := options.Client().ApplyURI(conf.URI)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("MongoDB connect error: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("MongoDB ping error: %v", err)
	}

	return client, nil
}
