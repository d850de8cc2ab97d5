// Package repository holds the group catalog stores: MongoDB, in-memory and
// the circuit breaker wrapper used in front of MongoDB.
package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// StackingGroupsCollection is the collection holding group definitions.
const StackingGroupsCollection = "stacking_groups"

const pingTimeout = 2 * time.Second

// mongoSettings are the knobs MongoOption can change.
type mongoSettings struct {
	maxPool        uint64
	minPool        uint64
	idle           time.Duration
	connectTimeout time.Duration
	selectTimeout  time.Duration
	socketTimeout  time.Duration
	compressors    []string
}

// MongoOption tunes the MongoDB client.
type MongoOption func(*mongoSettings)

// WithPoolSize bounds the connection pool. Zero leaves the default.
func WithPoolSize(min, max uint64) MongoOption {
	return func(s *mongoSettings) {
		if max > 0 {
			s.maxPool = max
		}
		if min <= s.maxPool {
			s.minPool = min
		}
	}
}

// WithConnectTimeout limits connect, ping and index creation at startup.
func WithConnectTimeout(d time.Duration) MongoOption {
	return func(s *mongoSettings) {
		if d > 0 {
			s.connectTimeout = d
		}
	}
}

// WithoutCompression disables wire compression.
func WithoutCompression() MongoOption {
	return func(s *mongoSettings) { s.compressors = nil }
}

// MongoDB bundles the client with the catalog collection.
type MongoDB struct {
	Client         *mongo.Client
	Database       *mongo.Database
	StackingGroups *mongo.Collection
}

// NewMongoDB connects to uri, checks the primary answers and ensures the
// catalog ordering index exists.
func NewMongoDB(uri, databaseName string, opts ...MongoOption) (*MongoDB, error) {
	s := mongoSettings{
		maxPool:        20,
		minPool:        2,
		idle:           10 * time.Minute,
		connectTimeout: 10 * time.Second,
		selectTimeout:  5 * time.Second,
		socketTimeout:  30 * time.Second,
		compressors:    []string{"zstd", "snappy", "zlib"},
	}
	for _, opt := range opts {
		opt(&s)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.connectTimeout)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(uri).
		SetAppName("stacking-service").
		SetMaxPoolSize(s.maxPool).
		SetMinPoolSize(s.minPool).
		SetMaxConnIdleTime(s.idle).
		SetConnectTimeout(s.connectTimeout).
		SetServerSelectionTimeout(s.selectTimeout).
		SetSocketTimeout(s.socketTimeout).
		SetRetryReads(true).
		SetRetryWrites(true)
	if len(s.compressors) > 0 {
		clientOpts.SetCompressors(s.compressors)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	database := client.Database(databaseName)
	db := &MongoDB{
		Client:         client,
		Database:       database,
		StackingGroups: database.Collection(StackingGroupsCollection),
	}

	if err := db.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("create catalog indexes: %w", err)
	}
	return db, nil
}

// ensureIndexes backs the catalog sort order (position, created_at).
func (m *MongoDB) ensureIndexes(ctx context.Context) error {
	_, err := m.StackingGroups.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "position", Value: 1}, {Key: "created_at", Value: 1}},
		Options: options.Index().SetName("catalog_order"),
	})
	return err
}

// Close disconnects the client.
func (m *MongoDB) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// HealthCheck pings the primary.
func (m *MongoDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return m.Client.Ping(ctx, readpref.Primary())
}
