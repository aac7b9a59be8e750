package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

type MongoDB struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// MongoConfig holds connection pool settings for MongoDB.
type MongoConfig struct {
	URI     string
	DBName  string
	Timeout time.Duration
	MaxPool uint64
	MinPool uint64
}

func (c MongoConfig) withDefaults() MongoConfig {
	if c.Timeout <= 0 {
		c.Timeout = 10 * time.Second
	}
	if c.MaxPool == 0 {
		c.MaxPool = 100
	}
	if c.MinPool == 0 {
		c.MinPool = 5
	}
	return c
}

// ConnectMongo dials MongoDB and waits for the primary to answer.
func ConnectMongo(ctx context.Context, cfg MongoConfig) (*MongoDB, error) {
	cfg = cfg.withDefaults()

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	opts := options.Client().ApplyURI(cfg.URI)
	opts.SetMaxPoolSize(cfg.MaxPool)
	opts.SetMinPoolSize(cfg.MinPool)
	opts.SetMaxConnIdleTime(30 * time.Second)
	opts.SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoDB{
		Client:   client,
		Database: client.Database(cfg.DBName),
	}, nil
}

func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}
