package mongoclient

import (
	"context"
	"fmt"
	"time"

	"github.com/tindaph/tindaph/cmd/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	client   *mongo.Client
	database *mongo.Database
)

// New connects to MongoDB using the provided configuration and verifies
// connectivity with a ping.
func New(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config provided")
	}

	clientOpts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	c, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return fmt.Errorf("unable to connect to mongodb at %s: %w", cfg.Mongo.URI, err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		return fmt.Errorf("unable to ping mongodb at %s: %w", cfg.Mongo.URI, err)
	}

	client = c
	database = c.Database(cfg.Mongo.Database)
	return nil
}

// Get returns the connected database handle.
func Get() *mongo.Database {
	return database
}

func Close() error {
	if client == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Disconnect(ctx)
}
