package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/bacheca/board-api/internal/core/ports"
)

const (
	defaultTimeout = 10 * time.Second
	indexTimeout   = 30 * time.Second
)

// Config captures the minimal settings required to establish a MongoDB connection.
type Config struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// Connect establishes a MongoDB client, verifies connectivity with a ping, and
// returns both the client and the selected database. A default timeout is
// applied when none is provided.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := client.Database(cfg.Database)
	return client, db, nil
}

// EnsureIndexes creates every index the repositories rely on. Runs at
// startup before the server accepts traffic.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexed := []interface{ EnsureIndexes(context.Context) error }{
		NewUserRepository(db),
		NewListingRepository(db),
		NewFavoriteRepository(db),
	}
	for _, r := range indexed {
		if err := r.EnsureIndexes(ctx); err != nil {
			return fmt.Errorf("ensure indexes: %w", err)
		}
	}
	return nil
}

// sortSpec translates list options into a Mongo sort document.
// An empty OrderBy means recency.
func sortSpec(opts ports.ListOptions) bson.D {
	field := opts.OrderBy
	if field == "" {
		field = "created_at"
	}
	dir := 1
	if opts.Desc {
		dir = -1
	}
	return bson.D{{Key: field, Value: dir}}
}
