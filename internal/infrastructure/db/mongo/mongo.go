// Package mongo provides the MongoDB-backed directory store for deployments
// that outgrow the flat-file layout.
package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const connectTimeout = 10 * time.Second

// Conn bundles the client with the selected database so callers can hand the
// database around and still disconnect cleanly at shutdown.
type Conn struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// Connect dials MongoDB and verifies connectivity with a ping before handing
// the connection back, so a bad MONGO_URI fails at startup.
func Connect(ctx context.Context, uri, database string) (*Conn, error) {
	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Conn{Client: client, DB: client.Database(database)}, nil
}

// Close disconnects the underlying client.
func (c *Conn) Close(ctx context.Context) error {
	return c.Client.Disconnect(ctx)
}
