package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"

	"chilume_backend/internals/logger"
)

// ConnectMongo dials uri and returns the database named in the URI, or
// fallbackDB when the URI carries none.
func ConnectMongo(ctx context.Context, uri, fallbackDB string) (*mongo.Database, error) {
	cs, err := connstring.ParseAndValidate(uri)
	if err != nil {
		return nil, fmt.Errorf("mongodb uri: %w", err)
	}

	client, err := mongo.Connect(ctx,
		options.Client().ApplyURI(cs.String()),
		options.Client().SetConnectTimeout(10*time.Second),
		options.Client().SetServerSelectionTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("mongodb connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongodb ping: %w", err)
	}

	name := cs.Database
	if name == "" {
		name = fallbackDB
	}
	logger.LogI("mongodb connected", "database", name)
	return client.Database(name), nil
}
