package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names used by the Mongo repositories.
const (
	ProfileCollection  = "profile"
	ProjectsCollection = "projects"
	ResumeCollection   = "resume_items"
)

// InitMongo connects to uri, pings the deployment and returns the named
// database. Callers own the client and must Disconnect it.
func InitMongo(ctx context.Context, uri, name string, timeout time.Duration) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return client.Database(name), nil
}

// DisconnectMongo closes the client behind database.
func DisconnectMongo(ctx context.Context, database *mongo.Database) error {
	if database == nil {
		return nil
	}
	if err := database.Client().Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}
