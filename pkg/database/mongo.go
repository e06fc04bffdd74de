// Package database owns the MongoDB connection and the collection indexes
// the repositories rely on.
package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Collection names.
const (
	Users     = "users"
	Admins    = "admins"
	Courses   = "courses"
	Purchases = "purchases"
	Logs      = "logs"
)

// DB is a connected client bound to one database.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials uri, pings the primary and returns a handle on database.
// Returns an error instead of calling log.Fatal so the caller can shut
// down gracefully.
func Connect(ctx context.Context, uri, database string) (*DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(25).
		SetMaxConnIdleTime(2 * time.Minute)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("database: connect: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("database: ping: %w", err)
	}

	return &DB{client: client, db: client.Database(database)}, nil
}

// Collection returns a handle on the named collection.
func (d *DB) Collection(name string) *mongo.Collection {
	return d.db.Collection(name)
}

// Ping checks the primary is reachable.
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (d *DB) Close(ctx context.Context) error {
	return d.client.Disconnect(ctx)
}

// IndexSpec is one collection's index set.
type IndexSpec struct {
	Collection string
	Models     []mongo.IndexModel
}

// Indexes lists every index the application depends on. The unique ones
// are load-bearing: they turn concurrent duplicate signups and purchases
// into duplicate-key errors.
func Indexes() []IndexSpec {
	return []IndexSpec{
		{Collection: Users, Models: []mongo.IndexModel{{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}}},
		{Collection: Admins, Models: []mongo.IndexModel{{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		}}},
		{Collection: Courses, Models: []mongo.IndexModel{{
			Keys:    bson.D{{Key: "creatorId", Value: 1}},
			Options: options.Index().SetName("creator"),
		}}},
		{Collection: Purchases, Models: []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "courseId", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("user_course_unique"),
			},
			{
				Keys:    bson.D{{Key: "courseId", Value: 1}},
				Options: options.Index().SetName("course"),
			},
		}},
	}
}

// EnsureIndexes creates every index from Indexes. Existing indexes with
// the same definition are left alone by the server.
func (d *DB) EnsureIndexes(ctx context.Context) error {
	for _, spec := range Indexes() {
		if _, err := d.Collection(spec.Collection).Indexes().CreateMany(ctx, spec.Models); err != nil {
			return fmt.Errorf("database: indexes on %s: %w", spec.Collection, err)
		}
	}
	return nil
}
