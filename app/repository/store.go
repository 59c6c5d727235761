package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const (
	colUsers     = "users"
	colBootcamps = "bootcamps"
	colCourses   = "courses"
	colReviews   = "reviews"
)

// Connect opens a MongoDB client, verifies the connection and ensures indexes.
func Connect(uri, dbName string) (*mongo.Database, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect failed: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	db := client.Database(dbName)
	if err := ensureIndexes(ctx, db); err != nil {
		logrus.WithError(err).Warn("Failed to ensure indexes")
	}

	closeFn := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return client.Disconnect(ctx)
	}
	return db, closeFn, nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		{colUsers, bson.D{{Key: "email", Value: 1}}, true},
		{colUsers, bson.D{{Key: "reset_token_hash", Value: 1}}, false},

		{colBootcamps, bson.D{{Key: "owner_id", Value: 1}}, false},
		{colBootcamps, bson.D{{Key: "location", Value: "2dsphere"}}, false},
		{colBootcamps, bson.D{{Key: "created_at", Value: -1}}, false},

		{colCourses, bson.D{{Key: "bootcamp_id", Value: 1}}, false},
		{colCourses, bson.D{{Key: "owner_id", Value: 1}}, false},

		// one review per user per bootcamp
		{colReviews, bson.D{{Key: "bootcamp_id", Value: 1}, {Key: "owner_id", Value: 1}}, true},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := db.Collection(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("index on %s: %w", i.col, err)
		}
	}
	return nil
}

// findOne decodes a single document. A missing document yields (nil, nil),
// matching the sql.ErrNoRows convention used elsewhere in the codebase.
func findOne[T any](ctx context.Context, col *mongo.Collection, filter bson.D) (*T, error) {
	var result T
	err := col.FindOne(ctx, filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func findMany[T any](ctx context.Context, col *mongo.Collection, filter bson.D, opts ...options.Lister[options.FindOptions]) ([]*T, error) {
	cursor, err := col.Find(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []*T
	for cursor.Next(ctx) {
		var item T
		if err := cursor.Decode(&item); err != nil {
			return nil, err
		}
		results = append(results, &item)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	if results == nil {
		results = []*T{}
	}
	return results, nil
}

func insertOne(ctx context.Context, col *mongo.Collection, doc interface{}) error {
	_, err := col.InsertOne(ctx, doc)
	return err
}

func replaceByID(ctx context.Context, col *mongo.Collection, id string, doc interface{}) error {
	res, err := col.ReplaceOne(ctx, bson.D{{Key: "_id", Value: id}}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func updateFields(ctx context.Context, col *mongo.Collection, id string, set bson.D, unset ...string) error {
	update := bson.D{{Key: "$set", Value: set}}
	if len(unset) > 0 {
		fields := bson.D{}
		for _, f := range unset {
			fields = append(fields, bson.E{Key: f, Value: ""})
		}
		update = append(update, bson.E{Key: "$unset", Value: fields})
	}

	res, err := col.UpdateOne(ctx, bson.D{{Key: "_id", Value: id}}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func deleteByID(ctx context.Context, col *mongo.Collection, id string) error {
	res, err := col.DeleteOne(ctx, bson.D{{Key: "_id", Value: id}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Purge removes every document from every collection. Used by the seeder.
func Purge(ctx context.Context, db *mongo.Database) error {
	for _, col := range []string{colUsers, colBootcamps, colCourses, colReviews} {
		if _, err := db.Collection(col).DeleteMany(ctx, bson.D{}); err != nil {
			return fmt.Errorf("purge %s: %w", col, err)
		}
	}
	return nil
}

// IsDuplicate reports whether err is a unique-index violation.
func IsDuplicate(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
