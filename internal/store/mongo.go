package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const connectTimeout = 10 * time.Second

// Mongo is the MongoDB-backed document store.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect opens a MongoDB connection and verifies it with a ping.
func Connect(ctx context.Context, uri, database string) (*Mongo, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to mongodb")
	}

	if err = client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, errors.Wrap(err, "failed to ping mongodb")
	}

	return &Mongo{client: client, db: client.Database(database)}, nil
}

// Collection returns the named collection.
func (m *Mongo) Collection(name string) Collection {
	return &mongoCollection{col: m.db.Collection(name)}
}

// Disconnect closes the underlying client.
func (m *Mongo) Disconnect(ctx context.Context) error {
	return errors.Wrap(m.client.Disconnect(ctx), "failed to disconnect from mongodb")
}

// EnsureUniqueIndexes creates a unique single-field index per given field on the
// named collection. These indexes are the authoritative guard for natural-key
// uniqueness: the application-level pre-checks in the repositories are a
// fast path only and do not hold under concurrent inserts.
func (m *Mongo) EnsureUniqueIndexes(ctx context.Context, collection string, fields ...string) error {
	indexes := make([]mongo.IndexModel, 0, len(fields))
	for _, field := range fields {
		indexes = append(indexes, mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true).SetName(field),
		})
	}

	_, err := m.db.Collection(collection).Indexes().CreateMany(ctx, indexes)

	return errors.Wrapf(err, "failed to create unique indexes on %s", collection)
}

type mongoCollection struct {
	col *mongo.Collection
}

func (c *mongoCollection) Find(ctx context.Context, filter bson.M, results any) error {
	cursor, err := c.col.Find(ctx, filter)
	if err != nil {
		return err //nolint:wrapcheck // wrapped by the repository layer
	}

	return cursor.All(ctx, results) //nolint:wrapcheck
}

func (c *mongoCollection) FindOne(ctx context.Context, filter bson.M, result any) error {
	err := c.col.FindOne(ctx, filter).Decode(result)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNoDocuments
	}

	return err //nolint:wrapcheck
}

func (c *mongoCollection) InsertOne(ctx context.Context, document any) error {
	_, err := c.col.InsertOne(ctx, document)
	if mongo.IsDuplicateKeyError(err) {
		return errors.Wrap(ErrDuplicateKey, err.Error())
	}

	return err //nolint:wrapcheck
}

func (c *mongoCollection) FindOneAndUpdate(ctx context.Context, filter, update bson.M, result any) error {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	err := c.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(result)

	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNoDocuments
	case mongo.IsDuplicateKeyError(err):
		return errors.Wrap(ErrDuplicateKey, err.Error())
	}

	return err //nolint:wrapcheck
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter bson.M) error {
	_, err := c.col.DeleteOne(ctx, filter)

	return err //nolint:wrapcheck
}
