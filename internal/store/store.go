// Package store abstracts the document store behind named collections that
// expose filter-based find, insert, find-and-update and delete operations.
// Filters and update documents use the bson.M representation in every adapter,
// so repositories are written once and run against MongoDB in production and
// against the in-memory adapter in tests.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
)

var (
	// ErrNoDocuments is returned when a single-document operation matches nothing.
	ErrNoDocuments = errors.New("no matching document")

	// ErrDuplicateKey is returned when an insert or update violates a unique index.
	ErrDuplicateKey = errors.New("duplicate key")
)

// Collection is a named set of documents.
type Collection interface {
	// Find decodes every document matching filter into results,
	// which must be a pointer to a slice.
	Find(ctx context.Context, filter bson.M, results any) error

	// FindOne decodes the first document matching filter into result.
	// Returns ErrNoDocuments when nothing matches.
	FindOne(ctx context.Context, filter bson.M, result any) error

	// InsertOne stores a new document.
	InsertOne(ctx context.Context, document any) error

	// FindOneAndUpdate applies update to the first document matching filter and
	// decodes the updated document into result. Returns ErrNoDocuments when
	// nothing matches.
	FindOneAndUpdate(ctx context.Context, filter bson.M, update bson.M, result any) error

	// DeleteOne removes the first document matching filter. Deleting a
	// non-existing document is not an error.
	DeleteOne(ctx context.Context, filter bson.M) error
}

// Store hands out named collections.
type Store interface {
	Collection(name string) Collection
}
