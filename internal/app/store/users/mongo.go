// internal/app/store/users/mongo.go
package userstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/stratahr/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoStore reads users from a MongoDB "users" collection.
type MongoStore struct {
	c *mongo.Collection
}

// NewMongo returns a store over db's users collection.
func NewMongo(db *mongo.Database) *MongoStore {
	return &MongoStore{c: db.Collection("users")}
}

// ConnectMongo builds a client for uri. When user is set, password is used
// as its credential so the secret can be configured apart from the URI.
// The driver connects lazily; no round trip happens here.
func ConnectMongo(ctx context.Context, uri, user, password string) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	if user != "" {
		opts.SetAuth(options.Credential{Username: user, Password: password})
	}
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	return client, nil
}

// FindByEmail implements Directory.
func (s *MongoStore) FindByEmail(ctx context.Context, email string) (models.UserRecord, error) {
	cur, err := s.c.Find(ctx, bson.M{"email": email}, options.Find().SetLimit(2))
	if err != nil {
		return nil, classifyMongoError("find_by_email", err)
	}
	defer cur.Close(ctx)

	var found []models.UserRecord
	for cur.Next(ctx) {
		rec, err := recordFromRaw(cur.Current)
		if err != nil {
			return nil, err
		}
		found = append(found, rec)
	}
	if err := cur.Err(); err != nil {
		return nil, classifyMongoError("find_by_email", err)
	}

	switch len(found) {
	case 0:
		return nil, ErrNotFound
	case 1:
		return found[0], nil
	default:
		return nil, &QueryError{Op: "find_by_email", Err: errMultipleRows}
	}
}

// Ping implements Directory.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.c.Database().Client().Ping(ctx, readpref.Primary())
}

// recordFromRaw flattens a BSON document into a JSON-shaped record.
// Documents without their own "id" field get one from _id (hex for ObjectIDs).
func recordFromRaw(raw bson.Raw) (models.UserRecord, error) {
	ext, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}
	rec, err := models.DecodeUserRecord(ext)
	if err != nil {
		return nil, fmt.Errorf("decode user document: %w", err)
	}

	if _, ok := rec["id"]; ok {
		delete(rec, "_id")
		return rec, nil
	}
	if idVal, err := raw.LookupErr("_id"); err == nil {
		if oid, ok := idVal.ObjectIDOK(); ok {
			rec["id"] = oid.Hex()
		} else if s, ok := idVal.StringValueOK(); ok {
			rec["id"] = s
		}
	}
	delete(rec, "_id")
	return rec, nil
}

// classifyMongoError separates server-reported failures from transport ones.
func classifyMongoError(op string, err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	var se mongo.ServerError
	if errors.As(err, &se) {
		return &QueryError{Op: op, Err: err}
	}
	return fmt.Errorf("db error: %w", err)
}
