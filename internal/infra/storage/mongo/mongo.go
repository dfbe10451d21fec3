// Package mongo implements a KeyedStore on a MongoDB collection holding one
// document per key.
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"veluna/config"
	"veluna/internal/domain/repository"
	"veluna/internal/errors"
)

const defaultCollection = "documents"

type document struct {
	Key   string `bson:"_id"`
	Value string `bson:"value"`
}

// Store is a MongoDB backed KeyedStore.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	origin     string
}

var _ repository.KeyedStore = (*Store)(nil)

// New connects to MongoDB and verifies the connection.
func New(ctx context.Context, cfg *config.MongoStorageConfig, origin string) (*Store, error) {
	if cfg == nil || cfg.URI == "" || cfg.Database == "" {
		return nil, errors.New("mongo uri and database are required for mongo storage")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(err, "connect mongo")
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)

		return nil, errors.Wrap(err, "ping mongo")
	}

	name := cfg.Collection
	if name == "" {
		name = defaultCollection
	}

	return &Store{
		client:     client,
		collection: client.Database(cfg.Database).Collection(name),
		origin:     origin,
	}, nil
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var doc document

	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "mongo find %s", key)
	}

	return []byte(doc.Value), nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	_, err := s.collection.ReplaceOne(ctx,
		bson.M{"_id": key},
		document{Key: key, Value: string(value)},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return errors.Wrapf(err, "mongo replace %s", key)
	}

	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return errors.Wrapf(err, "mongo delete %s", key)
	}

	return nil
}

func (s *Store) Origin() string {
	return s.origin
}

func (s *Store) Close() error {
	return s.client.Disconnect(context.Background())
}
