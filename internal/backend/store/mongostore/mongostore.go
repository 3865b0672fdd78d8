// Package mongostore persists backend records in MongoDB, one collection per
// resource. The record id is kept in _id (string form) so lookups by 1 and
// "1" agree; _seq preserves insertion order.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/raizes/internal/backend/store"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Store is the MongoDB implementation of store.Store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *zap.Logger
}

// Connect dials uri, verifies the connection and selects database.
func Connect(ctx context.Context, uri, database string, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	log.Info("connected to MongoDB", zap.String("database", database))
	return &Store{client: client, db: client.Database(database), log: log}, nil
}

// New wraps an already connected database. Close does not disconnect it.
func New(db *mongo.Database, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

// Client returns the underlying client (nil when built with New).
func (s *Store) Client() *mongo.Client { return s.client }

// EnsureIndexes creates the ordering index on every collection.
func (s *Store) EnsureIndexes(ctx context.Context, collections []string) error {
	for _, c := range collections {
		_, err := s.db.Collection(c).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "_seq", Value: 1}},
			Options: options.Index().SetName("idx_seq"),
		})
		if err != nil {
			return fmt.Errorf("index %s: %w", c, err)
		}
	}
	return nil
}

func (s *Store) List(ctx context.Context, collection string) ([]store.Record, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "_seq", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", collection, err)
	}
	defer cur.Close(ctx)

	out := []store.Record{}
	for cur.Next(ctx) {
		var doc bson.M
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("list %s: %w", collection, err)
		}
		out = append(out, toRecord(doc))
	}
	return out, cur.Err()
}

func (s *Store) Get(ctx context.Context, collection, id string) (store.Record, error) {
	var doc bson.M
	err := s.db.Collection(collection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", collection, id, err)
	}
	return toRecord(doc), nil
}

func (s *Store) Insert(ctx context.Context, collection string, rec store.Record) (store.Record, error) {
	doc := bson.M{}
	for k, v := range rec {
		doc[k] = v
	}
	doc["_id"] = store.IDOf(rec)
	doc["_seq"] = primitive.NewObjectID()

	if _, err := s.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		if wafflemongo.IsDup(err) {
			return nil, store.ErrDuplicate
		}
		return nil, fmt.Errorf("insert %s: %w", collection, err)
	}
	return store.Clone(rec), nil
}

func (s *Store) Merge(ctx context.Context, collection, id string, patch store.Record) (store.Record, error) {
	set := bson.M{}
	for k, v := range patch {
		if k == "id" || strings.HasPrefix(k, "_") {
			continue
		}
		set[k] = v
	}
	if len(set) == 0 {
		return s.Get(ctx, collection, id)
	}
	var doc bson.M
	err := s.db.Collection(collection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("merge %s/%s: %w", collection, id, err)
	}
	return toRecord(doc), nil
}

// Replace swaps the body in one pipeline update so _id, _seq and id survive.
func (s *Store) Replace(ctx context.Context, collection, id string, rec store.Record) (store.Record, error) {
	body := bson.M{}
	for k, v := range rec {
		if k == "id" || strings.HasPrefix(k, "_") {
			continue
		}
		body[k] = v
	}
	pipeline := mongo.Pipeline{
		{{Key: "$replaceWith", Value: bson.M{"$mergeObjects": bson.A{
			bson.M{"_id": "$_id", "_seq": "$_seq", "id": "$id"},
			bson.M{"$literal": body},
		}}}},
	}
	var doc bson.M
	err := s.db.Collection(collection).FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		pipeline,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("replace %s/%s: %w", collection, id, err)
	}
	return toRecord(doc), nil
}

func (s *Store) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete %s/%s: %w", collection, id, err)
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// Close disconnects the client when this store owns it.
func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// toRecord strips storage fields and converts BSON values to the plain JSON
// shapes the other stores return.
func toRecord(doc bson.M) store.Record {
	out := make(store.Record, len(doc))
	for k, v := range doc {
		if strings.HasPrefix(k, "_") {
			continue
		}
		out[k] = plain(v)
	}
	return out
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = plain(e)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case bson.A:
		a := make([]any, len(t))
		for i, e := range t {
			a[i] = plain(e)
		}
		return a
	case []any:
		a := make([]any, len(t))
		for i, e := range t {
			a[i] = plain(e)
		}
		return a
	case int32:
		return float64(t)
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case primitive.ObjectID:
		return t.Hex()
	}
	return v
}
