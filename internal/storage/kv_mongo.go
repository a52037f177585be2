package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const kvCollection = "kv_records"

type kvDocument struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// MongoStore keeps one document per key with the JSON value as a string, so
// the stored bytes match what the other backends account for.
type MongoStore struct {
	coll   *mongo.Collection
	prefix string
	quota  int64
}

func NewMongoStore(db *mongo.Database, prefix string, quota int64) *MongoStore {
	return &MongoStore{coll: db.Collection(kvCollection), prefix: prefix, quota: quota}
}

func (s *MongoStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	var doc kvDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": s.prefix + key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("mongo get %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(doc.Value), dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *MongoStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	doc := kvDocument{Key: s.prefix + key, Value: string(data), UpdatedAt: time.Now().UTC()}
	_, err = s.coll.ReplaceOne(ctx, bson.M{"_id": doc.Key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongo set %s: %w", key, err)
	}
	return nil
}

func (s *MongoStore) StorageInfo(ctx context.Context) (StorageInfo, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": bson.M{"$regex": "^" + regexp.QuoteMeta(s.prefix)}}}},
		{{Key: "$group", Value: bson.M{
			"_id": nil,
			"bytes": bson.M{"$sum": bson.M{"$add": bson.A{
				bson.M{"$strLenBytes": "$_id"},
				bson.M{"$strLenBytes": "$value"},
			}}},
		}}},
	}
	cursor, err := s.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return StorageInfo{}, fmt.Errorf("mongo usage: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Bytes int64 `bson:"bytes"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return StorageInfo{}, fmt.Errorf("mongo usage: %w", err)
	}
	var used int64
	if len(rows) > 0 {
		used = rows[0].Bytes
	}
	return NewStorageInfo(used, s.quota), nil
}
