package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const cellCollection = "cells"

// cellDocument is the shape of one durable cell inside mongo: the cell
// key is the document id, the serialized collection text is the value.
type cellDocument struct {
	ID    string `bson:"_id"`
	Value string `bson:"value"`
}

type mongoKV struct {
	coll *mongo.Collection
}

// NewMongoKV connects to mongo and returns a KV backed by one document
// per cell key in the "cells" collection.
func NewMongoKV(ctx context.Context, uri, dbName string) (KV, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return &mongoKV{coll: client.Database(dbName).Collection(cellCollection)}, nil
}

func (m *mongoKV) Get(ctx context.Context, key string) (string, bool, error) {
	var doc cellDocument
	err := m.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return doc.Value, true, nil
}

func (m *mongoKV) Set(ctx context.Context, key, value string) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.coll.ReplaceOne(ctx, bson.M{"_id": key}, cellDocument{ID: key, Value: value}, opts)
	return err
}
