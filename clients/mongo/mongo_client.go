package mongo_client

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"gopkg.in/mgo.v2/bson"
)

// Connect opens a client and pings the admin database.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	// Send a ping to confirm a successful connection
	pingCmd := bson.M{"ping": 1}
	if err := client.Database("admin").RunCommand(ctx, pingCmd).Err(); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	zap.L().Info("Connected to MongoDB")
	return client, nil
}

type preference struct {
	Key       string    `bson:"_id"`
	Value     string    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// PreferenceStore keeps one document per preference key.
type PreferenceStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

func NewPreferenceStore(client *mongo.Client, database, collection string) *PreferenceStore {
	return &PreferenceStore{
		client:     client,
		collection: client.Database(database).Collection(collection),
	}
}

func (s *PreferenceStore) Get(ctx context.Context, key string) (string, bool, error) {
	var doc preference
	err := s.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find preference %s: %w", key, err)
	}
	return doc.Value, true, nil
}

func (s *PreferenceStore) Set(ctx context.Context, key, value string) error {
	update := bson.M{"$set": bson.M{"value": value, "updated_at": time.Now().UTC()}}
	_, err := s.collection.UpdateOne(ctx, bson.M{"_id": key}, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert preference %s: %w", key, err)
	}
	return nil
}

func (s *PreferenceStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
