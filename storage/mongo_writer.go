package storage

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sidnetopia/airbnb-scraper/models"
)

const listingsCollection = "listings"

// MongoWriter inserts one document per listing into a fixed collection.
type MongoWriter struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewMongoWriter(ctx context.Context, uri, dbName string) (*MongoWriter, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoWriter{
		client: client,
		coll:   client.Database(dbName).Collection(listingsCollection),
	}, nil
}

func (w *MongoWriter) Close(ctx context.Context) error {
	return w.client.Disconnect(ctx)
}

// InsertListings inserts every listing and returns the number inserted.
func (w *MongoWriter) InsertListings(ctx context.Context, listings []models.Listing) (int, error) {
	if len(listings) == 0 {
		return 0, nil
	}

	docs := make([]interface{}, len(listings))
	for i, listing := range listings {
		docs[i] = listing
	}

	res, err := w.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert listings: %w", err)
	}
	return len(res.InsertedIDs), nil
}
