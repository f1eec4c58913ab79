// Package mongodb implements the listing service on MongoDB, with change
// streams as the realtime channel.
package mongodb

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

type Store struct {
	client *mongo.Client
	coll   *mongo.Collection
}

type listingDoc struct {
	ID          string    `bson:"_id"`
	Title       string    `bson:"title"`
	Category    string    `bson:"category"`
	Price       float64   `bson:"price"`
	Description string    `bson:"description"`
	ImageURL    string    `bson:"image_url,omitempty"`
	SellerID    string    `bson:"seller_id"`
	CreatedAt   time.Time `bson:"created_at"`
}

func docToModel(d listingDoc) models.Listing {
	return models.Listing{
		ID:          d.ID,
		Title:       d.Title,
		Category:    d.Category,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		SellerID:    d.SellerID,
		Timestamp:   d.CreatedAt,
	}
}

func New(ctx context.Context, mongoURI, dbName, collName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	coll := client.Database(dbName).Collection(collName)

	// Best-effort indexes.
	_, _ = coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "seller_id", Value: 1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	})

	log.Printf("MongoDB connected: db=%s coll=%s", dbName, collName)
	return &Store{client: client, coll: coll}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ListAll fetches every listing sorted newest first. The in-memory sort runs
// again as a safety: documents without a created_at decode to the zero time
// and must land at the bottom of the feed.
func (s *Store) ListAll(ctx context.Context) ([]models.Listing, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cur, err := s.coll.Find(
		ctx,
		bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	listings := make([]models.Listing, 0)
	for cur.Next(ctx) {
		var d listingDoc
		if err := cur.Decode(&d); err != nil {
			return nil, err
		}
		listings = append(listings, docToModel(d))
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	models.SortNewestFirst(listings)
	return listings, nil
}

func (s *Store) Insert(ctx context.Context, l *models.Listing) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	doc := listingDoc{
		ID:          l.ID,
		Title:       l.Title,
		Category:    l.Category,
		Price:       l.Price,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		SellerID:    l.SellerID,
		CreatedAt:   l.Timestamp,
	}

	_, err := s.coll.InsertOne(ctx, doc)
	return err
}

// Subscribe watches the collection change stream and reports each event as a
// bare change notification. Event documents are discarded; the consumer
// refetches the full collection.
func (s *Store) Subscribe(ctx context.Context, listener backend.ChangeListener) error {
	stream, err := s.coll.Watch(ctx, mongo.Pipeline{})
	if err != nil {
		return err
	}

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(ctx) {
			listener(backend.ChangeEvent{})
		}
		if err := stream.Err(); err != nil && ctx.Err() == nil {
			log.Printf("[mongodb] change stream closed: %v", err)
		}
	}()

	return nil
}
