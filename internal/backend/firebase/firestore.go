package firebase

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

// ListingStore reads and writes the listing collection in Firestore.
type ListingStore struct {
	client     *firestore.Client
	collection string
}

type listingDoc struct {
	Title       string    `firestore:"title"`
	Category    string    `firestore:"category"`
	Price       float64   `firestore:"price"`
	Description string    `firestore:"description"`
	ImageURL    string    `firestore:"imageUrl"`
	SellerID    string    `firestore:"sellerId"`
	Timestamp   time.Time `firestore:"timestamp"`
}

func docToModel(id string, d listingDoc) models.Listing {
	return models.Listing{
		ID:          id,
		Title:       d.Title,
		Category:    d.Category,
		Price:       d.Price,
		Description: d.Description,
		ImageURL:    d.ImageURL,
		SellerID:    d.SellerID,
		Timestamp:   d.Timestamp,
	}
}

// ListAll fetches the whole collection. Firestore document order is not the
// feed order, so the newest-first sort happens here; documents missing a
// timestamp sort last.
func (s *ListingStore) ListAll(ctx context.Context) ([]models.Listing, error) {
	iter := s.client.Collection(s.collection).Documents(ctx)
	defer iter.Stop()

	listings := make([]models.Listing, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}

		var d listingDoc
		if err := doc.DataTo(&d); err != nil {
			// Skip malformed documents instead of failing the whole feed.
			log.Printf("[firestore] skipping malformed document %s: %v", doc.Ref.ID, err)
			continue
		}
		listings = append(listings, docToModel(doc.Ref.ID, d))
	}

	models.SortNewestFirst(listings)
	return listings, nil
}

func (s *ListingStore) Insert(ctx context.Context, l *models.Listing) error {
	doc := listingDoc{
		Title:       l.Title,
		Category:    l.Category,
		Price:       l.Price,
		Description: l.Description,
		ImageURL:    l.ImageURL,
		SellerID:    l.SellerID,
		Timestamp:   l.Timestamp,
	}
	_, err := s.client.Collection(s.collection).Doc(l.ID).Set(ctx, doc)
	return err
}

// Subscribe opens a Firestore snapshot listener over the collection. Snapshot
// contents are discarded; every snapshot is reported as a bare change event
// and the consumer refetches.
func (s *ListingStore) Subscribe(ctx context.Context, listener backend.ChangeListener) error {
	snaps := s.client.Collection(s.collection).Snapshots(ctx)

	go func() {
		defer snaps.Stop()
		for {
			_, err := snaps.Next()
			if err != nil {
				if ctx.Err() == nil {
					log.Printf("[firestore] snapshot listener stopped: %v", err)
				}
				return
			}
			listener(backend.ChangeEvent{})
		}
	}()

	return nil
}
