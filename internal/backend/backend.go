// Package backend declares the vendor-neutral capabilities the app consumes:
// authentication, listing query/insert with change notifications, and object
// storage. Each variant (Supabase/Postgres, Firebase, Mongo) provides its own
// drivers behind these interfaces.
package backend

import (
	"context"
	"io"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/models"
)

// Session identifies the authenticated user. One session is established at
// startup and held for the lifetime of the process; there is no sign-out.
type Session struct {
	UserID string
}

// AuthListener is invoked each time a user becomes present, including when
// the backend silently refreshes or replaces the session.
type AuthListener func(Session)

type AuthService interface {
	SignInAnonymously(ctx context.Context) (Session, error)

	// RestoreSession establishes a session from an externally supplied token.
	RestoreSession(ctx context.Context, token string) (Session, error)

	// Watch registers a listener for auth-state transitions. Listeners must
	// be registered before sign-in so the initial session is delivered too.
	Watch(listener AuthListener)
}

// ChangeEvent signals that the listing collection changed. It carries no
// payload: consumers always refetch the full collection.
type ChangeEvent struct{}

type ChangeListener func(ChangeEvent)

type ListingService interface {
	// ListAll returns every listing, newest first.
	ListAll(ctx context.Context) ([]models.Listing, error)

	Insert(ctx context.Context, l *models.Listing) error

	// Subscribe opens a long-lived change-notification channel over the
	// listing collection and invokes listener on every insert, update or
	// delete until ctx is cancelled.
	Subscribe(ctx context.Context, listener ChangeListener) error
}

type BlobStorage interface {
	// Upload writes the bytes of r to path and returns a durable, publicly
	// fetchable URL. Errors are returned as-is; the caller owns user-facing
	// messaging.
	Upload(ctx context.Context, path string, r io.Reader) (string, error)
}

// Backend bundles the capabilities one variant provides.
type Backend struct {
	Auth     AuthService
	Listings ListingService
	Storage  BlobStorage
}
