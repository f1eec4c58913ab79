// Package firebase implements the document-database variant: Firebase Auth
// for identity, Firestore for the listing collection (with snapshot
// listeners), and Firebase Storage for images.
package firebase

import (
	"context"
	"fmt"
	"log"
	"sync"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
)

type Config struct {
	ProjectID       string
	CredentialsJSON string
	Bucket          string
	Collection      string
}

// New builds all three capability drivers from one Firebase app.
func New(ctx context.Context, cfg Config) (*backend.Backend, error) {
	var opts []option.ClientOption
	if cfg.CredentialsJSON != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:     cfg.ProjectID,
		StorageBucket: cfg.Bucket,
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth: %w", err)
	}

	fsClient, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore client: %w", err)
	}

	store, err := newStorage(ctx, cfg.Bucket, opts...)
	if err != nil {
		return nil, err
	}

	log.Printf("Firebase connected: project=%s", cfg.ProjectID)

	return &backend.Backend{
		Auth:     &AuthService{client: authClient},
		Listings: &ListingStore{client: fsClient, collection: cfg.Collection},
		Storage:  store,
	}, nil
}

// AuthService adapts Firebase Auth to the backend.AuthService contract.
type AuthService struct {
	client *fbauth.Client

	mu        sync.Mutex
	listeners []backend.AuthListener
}

// SignInAnonymously mints a new anonymous Firebase user.
func (s *AuthService) SignInAnonymously(ctx context.Context) (backend.Session, error) {
	user, err := s.client.CreateUser(ctx, &fbauth.UserToCreate{})
	if err != nil {
		return backend.Session{}, err
	}
	sess := backend.Session{UserID: user.UID}
	s.notify(sess)
	return sess, nil
}

// RestoreSession verifies a Firebase ID token and adopts its subject.
func (s *AuthService) RestoreSession(ctx context.Context, token string) (backend.Session, error) {
	decoded, err := s.client.VerifyIDToken(ctx, token)
	if err != nil {
		return backend.Session{}, err
	}
	sess := backend.Session{UserID: decoded.UID}
	s.notify(sess)
	return sess, nil
}

func (s *AuthService) Watch(listener backend.AuthListener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, listener)
	s.mu.Unlock()
}

func (s *AuthService) notify(sess backend.Session) {
	s.mu.Lock()
	listeners := make([]backend.AuthListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(sess)
	}
}
