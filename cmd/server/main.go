package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/app"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend/cloudinary"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend/disk"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend/firebase"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend/localauth"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend/mongodb"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend/postgres"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/config"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/handlers"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/realtime"
	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/ui"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	// A missing or failing backend is not fatal: the app degrades to a
	// static, read-only display with a persistent status line.
	var b *backend.Backend
	if cfg.HasBackendCredentials() {
		var err error
		b, err = buildBackend(ctx, cfg)
		if err != nil {
			log.Printf("Warning: failed to initialize %s backend: %v", cfg.Backend, err)
			b = nil
		}
	} else {
		log.Printf("Warning: %s backend credentials missing, persistence disabled", cfg.Backend)
	}

	application := app.New(b)
	hub := realtime.NewHub()
	application.OnChange(func() {
		hub.Broadcast(realtime.Event{Name: "changed"})
	})
	application.Start(ctx, cfg.SessionToken)

	renderer := ui.NewRenderer()
	pageHandler := handlers.NewPageHandler(application)
	listingsHandler := handlers.NewListingsHandler(application, renderer, cfg.MaxUploadBytes)
	eventsHandler := handlers.NewEventsHandler(hub)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Get("/", pageHandler.Index)
	r.Get("/fragments/listings", listingsHandler.Fragment)

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Get("/listings", listingsHandler.List)
		r.Post("/listings", listingsHandler.Create)
		r.Get("/events", eventsHandler.Stream)
	})

	// Serve uploaded files for the disk storage driver
	workDir, _ := os.Getwd()
	filesDir := http.Dir(filepath.Join(workDir, cfg.UploadDir))
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(filesDir)))

	log.Printf("Udgir Marketplace server starting on %s (backend=%s)", cfg.ServerAddress, cfg.Backend)
	if err := http.ListenAndServe(cfg.ServerAddress, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

// buildBackend assembles the capability drivers for the selected variant.
func buildBackend(ctx context.Context, cfg *config.Config) (*backend.Backend, error) {
	switch cfg.Backend {
	case config.BackendFirebase:
		return firebase.New(ctx, firebase.Config{
			ProjectID:       cfg.FirebaseProjectID,
			CredentialsJSON: cfg.FirebaseCredentials,
			Bucket:          cfg.FirebaseBucket,
			Collection:      cfg.ListingsCollection,
		})

	case config.BackendMongo:
		store, err := mongodb.New(ctx, cfg.MongoURI, cfg.MongoDB, cfg.ListingsCollection)
		if err != nil {
			return nil, err
		}
		storage, err := disk.New(cfg.UploadDir, "")
		if err != nil {
			return nil, err
		}
		return &backend.Backend{
			Auth:     localauth.New(cfg.JWTSecret),
			Listings: store,
			Storage:  storage,
		}, nil

	default: // Supabase: Postgres data plus hosted image storage
		store, err := postgres.New(ctx, cfg.DatabaseURL, cfg.ListingsCollection)
		if err != nil {
			return nil, err
		}

		var storage backend.BlobStorage
		if cfg.CloudinaryCloudName != "" {
			storage, err = cloudinary.New(
				cfg.CloudinaryCloudName,
				cfg.CloudinaryAPIKey,
				cfg.CloudinaryAPISecret,
				cfg.CloudinaryFolder,
			)
		} else {
			storage, err = disk.New(cfg.UploadDir, "")
		}
		if err != nil {
			return nil, err
		}

		return &backend.Backend{
			Auth:     localauth.New(cfg.JWTSecret),
			Listings: store,
			Storage:  storage,
		}, nil
	}
}
