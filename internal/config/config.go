package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Backend driver names accepted in the BACKEND variable.
const (
	BackendSupabase = "supabase"
	BackendFirebase = "firebase"
	BackendMongo    = "mongo"
)

type Config struct {
	ServerAddress string
	Backend       string
	AppID         string

	// SessionToken, when set, restores an existing session instead of
	// signing in anonymously.
	SessionToken string

	// Postgres (Supabase) variant.
	SupabaseURL     string
	SupabaseAnonKey string
	DatabaseURL     string

	// Firebase variant.
	FirebaseProjectID   string
	FirebaseCredentials string
	FirebaseBucket      string

	// Mongo variant.
	MongoURI string
	MongoDB  string

	// Cloudinary object storage (Postgres variant).
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	CloudinaryFolder    string

	JWTSecret string

	ListingsCollection string
	UploadDir          string
	MaxUploadBytes     int64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		dbURL = fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
			getEnv("PGUSER", "udgir_user"),
			getEnv("PGPASSWORD", "udgir_pass"),
			getEnv("PGHOST", "localhost"),
			getEnv("PGPORT", "5432"),
			getEnv("PGDATABASE", "udgir"),
			getEnv("PGSSLMODE", "disable"),
		)
	}

	maxUploadMB, err := strconv.ParseInt(getEnv("MAX_UPLOAD_SIZE_MB", "5"), 10, 64)
	if err != nil || maxUploadMB <= 0 {
		maxUploadMB = 5
	}

	return &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Backend:       getEnv("BACKEND", BackendSupabase),
		AppID:         getEnv("APP_ID", "default-app-id"),
		SessionToken:  getEnv("SESSION_TOKEN", ""),

		SupabaseURL:     getEnv("SUPABASE_URL", ""),
		SupabaseAnonKey: getEnv("SUPABASE_ANON_KEY", ""),
		DatabaseURL:     dbURL,

		FirebaseProjectID:   getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentials: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		FirebaseBucket:      getEnv("FIREBASE_STORAGE_BUCKET", ""),

		MongoURI: getEnv("MONGO_URI", ""),
		MongoDB:  getEnv("MONGO_DB", "udgir"),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		CloudinaryFolder:    getEnv("CLOUDINARY_FOLDER", "listing_images"),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key-change-in-production"),

		ListingsCollection: getEnv("LISTINGS_COLLECTION", "listings"),
		UploadDir:          getEnv("UPLOAD_DIR", "./uploads"),
		MaxUploadBytes:     maxUploadMB * 1024 * 1024,
	}
}

// HasBackendCredentials reports whether the selected backend has enough
// configuration to attempt a connection. When it returns false the app runs
// in read-only degraded mode instead of failing outright.
func (c *Config) HasBackendCredentials() bool {
	switch c.Backend {
	case BackendFirebase:
		return c.FirebaseProjectID != ""
	case BackendMongo:
		return c.MongoURI != ""
	default:
		return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
