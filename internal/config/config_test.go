package config

import (
	"os"
	"testing"
)

// unset clears an env var for the test; t.Setenv first so the original value
// is restored afterwards.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "")
	os.Unsetenv(key)
}

func TestHasBackendCredentials(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{"supabase complete", Config{Backend: BackendSupabase, SupabaseURL: "https://x.supabase.co", SupabaseAnonKey: "anon"}, true},
		{"supabase missing key", Config{Backend: BackendSupabase, SupabaseURL: "https://x.supabase.co"}, false},
		{"firebase complete", Config{Backend: BackendFirebase, FirebaseProjectID: "proj"}, true},
		{"firebase missing project", Config{Backend: BackendFirebase}, false},
		{"mongo complete", Config{Backend: BackendMongo, MongoURI: "mongodb://localhost"}, true},
		{"mongo missing uri", Config{Backend: BackendMongo}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.HasBackendCredentials(); got != tt.want {
				t.Fatalf("HasBackendCredentials = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost:5432/udgir")
	unset(t, "BACKEND")
	unset(t, "MAX_UPLOAD_SIZE_MB")
	unset(t, "LISTINGS_COLLECTION")

	cfg := Load()

	if cfg.Backend != BackendSupabase {
		t.Fatalf("Backend = %q, want supabase default", cfg.Backend)
	}
	if cfg.MaxUploadBytes != 5*1024*1024 {
		t.Fatalf("MaxUploadBytes = %d, want 5 MiB", cfg.MaxUploadBytes)
	}
	if cfg.ListingsCollection != "listings" {
		t.Fatalf("ListingsCollection = %q", cfg.ListingsCollection)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("MAX_UPLOAD_SIZE_MB", "10")

	cfg := Load()

	if cfg.Backend != BackendMongo {
		t.Fatalf("Backend = %q, want mongo", cfg.Backend)
	}
	if cfg.MaxUploadBytes != 10*1024*1024 {
		t.Fatalf("MaxUploadBytes = %d, want 10 MiB", cfg.MaxUploadBytes)
	}
	if !cfg.HasBackendCredentials() {
		t.Fatal("mongo credentials should be detected")
	}
}

func TestLoadRejectsBadUploadCap(t *testing.T) {
	t.Setenv("MAX_UPLOAD_SIZE_MB", "-3")
	if cfg := Load(); cfg.MaxUploadBytes != 5*1024*1024 {
		t.Fatalf("MaxUploadBytes = %d, want 5 MiB fallback", cfg.MaxUploadBytes)
	}
}
