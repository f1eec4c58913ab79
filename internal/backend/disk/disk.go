// Package disk stores uploaded images on the local filesystem and serves
// them under /uploads/. Used by the Mongo variant and for development runs.
package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

type Storage struct {
	mu      sync.Mutex
	dir     string
	baseURL string
}

func New(dir, baseURL string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Storage{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/")}, nil
}

// Upload writes the file under the upload directory and returns its public
// URL. The storage path is flattened into a single file name; the path is
// already collision-resistant, so no subdirectories are needed.
func (s *Storage) Upload(ctx context.Context, path string, r io.Reader) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.ReplaceAll(path, "/", "_")
	filePath := filepath.Join(s.dir, name)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		os.Remove(filePath) // Clean up on error
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return s.baseURL + "/uploads/" + name, nil
}
