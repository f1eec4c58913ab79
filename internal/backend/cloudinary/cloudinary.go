// Package cloudinary provides the object-storage driver used by the Postgres
// variant: listing images are hosted on Cloudinary and referenced by their
// delivery URL.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

type Storage struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func New(cloudName, apiKey, apiSecret, folder string) (*Storage, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary client: %w", err)
	}
	return &Storage{cld: cld, folder: folder}, nil
}

// Upload pushes the file bytes to Cloudinary under the storage path and
// returns the secure delivery URL.
func (s *Storage) Upload(ctx context.Context, path string, r io.Reader) (string, error) {
	// Cloudinary derives the format itself; the extension stays out of the
	// public id so delivery URLs do not double it up.
	publicID := strings.TrimSuffix(path, extOf(path))

	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID: publicID,
		Folder:   s.folder,
	})
	if err != nil {
		return "", err
	}
	if resp.Error.Message != "" {
		return "", errors.New(resp.Error.Message)
	}

	log.Printf("[cloudinary] uploaded %s", resp.PublicID)
	return resp.SecureURL, nil
}

func extOf(path string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndex(path, "/") {
		return path[i:]
	}
	return ""
}
