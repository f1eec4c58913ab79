package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/HARSHsabne/Udgir-Marketplace-App/internal/backend"
)

// Uploader streams files to object storage under a collision-resistant path.
type Uploader struct {
	storage backend.BlobStorage
}

func NewUploader(storage backend.BlobStorage) *Uploader {
	return &Uploader{storage: storage}
}

// ObjectPath builds the storage path from the user id, the upload time in
// milliseconds and the original filename. The millis component keeps repeat
// uploads of the same file apart; it does not guarantee uniqueness if the
// clock is coarser than the call rate, which is accepted.
func ObjectPath(userID, filename string, now time.Time) string {
	return fmt.Sprintf("images/listings/%s_%d_%s", userID, now.UnixMilli(), filename)
}

// Upload pushes the file and returns its durable public URL. Errors come
// back from the storage driver untouched; the caller owns messaging.
func (u *Uploader) Upload(ctx context.Context, userID, filename string, r io.Reader) (string, error) {
	return u.storage.Upload(ctx, ObjectPath(userID, filename, time.Now()), r)
}
