package firebase

import (
	"context"
	"fmt"
	"io"
	"net/url"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

// Storage uploads listing images to the Firebase Storage bucket and returns
// tokenized public download URLs.
type Storage struct {
	gcs    *storage.Client
	bucket string
}

func newStorage(ctx context.Context, bucket string, opts ...option.ClientOption) (*Storage, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("storage client: %w", err)
	}
	return &Storage{gcs: client, bucket: bucket}, nil
}

// Upload writes the file bytes to the bucket at path and returns the durable
// download URL. Errors come back untouched; the caller handles messaging.
func (s *Storage) Upload(ctx context.Context, path string, r io.Reader) (string, error) {
	token := uuid.New().String()

	w := s.gcs.Bucket(s.bucket).Object(path).NewWriter(ctx)
	w.Metadata = map[string]string{
		"firebaseStorageDownloadTokens": token,
	}

	if _, err := io.Copy(w, r); err != nil {
		w.Close()
		return "", err
	}
	if err := w.Close(); err != nil {
		return "", err
	}

	return downloadURL(s.bucket, path, token), nil
}

func downloadURL(bucket, objectName, token string) string {
	return fmt.Sprintf(
		"https://firebasestorage.googleapis.com/v0/b/%s/o/%s?alt=media&token=%s",
		bucket,
		url.PathEscape(objectName),
		url.QueryEscape(token),
	)
}
