package file

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// MinIOStore adapts minio.Client to the blobStore interface. Blob paths
// are object names inside a single bucket.
type MinIOStore struct {
	client *minio.Client
	bucket string
}

// NewMinIOStore constructs an adapter over the given bucket.
func NewMinIOStore(client *minio.Client, bucket string) *MinIOStore {
	return &MinIOStore{client: client, bucket: bucket}
}

// Save uploads the blob under its file name and returns the object name.
func (s *MinIOStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	info, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("store object %q: %w", name, err)
	}
	return info.Key, nil
}

// Open returns a reader over the stored object.
func (s *MinIOStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch object %q: %w", path, err)
	}
	return obj, nil
}

// Exists reports whether the object is present in the bucket.
func (s *MinIOStore) Exists(ctx context.Context, path string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, path, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, fmt.Errorf("stat object %q: %w", path, err)
	}
	return true, nil
}

// Remove deletes the object from the bucket.
func (s *MinIOStore) Remove(ctx context.Context, path string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %q: %w", path, err)
	}
	return nil
}
