package file

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore keeps blobs as plain files under a single upload root,
// named by their (decoded) original file name. A same-named write
// overwrites silently; collision handling is the caller's concern.
type DiskStore struct {
	root string
}

// NewDiskStore creates the upload root if needed and returns the store.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", root, err)
	}
	return &DiskStore{root: root}, nil
}

// Save writes the blob and returns the path it is addressable by.
func (s *DiskStore) Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	path := filepath.Join(s.root, filepath.Base(name))

	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create blob %q: %w", path, err)
	}

	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		os.Remove(path)
		return "", fmt.Errorf("write blob %q: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close blob %q: %w", path, err)
	}

	return path, nil
}

// Open returns a reader over the blob at path.
func (s *DiskStore) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileGone
		}
		return nil, fmt.Errorf("open blob %q: %w", path, err)
	}
	return f, nil
}

// Exists reports whether a blob is present at path.
func (s *DiskStore) Exists(ctx context.Context, path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat blob %q: %w", path, err)
	}
	return true, nil
}

// Remove deletes the blob at path.
func (s *DiskStore) Remove(ctx context.Context, path string) error {
	if err := os.Remove(path); err != nil {
		if os.IsNotExist(err) {
			return ErrFileGone
		}
		return fmt.Errorf("remove blob %q: %w", path, err)
	}
	return nil
}
