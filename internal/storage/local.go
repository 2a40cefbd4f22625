package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore keeps images on the local filesystem under root, served at baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore creates the root directory if needed.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return &LocalStore{root: root, baseURL: baseURL}, nil
}

// Root returns the directory images are written to.
func (s *LocalStore) Root() string {
	return s.root
}

// Path returns the filesystem path of key.
func (s *LocalStore) Path(key string) (string, error) {
	cleaned, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(cleaned)), nil
}

// Save writes body to a temporary file and renames it into place, so readers never see a partial image.
func (s *LocalStore) Save(ctx context.Context, key string, body io.Reader, contentType string) error {
	dst, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("create image dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, body); err != nil {
		tmp.Close()
		return fmt.Errorf("write image %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close image %s: %w", key, err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return fmt.Errorf("move image %s: %w", key, err)
	}
	return nil
}

// Delete removes key. A missing file is not an error.
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete image %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) URL(key string) string {
	return joinURL(s.baseURL, key)
}
