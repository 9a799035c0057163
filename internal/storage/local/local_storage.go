// Package local implements port.ObjectStorage on a local uploads directory.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"invotab/internal/port"
)

type localStorage struct {
	dir string
}

// NewStorage creates a disk-backed ObjectStorage rooted at dir, creating the
// directory if needed.
func NewStorage(dir string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

// path resolves a key inside the upload directory. Keys are flat names;
// anything path-like is reduced to its base so a key can never escape dir.
func (s *localStorage) path(key string) string {
	return filepath.Join(s.dir, filepath.Base(key))
}

func (s *localStorage) Upload(ctx context.Context, input port.UploadInput) error {
	f, err := os.Create(s.path(input.Key))
	if err != nil {
		return fmt.Errorf("creating upload file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, input.Body); err != nil {
		return fmt.Errorf("writing upload file: %w", err)
	}
	return nil
}

func (s *localStorage) Download(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, fmt.Errorf("reading upload file: %w", err)
	}
	return data, nil
}

func (s *localStorage) Delete(ctx context.Context, key string) error {
	if err := os.Remove(s.path(key)); err != nil {
		return fmt.Errorf("deleting upload file: %w", err)
	}
	return nil
}

func (s *localStorage) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing upload dir: %w", err)
	}

	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}
