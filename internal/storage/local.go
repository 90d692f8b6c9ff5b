package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// LocalStorage stores files below a directory that is also served over HTTP.
type LocalStorage struct {
	basePath  string
	urlPrefix string
}

// NewLocalStorage creates the base directory and the fixed subdirectories.
func NewLocalStorage(basePath, urlPrefix string) (*LocalStorage, error) {
	for _, dir := range []string{RenderingsDir, PlansDir} {
		if err := os.MkdirAll(filepath.Join(basePath, dir), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}

	return &LocalStorage{
		basePath:  basePath,
		urlPrefix: urlPrefix,
	}, nil
}

// Dir returns the root directory, for serving it with http.FileServer.
func (s *LocalStorage) Dir() string {
	return s.basePath
}

func (s *LocalStorage) fullPath(p string) (string, error) {
	if !filepath.IsLocal(filepath.FromSlash(p)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	return filepath.Join(s.basePath, filepath.FromSlash(p)), nil
}

func (s *LocalStorage) Save(ctx context.Context, p string, r io.Reader) error {
	fullPath, err := s.fullPath(p)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, p)
		}
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		os.Remove(fullPath)
		return fmt.Errorf("failed to write file: %w", err)
	}

	return file.Close()
}

func (s *LocalStorage) Open(ctx context.Context, p string) (io.ReadCloser, error) {
	fullPath, err := s.fullPath(p)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, p)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

func (s *LocalStorage) URL(p string) string {
	return path.Join(s.urlPrefix, p)
}
