// Package storage keeps rendered images and uploaded plans either on the
// local disk or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/templui/homerender/internal/config"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"

	// Top-level prefixes every backend prepares at startup.
	RenderingsDir = "renderings"
	PlansDir      = "plans"
)

var (
	ErrFileNotFound = errors.New("file not found")
	ErrFileExists   = errors.New("file already exists")
	ErrInvalidPath  = errors.New("invalid storage path")
)

// Storage defines the file operations the app needs. Paths are slash
// separated and relative to the storage root, e.g. "renderings/ab12.png".
type Storage interface {
	// Save writes a new file. Existing files are never overwritten.
	Save(ctx context.Context, path string, r io.Reader) error

	// Open returns the file contents. The caller closes the reader.
	Open(ctx context.Context, path string) (io.ReadCloser, error)

	// URL returns the address a browser can load a rendering from.
	URL(path string) string
}

// New creates the backend selected by STORAGE_DRIVER.
func New(cfg *config.Config) (Storage, error) {
	switch cfg.StorageDriver {
	case DriverLocal:
		slog.Info("initializing local storage", "dir", cfg.StaticDir)
		return NewLocalStorage(cfg.StaticDir, "/static")

	case DriverS3:
		slog.Info("initializing S3 storage",
			"bucket", cfg.S3Bucket,
			"region", cfg.S3Region,
			"endpoint", cfg.S3Endpoint,
		)
		return NewS3Storage(context.Background(), S3Config{
			Region:              cfg.S3Region,
			Bucket:              cfg.S3Bucket,
			AccessKey:           cfg.S3AccessKey,
			SecretKey:           cfg.S3SecretKey,
			Endpoint:            cfg.S3Endpoint,
			PresignExpiryPublic: cfg.S3PresignExpiryPublic,
		})

	default:
		return nil, fmt.Errorf("unknown storage driver: %s (supported: local, s3)", cfg.StorageDriver)
	}
}
