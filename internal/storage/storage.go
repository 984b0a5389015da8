package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/dukerupert/shipengine/internal"
)

// Storage defines the interface for label artifact storage.
// Implementations can use the local filesystem or any S3-compatible bucket.
type Storage interface {
	// Put stores a file and returns its URL/path for retrieval.
	// The key should be a unique identifier (e.g., "labels/se-123.pdf").
	Put(ctx context.Context, key string, content io.Reader, contentType string) (string, error)

	// Get retrieves a file by its key.
	// Returns an io.ReadCloser that must be closed by the caller.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file by its key.
	// Returns nil if the file doesn't exist (idempotent).
	Delete(ctx context.Context, key string) error

	// URL returns the location of a stored file.
	URL(key string) string

	Exists(ctx context.Context, key string) (bool, error)
}

// NewStorage creates a Storage implementation based on configuration.
// Returns LocalStorage for "local", and S3Storage for "s3" and "r2".
func NewStorage(ctx context.Context, cfg internal.StorageConfig) (Storage, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL)
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:          cfg.Bucket,
			Region:          cfg.Region,
			Endpoint:        cfg.Endpoint,
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			PublicURL:       cfg.PublicURL,
			UsePathStyle:    cfg.UsePathStyle,
		})
	case "r2":
		if cfg.R2AccountID == "" {
			return nil, ErrR2AccountIDRequired
		}
		if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
			return nil, ErrCredentialsRequired
		}
		return NewS3Storage(ctx, S3Config{
			Bucket:          cfg.Bucket,
			Region:          "auto",
			Endpoint:        fmt.Sprintf("https://%s.r2.cloudflarestorage.com", cfg.R2AccountID),
			AccessKeyID:     cfg.AccessKeyID,
			SecretAccessKey: cfg.SecretAccessKey,
			PublicURL:       cfg.PublicURL,
			UsePathStyle:    true,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}
