// Package storage persists uploaded asset files on local disk or in an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Backend names accepted by NewStorageService.
const (
	BackendLocal = "local"
	BackendS3    = "s3"
)

// ErrInvalidKey is returned for keys that are empty or would escape the storage root.
var ErrInvalidKey = errors.New("invalid storage key")

// ServiceConfig holds the configuration required to connect to the storage service.
type ServiceConfig struct {
	Backend string

	// Local backend.
	UploadDir  string
	PublicPath string

	// S3 backend.
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string
}

// StorageService defines the public interface for the file storage service.
type StorageService interface {
	// Put stores body under key and returns the URL clients fetch it from.
	Put(ctx context.Context, key, contentType string, body io.Reader) (string, error)

	// Delete removes the file specified by the given key.
	Delete(ctx context.Context, key string) error
}

// NewStorageService is the factory function for StorageService.
// It initializes and returns a concrete implementation based on the provided configuration.
func NewStorageService(cfg ServiceConfig) (StorageService, error) {
	switch cfg.Backend {
	case BackendLocal, "":
		return newLocalStore(cfg)
	case BackendS3:
		return newS3Client(cfg)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}

// validateKey accepts flat object names only.
func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
