package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/imanage/imanage-api/internal/config"
	"go.uber.org/zap"
)

// ErrNotFound is returned by Download when no object exists under the key
var ErrNotFound = errors.New("file not found")

// Storage stores branding assets and database snapshots under caller-chosen
// keys. Uploading to an existing key replaces the object.
type Storage interface {
	Upload(ctx context.Context, key string, contentType string, data io.Reader) (string, int64, error)
	Download(ctx context.Context, storagePath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storagePath string) error
}

// NewStorage creates a storage backend for the configured mode.
// Local mode writes below LocalBasePath; azure and gcs keep objects in the
// configured container or bucket.
func NewStorage(ctx context.Context, cfg *config.StorageConfig, logger *zap.Logger) (Storage, error) {
	switch cfg.Mode {
	case "local", "":
		return NewLocalStorage(cfg.LocalBasePath)
	case "cloud", "azure":
		if cfg.CloudConnectionString == "" {
			return nil, fmt.Errorf("cloud connection string required for azure storage")
		}
		return NewAzureBlobStorage(ctx, cfg.CloudConnectionString, cfg.CloudContainer, logger)
	case "gcs":
		if cfg.GCSBucket == "" {
			return nil, fmt.Errorf("bucket name required for gcs storage")
		}
		return NewGCSStorage(ctx, cfg.GCSBucket, cfg.GCSCredentialsJSON, logger)
	default:
		return nil, fmt.Errorf("unsupported storage mode: %s", cfg.Mode)
	}
}

// CleanKey normalizes key to a relative slash-separated path and rejects
// keys that would escape the storage root
func CleanKey(key string) (string, error) {
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	cleaned = strings.TrimPrefix(cleaned, "/")
	if cleaned == "" || cleaned == "." {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return cleaned, nil
}

// LocalStorage implements Storage interface for local filesystem
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalStorage{
		basePath: basePath,
	}, nil
}

func (s *LocalStorage) fullPath(key string) (string, string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", "", err
	}
	return cleaned, filepath.Join(s.basePath, filepath.FromSlash(cleaned)), nil
}

// Upload writes data to key through a temporary file so a failed write never
// leaves a truncated object behind
func (s *LocalStorage) Upload(ctx context.Context, key string, contentType string, data io.Reader) (string, int64, error) {
	storagePath, fullPath, err := s.fullPath(key)
	if err != nil {
		return "", 0, err
	}

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", 0, fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return "", 0, fmt.Errorf("failed to create file: %w", err)
	}

	size, err := io.Copy(tmp, data)
	closeErr := tmp.Close()
	if err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	if err := os.Rename(tmp.Name(), fullPath); err != nil {
		os.Remove(tmp.Name())
		return "", 0, fmt.Errorf("failed to store file: %w", err)
	}

	return storagePath, size, nil
}

// Download opens the file stored under storagePath
func (s *LocalStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	_, fullPath, err := s.fullPath(storagePath)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return file, nil
}

// Delete deletes a file from local storage
func (s *LocalStorage) Delete(ctx context.Context, storagePath string) error {
	_, fullPath, err := s.fullPath(storagePath)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil // Already deleted
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}
