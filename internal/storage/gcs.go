package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	gcs "cloud.google.com/go/storage"
	"google.golang.org/api/option"
	"go.uber.org/zap"
)

// GCSStorage implements Storage interface for Google Cloud Storage
type GCSStorage struct {
	client *gcs.Client
	bucket string
	logger *zap.Logger
}

// NewGCSStorage creates a client from explicit credentials JSON, or from
// application default credentials when credentialsJSON is empty
func NewGCSStorage(ctx context.Context, bucket, credentialsJSON string, logger *zap.Logger) (*GCSStorage, error) {
	var opts []option.ClientOption
	if strings.TrimSpace(credentialsJSON) != "" {
		opts = append(opts, option.WithCredentialsJSON([]byte(credentialsJSON)))
	}

	client, err := gcs.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gcs client: %w", err)
	}

	if _, err := client.Bucket(bucket).Attrs(ctx); err != nil {
		client.Close()
		return nil, fmt.Errorf("gcs bucket %q not found or not accessible: %w", bucket, err)
	}

	logger.Info("Google Cloud Storage initialized", zap.String("bucket", bucket))

	return &GCSStorage{client: client, bucket: bucket, logger: logger}, nil
}

// Upload writes data to the object named key, replacing any existing object
func (s *GCSStorage) Upload(ctx context.Context, key string, contentType string, data io.Reader) (string, int64, error) {
	objectName, err := CleanKey(key)
	if err != nil {
		return "", 0, err
	}

	w := s.client.Bucket(s.bucket).Object(objectName).NewWriter(ctx)
	w.ContentType = contentType

	size, err := io.Copy(w, data)
	if err != nil {
		w.Close()
		return "", 0, fmt.Errorf("failed to upload object: %w", err)
	}
	if err := w.Close(); err != nil {
		return "", 0, fmt.Errorf("failed to finalize object: %w", err)
	}

	s.logger.Info("File uploaded to Google Cloud Storage",
		zap.String("object", objectName),
		zap.String("bucket", s.bucket),
		zap.String("contentType", contentType),
		zap.Int64("size", size),
	)

	return objectName, size, nil
}

// Download opens a reader on the stored object
func (s *GCSStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	objectName, err := CleanKey(storagePath)
	if err != nil {
		return nil, err
	}
	r, err := s.client.Bucket(s.bucket).Object(objectName).NewReader(ctx)
	if err != nil {
		if errors.Is(err, gcs.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, storagePath)
		}
		return nil, fmt.Errorf("failed to download object: %w", err)
	}
	return r, nil
}

// Delete removes the object, treating a missing object as deleted
func (s *GCSStorage) Delete(ctx context.Context, storagePath string) error {
	objectName, err := CleanKey(storagePath)
	if err != nil {
		return err
	}
	err = s.client.Bucket(s.bucket).Object(objectName).Delete(ctx)
	if err != nil && !errors.Is(err, gcs.ErrObjectNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// Close releases the underlying client
func (s *GCSStorage) Close() error {
	return s.client.Close()
}
