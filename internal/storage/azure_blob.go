package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/container"
	"go.uber.org/zap"
)

// azureUploadBlockSize keeps snapshot uploads to a few blocks for a typical
// small-business database
const azureUploadBlockSize = 4 << 20

// AzureBlobStorage keeps logos and snapshots as block blobs in one container
type AzureBlobStorage struct {
	container *container.Client
	name      string
	logger    *zap.Logger
}

// NewAzureBlobStorage connects to containerName, creating it on first use
func NewAzureBlobStorage(ctx context.Context, connectionString, containerName string, logger *zap.Logger) (*AzureBlobStorage, error) {
	client, err := container.NewClientFromConnectionString(connectionString, containerName, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create container client: %w", err)
	}

	if _, err := client.Create(ctx, nil); err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		return nil, fmt.Errorf("failed to create container %q: %w", containerName, err)
	}

	logger.Info("Azure Blob Storage initialized", zap.String("container", containerName))

	return &AzureBlobStorage{container: client, name: containerName, logger: logger}, nil
}

// Upload streams data into the block blob named key. An existing blob is
// overwritten, so re-uploading a logo keeps a single object.
func (s *AzureBlobStorage) Upload(ctx context.Context, key string, contentType string, data io.Reader) (string, int64, error) {
	name, err := CleanKey(key)
	if err != nil {
		return "", 0, err
	}

	body := &countingReader{r: data}
	_, err = s.container.NewBlockBlobClient(name).UploadStream(ctx, body, &blockblob.UploadStreamOptions{
		BlockSize:   azureUploadBlockSize,
		HTTPHeaders: &blob.HTTPHeaders{BlobContentType: &contentType},
	})
	if err != nil {
		return "", 0, fmt.Errorf("failed to upload blob %q: %w", name, err)
	}

	s.logger.Info("Object stored in Azure Blob Storage",
		zap.String("object", name),
		zap.String("container", s.name),
		zap.String("content_type", contentType),
		zap.Int64("size", body.count),
	)
	return name, body.count, nil
}

// Download opens the blob stored under storagePath
func (s *AzureBlobStorage) Download(ctx context.Context, storagePath string) (io.ReadCloser, error) {
	name, err := CleanKey(storagePath)
	if err != nil {
		return nil, err
	}

	resp, err := s.container.NewBlobClient(name).DownloadStream(ctx, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to download blob %q: %w", name, err)
	}
	return resp.Body, nil
}

// Delete removes the blob. A missing blob counts as deleted.
func (s *AzureBlobStorage) Delete(ctx context.Context, storagePath string) error {
	name, err := CleanKey(storagePath)
	if err != nil {
		return err
	}

	_, err = s.container.NewBlobClient(name).Delete(ctx, nil)
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to delete blob %q: %w", name, err)
	}

	s.logger.Info("Object deleted from Azure Blob Storage",
		zap.String("object", name),
		zap.String("container", s.name),
	)
	return nil
}

// countingReader reports how many bytes an upload consumed
type countingReader struct {
	r     io.Reader
	count int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.count += int64(n)
	return n, err
}
