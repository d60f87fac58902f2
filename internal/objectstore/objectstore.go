package objectstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"meetingflow/internal/config"
	"meetingflow/internal/logger"
)

// Client downloads meeting recordings from the MinIO/S3 bucket the backend
// uploads them to.
type Client struct {
	client *minio.Client
	logger logger.Logger
}

// New connects to the object store. A connection failure here is an intake
// infrastructure fault: the caller should disable broker-driven intake
// rather than accept jobs it cannot start.
func New(cfg config.MinioConfig, log logger.Logger) (*Client, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect object store: %w", err)
	}

	return &Client{client: client, logger: log}, nil
}

// Download fetches bucket/key into localPath, creating parent directories.
func (c *Client) Download(ctx context.Context, bucket, key, localPath string) error {
	if err := os.MkdirAll(filepath.Dir(localPath), 0755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	c.logger.Info(ctx, "Downloading s3://%s/%s -> %s", bucket, key, localPath)

	if err := c.client.FGetObject(ctx, bucket, key, localPath, minio.GetObjectOptions{}); err != nil {
		return fmt.Errorf("download recording %s/%s: %w", bucket, key, err)
	}

	c.logger.Info(ctx, "Download complete: %s", localPath)
	return nil
}
