package storage

import (
	"context"
	"errors"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/dialpro/apiserver/config"
)

// GCSClient keeps export artifacts in a Google Cloud Storage bucket.
type GCSClient struct {
	client    *storage.Client
	bucket    string
	projectID string
}

// NewGCSClient constructs a GCS client from config.
func NewGCSClient(ctx context.Context, cfg config.GCSConfig) (*GCSClient, error) {
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, errors.New("gcs bucket is required")
	}

	var opts []option.ClientOption
	if strings.TrimSpace(cfg.CredentialsFile) != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &GCSClient{
		client:    client,
		bucket:    cfg.Bucket,
		projectID: cfg.ProjectID,
	}, nil
}

// EnsureBucket creates the export bucket if it does not exist yet.
// Creation needs a project id; existence checks do not.
func (c *GCSClient) EnsureBucket(ctx context.Context) error {
	_, err := c.client.Bucket(c.bucket).Attrs(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, storage.ErrBucketNotExist) {
		return err
	}
	if strings.TrimSpace(c.projectID) == "" {
		return errors.New("gcs project id is required to create bucket")
	}
	return c.client.Bucket(c.bucket).Create(ctx, c.projectID, nil)
}

// Put uploads an export artifact under the given key.
func (c *GCSClient) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	writer := c.object(key).NewWriter(ctx)
	if strings.TrimSpace(contentType) != "" {
		writer.ContentType = contentType
	}
	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return err
	}
	return writer.Close()
}

// Get opens a reader for a stored artifact.
func (c *GCSClient) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	return c.object(key).NewReader(ctx)
}

// Delete removes a stored artifact.
func (c *GCSClient) Delete(ctx context.Context, key string) error {
	return c.object(key).Delete(ctx)
}

// Bucket returns the configured bucket name.
func (c *GCSClient) Bucket() string {
	return c.bucket
}

func (c *GCSClient) object(key string) *storage.ObjectHandle {
	return c.client.Bucket(c.bucket).Object(key)
}
