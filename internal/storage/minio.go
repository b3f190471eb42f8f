package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"medibook/internal/config"
)

// ImageStore resolves doctor image object keys into time-limited URLs.
type ImageStore struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

// NewMinIOImageStore connects to the configured bucket, creating it when it
// does not exist yet.
func NewMinIOImageStore(ctx context.Context, cfg config.StorageConfig) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	expiry := time.Duration(cfg.URLExpiryMinutes) * time.Minute
	if expiry <= 0 {
		expiry = time.Hour
	}

	return &ImageStore{client: client, bucket: cfg.Bucket, expiry: expiry}, nil
}

// ImageURL returns a presigned GET URL for key.
func (s *ImageStore) ImageURL(ctx context.Context, key string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, strings.TrimPrefix(key, "/"), s.expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign %s: %w", key, err)
	}
	return u.String(), nil
}

// IsObjectKey reports whether an image_url value names an object in the
// bucket rather than an absolute URL.
func IsObjectKey(imageURL string) bool {
	if imageURL == "" {
		return false
	}
	lower := strings.ToLower(imageURL)
	return !strings.HasPrefix(lower, "http://") &&
		!strings.HasPrefix(lower, "https://") &&
		!strings.HasPrefix(lower, "data:")
}
