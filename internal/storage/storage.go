package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Store is the object storage collaborator: profile pictures go in with Put
// and come back out as time-limited signed URLs.
type Store interface {
	Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error
	SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error)
}

type Client struct {
	mc     *minio.Client
	bucket string
}

func NewClient() (*Client, error) {
	endpoint := os.Getenv("STORAGE_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	accessKey := os.Getenv("STORAGE_ACCESS_KEY")
	secretKey := os.Getenv("STORAGE_SECRET_KEY")
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "profile-pics"
	}
	useSSL := strings.EqualFold(os.Getenv("STORAGE_USE_SSL"), "true")

	mc, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	client := &Client{mc: mc, bucket: bucket}
	if err := client.ensureBucket(context.Background()); err != nil {
		return nil, err
	}
	return client, nil
}

func (c *Client) ensureBucket(ctx context.Context) error {
	exists, err := c.mc.BucketExists(ctx, c.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %q: %w", c.bucket, err)
	}
	if !exists {
		if err := c.mc.MakeBucket(ctx, c.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %q: %w", c.bucket, err)
		}
	}
	return nil
}

func (c *Client) Put(ctx context.Context, key string, reader io.Reader, size int64, contentType string) error {
	_, err := c.mc.PutObject(ctx, c.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to store object %q: %w", key, err)
	}
	return nil
}

func (c *Client) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := c.mc.PresignedGetObject(ctx, c.bucket, key, ttl, nil)
	if err != nil {
		return "", fmt.Errorf("failed to sign URL for %q: %w", key, err)
	}
	return u.String(), nil
}
