// Package storage holds resume and portfolio attachments in MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"gamecraft/internal/config"
)

// AttachmentKind selects the slot a file fills on an application.
type AttachmentKind string

const (
	KindResume    AttachmentKind = "resume"
	KindPortfolio AttachmentKind = "portfolio"
)

// ParseAttachmentKind validates a kind string from the API.
func ParseAttachmentKind(s string) (AttachmentKind, error) {
	switch AttachmentKind(s) {
	case KindResume:
		return KindResume, nil
	case KindPortfolio:
		return KindPortfolio, nil
	}
	return "", fmt.Errorf("invalid attachment kind: %q", s)
}

// Client wraps the MinIO SDK with application-shaped operations.
type Client struct {
	mc     *minio.Client
	bucket string
}

// NewClient connects to MinIO and ensures the attachment bucket exists.
func NewClient(cfg config.MinIOConfig) (*Client, error) {
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := mc.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := mc.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("make bucket %q: %w", cfg.Bucket, err)
		}
	}

	return &Client{mc: mc, bucket: cfg.Bucket}, nil
}

// ObjectKey builds the storage key for one attachment slot. The random
// segment keeps re-uploads from colliding with stale objects.
func ObjectKey(applicationID uint, kind AttachmentKind, fileName string) string {
	ext := strings.ToLower(path.Ext(fileName))
	return fmt.Sprintf("applications/%d/%s/%s%s", applicationID, kind, uuid.NewString(), ext)
}

// UploadAttachment stores a file under the given key.
func (c *Client) UploadAttachment(ctx context.Context, objectKey string, reader io.Reader, size int64, contentType string) error {
	opts := minio.PutObjectOptions{ContentType: contentType}
	if _, err := c.mc.PutObject(ctx, c.bucket, objectKey, reader, size, opts); err != nil {
		return fmt.Errorf("put object %q: %w", objectKey, err)
	}
	return nil
}

// PresignedURL generates a limited-time download link for an
// attachment.
func (c *Client) PresignedURL(ctx context.Context, objectKey string, duration time.Duration) (string, error) {
	u, err := c.mc.PresignedGetObject(ctx, c.bucket, objectKey, duration, nil)
	if err != nil {
		return "", fmt.Errorf("presign %q: %w", objectKey, err)
	}
	return u.String(), nil
}

// DeleteAttachment removes an object. A missing object counts as
// success.
func (c *Client) DeleteAttachment(ctx context.Context, objectKey string) error {
	objectKey = strings.TrimSpace(objectKey)
	if objectKey == "" {
		return nil
	}
	if err := c.mc.RemoveObject(ctx, c.bucket, objectKey, minio.RemoveObjectOptions{}); err != nil {
		if IsNoSuchKey(err) {
			return nil
		}
		return fmt.Errorf("remove object %q: %w", objectKey, err)
	}
	return nil
}
