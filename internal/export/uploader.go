package export

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/tagdesk/tagdesk-server/internal/config"
)

// ObjectStore is the subset of *minio.Client the uploader needs.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucketName string) (bool, error)
	MakeBucket(ctx context.Context, bucketName string, opts minio.MakeBucketOptions) error
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Uploader writes export documents into one bucket.
type Uploader struct {
	client ObjectStore
	bucket string
	logger *slog.Logger
}

// NewUploader connects to the S3-compatible endpoint in cfg.
// The bucket is created on first upload if it does not exist.
func NewUploader(cfg config.ExportConfig, logger *slog.Logger) (*Uploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create object storage client: %w", err)
	}
	return NewUploaderWithClient(client, cfg.Bucket, logger), nil
}

// NewUploaderWithClient wraps an existing client.
func NewUploaderWithClient(client ObjectStore, bucket string, logger *slog.Logger) *Uploader {
	return &Uploader{
		client: client,
		bucket: bucket,
		logger: logger,
	}
}

// Bucket returns the target bucket name.
func (u *Uploader) Bucket() string {
	return u.bucket
}

// Put stores body under objectName.
func (u *Uploader) Put(ctx context.Context, objectName, contentType string, body []byte) (minio.UploadInfo, error) {
	exists, err := u.client.BucketExists(ctx, u.bucket)
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("check bucket %s: %w", u.bucket, err)
	}
	if !exists {
		if err := u.client.MakeBucket(ctx, u.bucket, minio.MakeBucketOptions{}); err != nil {
			return minio.UploadInfo{}, fmt.Errorf("create bucket %s: %w", u.bucket, err)
		}
		u.logger.Info("export bucket created", "bucket", u.bucket)
	}

	info, err := u.client.PutObject(ctx, u.bucket, objectName, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return minio.UploadInfo{}, fmt.Errorf("put %s/%s: %w", u.bucket, objectName, err)
	}
	return info, nil
}
