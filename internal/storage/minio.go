package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/arzan03/ElectricTools/internal/logger"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

// ImageStore keeps tool images in a MinIO bucket.
type ImageStore struct {
	client   *minio.Client
	bucket   string
	endpoint string
	scheme   string
}

func NewImageStore(ctx context.Context, cfg MinioConfig) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	// Create required bucket if it doesn't exist
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		logger.Warn("failed to check bucket existence", "bucket", cfg.Bucket, "error", err)
	} else if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			logger.Warn("failed to create bucket", "bucket", cfg.Bucket, "error", err)
		} else {
			logger.Info("created bucket", "bucket", cfg.Bucket)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}
	logger.Info("connected to MinIO", "endpoint", cfg.Endpoint)
	return &ImageStore{client: client, bucket: cfg.Bucket, endpoint: cfg.Endpoint, scheme: scheme}, nil
}

// PutImage uploads under "<prefix>/<uuid><ext>" and returns the object URL.
func (s *ImageStore) PutImage(ctx context.Context, prefix, filename string, r io.Reader, size int64, contentType string) (string, error) {
	objectName := fmt.Sprintf("%s/%s%s", prefix, uuid.NewString(), strings.ToLower(path.Ext(filename)))

	_, err := s.client.PutObject(ctx, s.bucket, objectName, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to storage: %w", err)
	}

	return fmt.Sprintf("%s://%s/%s/%s", s.scheme, s.endpoint, s.bucket, objectName), nil
}
