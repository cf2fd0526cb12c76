// Package archive stores the raw XML blob of each accepted comprobante
// in object storage, keyed by clave de acceso, and hands back a URL that
// is kept on the persisted record.
package archive

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3Config carries the object-storage connection settings.
type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	URLTTL    time.Duration
}

// S3Archiver implements raw-XML archiving against MinIO or any
// S3-compatible endpoint.
type S3Archiver struct {
	client *minio.Client
	bucket string
	region string
	urlTTL time.Duration
}

// NewS3Archiver creates a MinIO client from the config.
func NewS3Archiver(cfg S3Config) (*S3Archiver, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("init minio: %w", err)
	}
	ttl := cfg.URLTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &S3Archiver{
		client: client,
		bucket: cfg.Bucket,
		region: cfg.Region,
		urlTTL: ttl,
	}, nil
}

// EnsureBucket makes sure the archive bucket exists before use.
func (a *S3Archiver) EnsureBucket(ctx context.Context) error {
	exists, err := a.client.BucketExists(ctx, a.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %s: %w", a.bucket, err)
	}
	if !exists {
		if err := a.client.MakeBucket(ctx, a.bucket, minio.MakeBucketOptions{Region: a.region}); err != nil {
			return fmt.Errorf("make bucket %s: %w", a.bucket, err)
		}
	}
	return nil
}

// Archive uploads the raw XML under xmls/<claveAcceso>.xml and returns a
// presigned GET URL for it.
func (a *S3Archiver) Archive(ctx context.Context, claveAcceso string, xmlData []byte) (string, error) {
	objectKey := fmt.Sprintf("xmls/%s.xml", claveAcceso)
	opts := minio.PutObjectOptions{ContentType: "application/xml"}
	_, err := a.client.PutObject(ctx, a.bucket, objectKey, bytes.NewReader(xmlData), int64(len(xmlData)), opts)
	if err != nil {
		return "", fmt.Errorf("upload xml object: %w", err)
	}

	u, err := a.client.PresignedGetObject(ctx, a.bucket, objectKey, a.urlTTL, url.Values{})
	if err != nil {
		return "", fmt.Errorf("presign xml object: %w", err)
	}
	return u.String(), nil
}
