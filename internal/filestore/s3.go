package filestore

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type S3Config struct {
	Endpoint  string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	// PublicURL is prepended to object keys when building image URLs.
	// Defaults to the endpoint URL followed by the bucket name.
	PublicURL string
}

type S3 struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

var _ FileStore = (*S3)(nil)

func NewS3(ctx context.Context, conf S3Config) (*S3, error) {
	client, err := minio.New(conf.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(conf.AccessKey, conf.SecretKey, ""),
		Secure: conf.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("creating object store client: %w", err)
	}

	exists, err := client.BucketExists(ctx, conf.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %q: %w", conf.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, conf.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %q: %w", conf.Bucket, err)
		}
	}

	return &S3{
		client:    client,
		bucket:    conf.Bucket,
		publicURL: s3PublicURL(conf),
	}, nil
}

func s3PublicURL(conf S3Config) string {
	if conf.PublicURL != "" {
		return strings.TrimRight(conf.PublicURL, "/")
	}
	scheme := "http"
	if conf.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s", scheme, strings.TrimRight(conf.Endpoint, "/"), conf.Bucket)
}

func (s *S3) Put(ctx context.Context, key string, data []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("putting object %q: %w", key, err)
	}
	return nil
}

func (s *S3) Delete(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing object %q: %w", key, err)
	}
	return nil
}

func (s *S3) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.publicURL + "/" + strings.TrimLeft(key, "/")
}
