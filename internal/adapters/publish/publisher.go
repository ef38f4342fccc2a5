// Package publish uploads written bundles to S3-compatible object storage.
package publish

import (
	"bytes"
	"context"
	"path"
	"strings"
	"sync"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.trai.ch/combiner/internal/core/domain"
	"go.trai.ch/combiner/internal/core/ports"
	"go.trai.ch/zerr"
)

// DefaultRegion is used when the configuration names none.
const DefaultRegion = "us-east-1"

var (
	_ ports.Publisher = (*S3)(nil)
	_ ports.Publisher = Noop{}
)

// New returns an S3 publisher when publishing is enabled and Noop otherwise.
func New(cfg domain.PublishConfig) (ports.Publisher, error) {
	if !cfg.Enabled {
		return Noop{}, nil
	}
	s3, err := NewS3(cfg)
	if err != nil {
		return nil, err
	}
	return s3, nil
}

// Noop discards every bundle.
type Noop struct{}

// Publish does nothing.
func (Noop) Publish(context.Context, *domain.Bundle) error {
	return nil
}

// S3 uploads bundles with minio-go.
type S3 struct {
	client *minio.Client
	bucket string
	region string
	prefix string

	initOnce sync.Once
	initErr  error
}

// NewS3 creates an S3 publisher. The bucket is created on first use when missing.
func NewS3(cfg domain.PublishConfig) (*S3, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return nil, zerr.Wrap(domain.ErrPublisherConfig, "endpoint is required")
	}
	bucket := strings.TrimSpace(cfg.Bucket)
	if bucket == "" {
		return nil, zerr.Wrap(domain.ErrPublisherConfig, "bucket is required")
	}
	access := strings.TrimSpace(cfg.AccessKey)
	secret := strings.TrimSpace(cfg.SecretKey)
	if (access == "") != (secret == "") {
		return nil, zerr.Wrap(domain.ErrPublisherConfig, "access key and secret key must be set together")
	}
	region := strings.TrimSpace(cfg.Region)
	if region == "" {
		region = DefaultRegion
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(access, secret, ""),
		Secure:       cfg.UseSSL,
		Region:       region,
		BucketLookup: minio.BucketLookupPath,
	})
	if err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrPublisherConfig, err.Error()), "endpoint", endpoint)
	}

	return &S3{
		client: client,
		bucket: bucket,
		region: region,
		prefix: strings.Trim(cfg.Prefix, "/"),
	}, nil
}

// Publish uploads the bundle content under ObjectKey.
func (s *S3) Publish(ctx context.Context, bundle *domain.Bundle) error {
	if err := s.ensureBucket(ctx); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "bucket", s.bucket)
	}

	key := ObjectKey(s.prefix, bundle)
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(bundle.Content), int64(len(bundle.Content)),
		minio.PutObjectOptions{
			ContentType:  bundle.Type.ContentType(),
			CacheControl: "no-cache",
			UserMetadata: map[string]string{"digest": bundle.Digest},
		})
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "bucket", s.bucket)
		return zerr.With(err, "key", key)
	}
	return nil
}

func (s *S3) ensureBucket(ctx context.Context) error {
	s.initOnce.Do(func() {
		exists, err := s.client.BucketExists(ctx, s.bucket)
		if err != nil {
			s.initErr = err
			return
		}
		if exists {
			return
		}
		s.initErr = s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region})
	})
	return s.initErr
}

// ObjectKey places a bundle under prefix by its public URI, or by its name when it has none.
func ObjectKey(prefix string, bundle *domain.Bundle) string {
	name := strings.TrimLeft(bundle.URI, "/")
	if name == "" {
		name = bundle.Name
	}
	if prefix == "" {
		return path.Clean(name)
	}
	return path.Join(prefix, name)
}
