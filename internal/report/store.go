package report

import (
	"context"
	"fmt"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
	"github.com/purecloudlabs/premium-app-installer/internal/platform/s3"
	"github.com/purecloudlabs/premium-app-installer/internal/util/naming"
)

// Store keeps reports in an S3-compatible bucket.
type Store struct {
	client *s3.Client
	bucket string
}

// NewStore connects to the bucket described by cfg.
func NewStore(ctx context.Context, cfg *config.S3Config) (*Store, error) {
	if cfg == nil || cfg.Bucket == "" {
		return nil, fmt.Errorf("no report bucket configured")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, config.ErrS3CredentialsMissing
	}
	client, err := s3.NewClient(ctx, cfg.Endpoint, cfg.Region, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, err
	}
	return &Store{client: client, bucket: cfg.Bucket}, nil
}

// Bucket returns the bucket name.
func (s *Store) Bucket() string {
	return s.bucket
}

// Upload stores r under its installation prefix and returns the object key.
func (s *Store) Upload(ctx context.Context, r *Report) (string, error) {
	data, err := r.Marshal()
	if err != nil {
		return "", err
	}
	if err := s.client.EnsureBucket(ctx, s.bucket); err != nil {
		return "", err
	}
	key := naming.ReportObject(r.Prefix, r.InstallID)
	if err := s.client.PutObject(ctx, s.bucket, key, "application/yaml", data); err != nil {
		return "", err
	}
	return key, nil
}

// Fetch downloads the report stored under key.
func (s *Store) Fetch(ctx context.Context, key string) (*Report, error) {
	data, err := s.client.GetObject(ctx, s.bucket, key)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", key, err)
	}
	return &r, nil
}

// List returns the keys of every report stored for prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	return s.client.ListObjects(ctx, s.bucket, naming.ReportDir(prefix))
}

// DeleteAll removes every report stored for prefix and returns the deleted keys.
func (s *Store) DeleteAll(ctx context.Context, prefix string) ([]string, error) {
	keys, err := s.List(ctx, prefix)
	if err != nil {
		return nil, err
	}
	deleted := make([]string, 0, len(keys))
	for _, k := range keys {
		if err := s.client.DeleteObject(ctx, s.bucket, k); err != nil {
			return deleted, err
		}
		deleted = append(deleted, k)
	}
	return deleted, nil
}
