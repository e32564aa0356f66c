package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioStorage talks to MinIO or any S3-compatible provider through minio-go.
type minioStorage struct {
	core *minio.Client
	cfg  Configs
}

func NewMinioStorage(cfg Configs) (Storage, error) {
	host, secure := splitEndpoint(cfg.Endpoint, !cfg.SSLDisabled)

	core, err := minio.New(host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: secure,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	return &minioStorage{core: core, cfg: cfg}, nil
}

func (s *minioStorage) Upload(ctx context.Context, object *UploadObject) error {
	_, err := s.core.PutObject(ctx, object.Bucket, object.Key,
		bytes.NewReader(object.Data), int64(len(object.Data)),
		minio.PutObjectOptions{ContentType: object.Mime},
	)
	if err != nil {
		return fmt.Errorf("put object %q: %w", object.Key, err)
	}
	return nil
}

func (s *minioStorage) PublicURL(bucket, key string) string {
	if s.cfg.PublicEndpoint != "" {
		return joinURL(s.cfg.PublicEndpoint, bucket, key)
	}

	if endpoint := s.core.EndpointURL(); endpoint != nil {
		return joinURL(endpoint.String(), bucket, key)
	}

	return joinURL("", bucket, key)
}

func (s *minioStorage) Remove(ctx context.Context, bucket string, keys []string) error {
	objects := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		objects <- minio.ObjectInfo{Key: k}
	}
	close(objects)

	var firstErr error
	failed := 0
	for e := range s.core.RemoveObjects(ctx, bucket, objects, minio.RemoveObjectsOptions{}) {
		failed++
		if firstErr == nil {
			firstErr = fmt.Errorf("remove object %q: %w", e.ObjectName, e.Err)
		}
	}

	if firstErr != nil {
		return fmt.Errorf("%w, %d failed", firstErr, failed)
	}
	return nil
}

// splitEndpoint accepts "host:port" or a full URL. minio-go wants the bare host
// and a separate TLS switch.
func splitEndpoint(endpoint string, secure bool) (string, bool) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, secure
	}

	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint, secure
	}
	return u.Host, u.Scheme == "https"
}
