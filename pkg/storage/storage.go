package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/farmlink/backend/pkg/enum"
)

// Storage is the object store boundary. Writes are upserts: uploading to an
// existing key replaces the object.
type Storage interface {
	Upload(context.Context, *UploadObject) error
	PublicURL(bucket, key string) string
	Remove(ctx context.Context, bucket string, keys []string) error
}

type UploadObject struct {
	Bucket string
	Key    string
	Mime   string
	Data   []byte
}

type Configs struct {
	Driver         string `toml:"driver"`
	Endpoint       string `toml:"endpoint"`
	PublicEndpoint string `toml:"public_endpoint"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	Region         string `toml:"region"`
	SSLDisabled    bool   `toml:"ssl_disabled"`
}

// Enabled reports whether the two required values are present.
func (c Configs) Enabled() bool {
	return strings.TrimSpace(c.Endpoint) != "" && strings.TrimSpace(c.AccessKey) != ""
}

type Driver int

var (
	S3     = enum.New(Driver(1), "s3")
	MinIO  = enum.New(Driver(2), "minio")
	Memory = enum.New(Driver(3), "memory")
)

func (d Driver) String() string {
	return enum.ToString(d)
}

// ParseDriver maps a driver name to a Driver. An empty name means S3.
func ParseDriver(name string) (Driver, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return S3, nil
	}

	d, err := enum.ToEnum[Driver](name)
	if err != nil {
		return 0, fmt.Errorf("unknown storage driver %q", name)
	}
	return d, nil
}

// New builds the backend selected by cfg.Driver. It never talks to the
// network, so an unreachable store is only noticed on the first call.
func New(cfg Configs) (Storage, error) {
	driver, err := ParseDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	switch driver {
	case MinIO:
		return NewMinioStorage(cfg)
	case Memory:
		return NewMemoryStorage(cfg.PublicEndpoint), nil
	default:
		return NewS3Storage(cfg)
	}
}

func joinURL(base, bucket, key string) string {
	return fmt.Sprintf("%s/%s/%s",
		strings.TrimRight(base, "/"),
		strings.Trim(bucket, "/"),
		strings.TrimLeft(key, "/"),
	)
}
