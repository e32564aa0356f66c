package testutil

import (
	"context"
	"sync/atomic"

	"github.com/farmlink/backend/pkg/errorx"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/storage"
)

// MockStorage counts every call so tests can assert that no network I/O
// happened. Calls without a func configured fail with NotImplemented.
type MockStorage struct {
	UploadFunc func(context.Context, *storage.UploadObject) error
	RemoveFunc func(context.Context, string, []string) error

	uploads atomic.Int32
	removes atomic.Int32
}

func (m *MockStorage) Upload(ctx context.Context, obj *storage.UploadObject) error {
	m.uploads.Add(1)
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, obj)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockStorage) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

func (m *MockStorage) Remove(ctx context.Context, bucket string, keys []string) error {
	m.removes.Add(1)
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, bucket, keys)
	}

	return errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockStorage) Uploads() int {
	return int(m.uploads.Load())
}

func (m *MockStorage) Removes() int {
	return int(m.removes.Load())
}

func (m *MockStorage) Calls() int {
	return m.Uploads() + m.Removes()
}

type MockFetcher struct {
	FetchFunc func(context.Context, string) (*media.Fetched, error)

	calls atomic.Int32
}

func (m *MockFetcher) Fetch(ctx context.Context, uri string) (*media.Fetched, error) {
	m.calls.Add(1)
	if m.FetchFunc != nil {
		return m.FetchFunc(ctx, uri)
	}

	return nil, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockFetcher) Calls() int {
	return int(m.calls.Load())
}

// StorageConfigs passes the endpoint and access key checks of media.NewClient.
func StorageConfigs() storage.Configs {
	return storage.Configs{
		Driver:    "memory",
		Endpoint:  "http://storage.test",
		AccessKey: "test-access-key",
	}
}
