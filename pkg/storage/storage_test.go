package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigs_Enabled(t *testing.T) {
	require.False(t, Configs{}.Enabled())
	require.False(t, Configs{Endpoint: "http://minio:9000"}.Enabled())
	require.False(t, Configs{Endpoint: "  ", AccessKey: "key"}.Enabled())
	require.True(t, Configs{Endpoint: "http://minio:9000", AccessKey: "key"}.Enabled())
}

func TestNew_Driver(t *testing.T) {
	s, err := New(Configs{Driver: "memory", PublicEndpoint: "http://cdn.local"})
	require.NoError(t, err)
	require.IsType(t, &MemoryStorage{}, s)

	_, err = New(Configs{Driver: "ftp"})
	require.Error(t, err)
}

func TestParseDriver(t *testing.T) {
	for name, want := range map[string]Driver{
		"":        S3,
		"s3":      S3,
		" MinIO ": MinIO,
		"memory":  Memory,
	} {
		got, err := ParseDriver(name)
		require.NoError(t, err, name)
		require.Equal(t, want, got, name)
	}

	require.Equal(t, "minio", MinIO.String())

	_, err := ParseDriver("gcs")
	require.ErrorContains(t, err, "unknown storage driver")
}

func TestS3Storage_PublicURL(t *testing.T) {
	s, err := NewS3Storage(Configs{
		Endpoint:  "https://s3.example.com",
		AccessKey: "key",
		SecretKey: "secret",
		Region:    "us-east-1",
	})
	require.NoError(t, err)
	require.Equal(t, "https://s3.example.com/products/p1/a.jpg", s.PublicURL("products", "p1/a.jpg"))

	s, err = NewS3Storage(Configs{
		Endpoint:       "https://s3.example.com",
		PublicEndpoint: "https://cdn.example.com/",
		AccessKey:      "key",
		Region:         "us-east-1",
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/avatars/u/b.png", s.PublicURL("avatars", "/u/b.png"))
}

func TestMinioStorage_PublicURL(t *testing.T) {
	s, err := NewMinioStorage(Configs{
		Endpoint:    "localhost:9000",
		AccessKey:   "minioadmin",
		SecretKey:   "minioadmin",
		SSLDisabled: true,
	})
	require.NoError(t, err)
	require.Equal(t, "http://localhost:9000/products/a.jpg", s.PublicURL("products", "a.jpg"))

	s, err = NewMinioStorage(Configs{
		Endpoint:       "https://minio.example.com",
		PublicEndpoint: "https://cdn.example.com",
		AccessKey:      "minioadmin",
	})
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/products/a.jpg", s.PublicURL("products", "a.jpg"))
}

func TestSplitEndpoint(t *testing.T) {
	host, secure := splitEndpoint("localhost:9000", false)
	require.Equal(t, "localhost:9000", host)
	require.False(t, secure)

	host, secure = splitEndpoint("https://minio.example.com", false)
	require.Equal(t, "minio.example.com", host)
	require.True(t, secure)
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage("")

	require.NoError(t, s.Upload(ctx, &UploadObject{
		Bucket: "products", Key: "p1/a.jpg", Mime: "image/jpeg", Data: []byte("v1"),
	}))
	require.NoError(t, s.Upload(ctx, &UploadObject{
		Bucket: "products", Key: "p1/a.jpg", Mime: "image/jpeg", Data: []byte("v2"),
	}))

	obj, ok := s.Get("products", "p1/a.jpg")
	require.True(t, ok)
	require.Equal(t, []byte("v2"), obj.Data)
	require.Equal(t, 1, s.Len())
	require.Equal(t, "memory://local/products/p1/a.jpg", s.PublicURL("products", "p1/a.jpg"))

	require.NoError(t, s.Remove(ctx, "products", []string{"p1/a.jpg", "missing.jpg"}))
	_, ok = s.Get("products", "p1/a.jpg")
	require.False(t, ok)
}

func TestMemoryStorage_ServeHTTP(t *testing.T) {
	s := NewMemoryStorage("")
	require.NoError(t, s.Upload(context.Background(), &UploadObject{
		Bucket: "avatars", Key: "u/1.png", Mime: "image/png", Data: []byte{0x89, 'P', 'N', 'G'},
	}))

	srv := httptest.NewServer(s)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/avatars/u/1.png")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "image/png", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, []byte{0x89, 'P', 'N', 'G'}, body)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/avatars/u/1.png", nil)
	require.NoError(t, err)
	req.Header.Set("Range", "bytes=1-2")
	ranged, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer ranged.Body.Close()
	require.Equal(t, http.StatusPartialContent, ranged.StatusCode)
	body, err = io.ReadAll(ranged.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("PN"), body)

	resp2, err := http.Get(srv.URL + "/avatars/missing.png")
	require.NoError(t, err)
	resp2.Body.Close()
	require.Equal(t, http.StatusNotFound, resp2.StatusCode)
}
