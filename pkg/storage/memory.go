package storage

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/puzpuzpuz/xsync"
)

type Object struct {
	Mime      string
	Data      []byte
	UpdatedAt time.Time
}

// MemoryStorage keeps objects in process memory. It also serves them over
// HTTP at /<bucket>/<key> so public URLs resolve in development.
type MemoryStorage struct {
	publicEndpoint string
	objects        *xsync.MapOf[string, Object]
}

func NewMemoryStorage(publicEndpoint string) *MemoryStorage {
	if publicEndpoint == "" {
		publicEndpoint = "memory://local"
	}
	return &MemoryStorage{
		publicEndpoint: publicEndpoint,
		objects:        xsync.NewMapOf[Object](),
	}
}

func (s *MemoryStorage) Upload(ctx context.Context, object *UploadObject) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data := make([]byte, len(object.Data))
	copy(data, object.Data)
	s.objects.Store(objectID(object.Bucket, object.Key), Object{
		Mime:      object.Mime,
		Data:      data,
		UpdatedAt: time.Now(),
	})
	return nil
}

func (s *MemoryStorage) PublicURL(bucket, key string) string {
	return joinURL(s.publicEndpoint, bucket, key)
}

// Remove deletes keys. Missing keys are not an error, matching S3.
func (s *MemoryStorage) Remove(ctx context.Context, bucket string, keys []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, k := range keys {
		s.objects.Delete(objectID(bucket, k))
	}
	return nil
}

func (s *MemoryStorage) Get(bucket, key string) (Object, bool) {
	return s.objects.Load(objectID(bucket, key))
}

func (s *MemoryStorage) Len() int {
	return s.objects.Size()
}

func (s *MemoryStorage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	bucket, key, ok := strings.Cut(strings.TrimPrefix(r.URL.Path, "/"), "/")
	if !ok {
		http.NotFound(w, r)
		return
	}

	obj, found := s.Get(bucket, key)
	if !found {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", obj.Mime)
	http.ServeContent(w, r, key, obj.UpdatedAt, bytes.NewReader(obj.Data))
}

func objectID(bucket, key string) string {
	return bucket + "/" + strings.TrimLeft(key, "/")
}
