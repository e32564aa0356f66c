package media_test

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/farmlink/backend/pkg/errorx"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/storage"
	"github.com/farmlink/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	mu      sync.Mutex
	entries map[string][]string
	err     error
}

func newFakeLedger() *fakeLedger {
	return &fakeLedger{entries: map[string][]string{}}
}

func (l *fakeLedger) Record(_ context.Context, bucket string, keys []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.err != nil {
		return l.err
	}
	l.entries[bucket] = append(l.entries[bucket], keys...)
	return nil
}

func (l *fakeLedger) Buckets(context.Context) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	buckets := []string{}
	for b := range l.entries {
		buckets = append(buckets, b)
	}
	return buckets, nil
}

func (l *fakeLedger) Drain(_ context.Context, bucket string) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := l.entries[bucket]
	delete(l.entries, bucket)
	return keys, nil
}

func (l *fakeLedger) keys(bucket string) []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.entries[bucket]
}

func indexedSources(n int) []media.Source {
	srcs := make([]media.Source, n)
	for i := range srcs {
		srcs[i] = media.FromBytes([]byte{byte(i)})
	}
	return srcs
}

func TestUploadImages_Order(t *testing.T) {
	const n = 4
	store := &testutil.MockStorage{
		UploadFunc: func(_ context.Context, obj *storage.UploadObject) error {
			// The first source finishes last.
			time.Sleep(time.Duration(n-int(obj.Data[0])) * 10 * time.Millisecond)
			return nil
		},
	}
	c := newTestClient(store)

	results, err := c.UploadImages(context.Background(), indexedSources(n), "products", "/products/", "p42")
	require.NoError(t, err)
	require.Len(t, results, n)

	seen := map[string]bool{}
	for i, r := range results {
		require.Regexp(t, regexp.MustCompile(fmt.Sprintf(`^products/p42-\d+-%d\.jpg$`, i)), r.ObjectKey)
		require.Equal(t, "https://cdn.test/products/"+r.ObjectKey, r.PublicURL)
		require.False(t, seen[r.ObjectKey])
		seen[r.ObjectKey] = true
	}
	require.Equal(t, n, store.Uploads())
}

func TestUploadImages_Empty(t *testing.T) {
	store := &testutil.MockStorage{}
	c := newTestClient(store)

	results, err := c.UploadImages(context.Background(), nil, "products", "products", "p1")
	require.NoError(t, err)
	require.NotNil(t, results)
	require.Empty(t, results)
	require.Zero(t, store.Calls())
}

func TestUploadImages_PartialFailure(t *testing.T) {
	cause := errors.New("SlowDown")
	store := &testutil.MockStorage{
		UploadFunc: func(_ context.Context, obj *storage.UploadObject) error {
			if obj.Data[0] == 1 {
				return cause
			}
			return nil
		},
	}
	ledger := newFakeLedger()
	c := newTestClient(store, media.WithOrphanLedger(ledger))

	results, err := c.UploadImages(context.Background(), indexedSources(3), "products", "products", "p1")
	require.Nil(t, results)
	require.True(t, errorx.Is(err, errorx.UploadFailed))
	require.ErrorIs(t, err, cause)
	require.Equal(t, 3, store.Uploads(), "siblings are not cancelled")

	orphans := ledger.keys("products")
	require.Len(t, orphans, 2)
	for _, key := range orphans {
		require.False(t, strings.HasSuffix(key, "-1.jpg"), key)
	}
}

func TestUploadImages_UnreadableSource(t *testing.T) {
	store := &testutil.MockStorage{
		UploadFunc: func(context.Context, *storage.UploadObject) error { return nil },
	}
	c := newTestClient(store)

	srcs := []media.Source{media.FromBytes(jpeg), media.FromDataURI("%%%")}
	_, err := c.UploadImages(context.Background(), srcs, "products", "products", "p1")
	require.True(t, errorx.Is(err, errorx.SourceUnreadable))
	require.Equal(t, 1, store.Uploads())
}

func TestUploadImages_LedgerFailureIsLogged(t *testing.T) {
	store := &testutil.MockStorage{
		UploadFunc: func(_ context.Context, obj *storage.UploadObject) error {
			if obj.Data[0] == 0 {
				return errors.New("boom")
			}
			return nil
		},
	}
	ledger := newFakeLedger()
	ledger.err = errors.New("redis down")
	c := newTestClient(store, media.WithOrphanLedger(ledger))

	_, err := c.UploadImages(context.Background(), indexedSources(2), "products", "products", "p1")
	require.True(t, errorx.Is(err, errorx.UploadFailed))
}
