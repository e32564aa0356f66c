package media_test

import (
	"context"
	"errors"
	"testing"

	"github.com/farmlink/backend/pkg/errorx"
	"github.com/farmlink/backend/pkg/media"
	"github.com/farmlink/backend/pkg/storage"
	"github.com/farmlink/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func TestSweepOrphans(t *testing.T) {
	store := storage.NewMemoryStorage("")
	ledger := newFakeLedger()
	c := newTestClient(store, media.WithOrphanLedger(ledger))
	ctx := context.Background()

	for _, key := range []string{"p/a.jpg", "p/b.jpg", "p/keep.jpg"} {
		_, err := c.UploadImage(ctx, media.FromBytes(jpeg), "products", key, "")
		require.NoError(t, err)
	}
	require.NoError(t, ledger.Record(ctx, "products", []string{"p/a.jpg", "p/b.jpg"}))

	n, err := c.SweepOrphans(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, 1, store.Len())
	require.Empty(t, ledger.keys("products"))

	n, err = c.SweepOrphans(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSweepOrphans_RemoveFailure(t *testing.T) {
	store := &testutil.MockStorage{
		RemoveFunc: func(context.Context, string, []string) error {
			return errors.New("AccessDenied")
		},
	}
	ledger := newFakeLedger()
	require.NoError(t, ledger.Record(context.Background(), "products", []string{"p/a.jpg"}))
	c := newTestClient(store, media.WithOrphanLedger(ledger))

	_, err := c.SweepOrphans(context.Background())
	require.True(t, errorx.Is(err, errorx.DeleteFailed))
	require.Equal(t, []string{"p/a.jpg"}, ledger.keys("products"))
}

func TestSweepOrphans_NoLedger(t *testing.T) {
	c := newTestClient(&testutil.MockStorage{})

	n, err := c.SweepOrphans(context.Background())
	require.NoError(t, err)
	require.Zero(t, n)

	c = media.NewClient(storage.Configs{}, media.WithLogger(quietLogger()))
	_, err = c.SweepOrphans(context.Background())
	require.ErrorIs(t, err, errorx.ErrNotConfigured)
}
