package media

import (
	"context"
	"fmt"

	"github.com/farmlink/backend/pkg/errorx"
)

// OrphanLedger remembers objects that were uploaded by a batch which failed
// as a whole, so they can be removed later.
type OrphanLedger interface {
	Record(ctx context.Context, bucket string, keys []string) error
	Buckets(ctx context.Context) ([]string, error)
	Drain(ctx context.Context, bucket string) ([]string, error)
}

// SweepOrphans removes every object in the ledger and returns how many were
// removed. Keys whose removal fails are put back into the ledger.
func (c *Client) SweepOrphans(ctx context.Context) (int, error) {
	if !c.Configured() {
		return 0, errorx.ErrNotConfigured
	}
	if c.orphans == nil {
		return 0, nil
	}

	buckets, err := c.orphans.Buckets(ctx)
	if err != nil {
		return 0, fmt.Errorf("list orphan buckets: %w", err)
	}

	removed := 0
	for _, bucket := range buckets {
		keys, err := c.orphans.Drain(ctx, bucket)
		if err != nil {
			return removed, fmt.Errorf("drain orphans of %s: %w", bucket, err)
		}
		if len(keys) == 0 {
			continue
		}

		if err := c.store.Remove(ctx, bucket, keys); err != nil {
			if rerr := c.orphans.Record(context.WithoutCancel(ctx), bucket, keys); rerr != nil {
				c.logger.Errorf("media: cannot re-record %d orphan(s) of %s: %v", len(keys), bucket, rerr)
			}
			return removed, errorx.Wrap(errorx.DeleteFailed, err, "Cannot remove orphans of %s", bucket)
		}

		c.logger.Infof("media: removed %d orphaned object(s) from %s", len(keys), bucket)
		removed += len(keys)
	}

	return removed, nil
}
