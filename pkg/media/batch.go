package media

import (
	"context"
	"fmt"
	"time"

	"github.com/farmlink/backend/pkg/errorx"
	"golang.org/x/sync/errgroup"
)

// UploadImages uploads every source concurrently under keys derived from
// folder, prefix and the source index, and returns the results in input order.
//
// The call fails as a whole on the first error, but uploads already in flight
// are not cancelled and objects that made it to the store are not removed.
// Their keys are logged and handed to the orphan ledger, if one is set.
func (c *Client) UploadImages(
	ctx context.Context, srcs []Source, bucket, folder, prefix string,
) ([]*UploadResult, error) {
	if !c.Configured() {
		return nil, errorx.ErrNotConfigured
	}

	results := make([]*UploadResult, len(srcs))
	if len(srcs) == 0 {
		return results, nil
	}

	now := time.Now()
	var g errgroup.Group
	for i, src := range srcs {
		i, src := i, src
		path := buildPath(folder, prefix, defaultExtension, now, fmt.Sprint(i))

		g.Go(func() error {
			r, err := c.UploadImage(ctx, src, bucket, path, "")
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		c.recordOrphans(ctx, bucket, results)
		return nil, err
	}

	return results, nil
}

func (c *Client) recordOrphans(ctx context.Context, bucket string, results []*UploadResult) {
	keys := make([]string, 0, len(results))
	for _, r := range results {
		if r != nil {
			keys = append(keys, r.ObjectKey)
		}
	}
	if len(keys) == 0 {
		return
	}

	c.logger.Warnf("media: batch upload failed, %d object(s) left in bucket %s: %v", len(keys), bucket, keys)
	if c.orphans == nil {
		return
	}

	if err := c.orphans.Record(context.WithoutCancel(ctx), bucket, keys); err != nil {
		c.logger.Errorf("media: cannot record orphaned objects in bucket %s: %v", bucket, err)
	}
}
