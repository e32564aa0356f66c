package media

import (
	"context"

	"github.com/farmlink/backend/pkg/errorx"
)

// DeleteImage removes bucket/path on a best-effort basis. It is a no-op when
// storage is not configured and it never reports failures to the caller.
func (c *Client) DeleteImage(ctx context.Context, bucket, path string) {
	if !c.Configured() {
		PromCounters[MediaDeleteTotal].WithLabelValues(outcomeNotConfigured).Inc()
		return
	}

	if err := c.store.Remove(ctx, bucket, []string{path}); err != nil {
		err = errorx.Wrap(errorx.DeleteFailed, err, "Cannot delete %s/%s", bucket, path)
		c.logger.Warnf("media: %v", err)
		PromCounters[MediaDeleteTotal].WithLabelValues(outcomeFailed).Inc()
		return
	}

	PromCounters[MediaDeleteTotal].WithLabelValues(outcomeOK).Inc()
	c.publish(ctx, TopicDeleted, Event{Bucket: bucket, ObjectKey: path})
}
