package media

import (
	"context"
	"strings"
	"time"

	"github.com/farmlink/backend/pkg/errorx"
	"github.com/farmlink/backend/pkg/storage"
)

const defaultContentType = "image/jpeg"

type UploadResult struct {
	ObjectKey string `json:"object_key"`
	PublicURL string `json:"public_url"`
	// Mime is the content type the object was stored with.
	Mime string `json:"mime"`
}

// UploadImage resolves src and writes it to bucket/path, replacing any object
// already stored there. contentType may be empty; it then comes from the
// source, or defaults to image/jpeg. Failures are never retried here.
func (c *Client) UploadImage(
	ctx context.Context, src Source, bucket, path, contentType string,
) (*UploadResult, error) {
	start := time.Now()

	if !c.Configured() {
		c.observeUpload(outcomeNotConfigured, start)
		return nil, errorx.ErrNotConfigured
	}

	p, err := c.resolve(ctx, src)
	if err != nil {
		c.logger.Debugf("media: cannot read %s source for %s/%s: %v", src.Kind(), bucket, path, err)
		c.observeUpload(outcomeUnreadable, start)
		return nil, err
	}

	mime := resolveContentType(contentType, p.mime)
	err = c.store.Upload(ctx, &storage.UploadObject{
		Bucket: bucket,
		Key:    path,
		Mime:   mime,
		Data:   p.data,
	})
	if err != nil {
		c.logger.Errorf("media: cannot upload %s/%s: %v", bucket, path, err)
		c.observeUpload(outcomeFailed, start)
		return nil, errorx.Wrap(errorx.UploadFailed, err, "Cannot upload image")
	}

	c.observeUpload(outcomeOK, start)
	PromHistograms[MediaUploadBytes].WithLabelValues(mime).Observe(float64(len(p.data)))

	result := &UploadResult{
		ObjectKey: path,
		PublicURL: c.store.PublicURL(bucket, path),
		Mime:      mime,
	}
	c.publish(ctx, TopicUploaded, Event{
		Bucket:    bucket,
		ObjectKey: path,
		PublicURL: result.PublicURL,
		Mime:      mime,
		Size:      len(p.data),
	})

	return result, nil
}

func (c *Client) observeUpload(outcome string, start time.Time) {
	PromCounters[MediaUploadTotal].WithLabelValues(outcome).Inc()
	PromHistograms[MediaUploadDurationSeconds].WithLabelValues(outcome).Observe(time.Since(start).Seconds())
}

func resolveContentType(requested, detected string) string {
	for _, ct := range []string{requested, detected} {
		ct = strings.TrimSpace(ct)
		if ct != "" && ct != "application/octet-stream" {
			return ct
		}
	}
	return defaultContentType
}
