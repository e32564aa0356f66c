package media

import (
	"context"
	"encoding/json"
	"time"

	"github.com/farmlink/backend/pkg/pubsub"
)

const (
	TopicUploaded = "media.uploaded"
	TopicDeleted  = "media.deleted"
)

type Event struct {
	Bucket    string    `json:"bucket"`
	ObjectKey string    `json:"object_key"`
	PublicURL string    `json:"public_url,omitempty"`
	Mime      string    `json:"mime,omitempty"`
	Size      int       `json:"size,omitempty"`
	At        time.Time `json:"at"`
}

// publish is best effort: a broker failure never fails the media operation.
func (c *Client) publish(ctx context.Context, topic string, ev Event) {
	if c.publisher == nil {
		return
	}

	ev.At = time.Now()
	b, err := json.Marshal(ev)
	if err != nil {
		c.logger.Errorf("media: cannot marshal %s event: %v", topic, err)
		return
	}

	pack := &pubsub.Pack{Key: []byte(ev.Bucket + "/" + ev.ObjectKey), Msg: b}
	if err := c.publisher.Publish(ctx, topic, pack); err != nil {
		c.logger.Warnf("media: cannot publish %s event for %s/%s: %v", topic, ev.Bucket, ev.ObjectKey, err)
	}
}
