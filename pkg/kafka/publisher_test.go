package kafka

import (
	"context"
	"errors"
	"testing"

	"github.com/Shopify/sarama"
	"github.com/Shopify/sarama/mocks"
	"github.com/farmlink/backend/pkg/pubsub"
	"github.com/stretchr/testify/require"
)

func TestPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		if string(val) != `{"bucket":"products"}` {
			return errors.New("unexpected payload")
		}
		return nil
	})
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	p := newPublisher("media", []string{"localhost:9092"}, producer)
	ctx := context.Background()

	err := p.Publish(ctx, "media.uploaded", &pubsub.Pack{
		Key: []byte("products/p1.jpg"),
		Msg: []byte(`{"bucket":"products"}`),
	})
	require.NoError(t, err)

	err = p.Publish(ctx, "media.uploaded", &pubsub.Pack{Msg: []byte("{}")})
	require.ErrorIs(t, err, sarama.ErrOutOfBrokers)

	require.NoError(t, p.Stop(ctx))
}
