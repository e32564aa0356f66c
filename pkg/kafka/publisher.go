package kafka

import (
	"context"
	"fmt"

	"github.com/farmlink/backend/pkg/pubsub"

	"github.com/Shopify/sarama"
)

type Publisher struct {
	clientID    string
	brokerAddrs []string
	producer    sarama.SyncProducer
}

var _ pubsub.Publisher = (*Publisher)(nil)

func NewPublisher(clientID string, brokerAddrs []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.ClientID = clientID
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForLocal

	producer, err := sarama.NewSyncProducer(brokerAddrs, config)
	if err != nil {
		return nil, fmt.Errorf("sarama.NewSyncProducer: %w", err)
	}

	return newPublisher(clientID, brokerAddrs, producer), nil
}

func newPublisher(clientID string, brokerAddrs []string, producer sarama.SyncProducer) *Publisher {
	return &Publisher{
		clientID:    clientID,
		brokerAddrs: brokerAddrs,
		producer:    producer,
	}
}

func (p *Publisher) Stop(ctx context.Context) error {
	return p.producer.Close()
}

func (p *Publisher) Publish(ctx context.Context, topic string, msg *pubsub.Pack) error {
	m := &sarama.ProducerMessage{
		Topic: topic,
		Value: sarama.ByteEncoder(msg.Msg),
		Key:   sarama.ByteEncoder(msg.Key),
	}
	if _, _, err := p.producer.SendMessage(m); err != nil {
		return fmt.Errorf("p.producer.SendMessage: %w", err)
	}
	return nil
}
