package events

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"time"

	"storefront/internal/domain"

	"github.com/IBM/sarama"
)

// KafkaPublisher writes order events to a Kafka topic keyed by order id.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
	logger   *log.Logger
}

// NewKafkaPublisher connects a synchronous producer that waits for all in-sync replicas.
func NewKafkaPublisher(brokers []string, topic string, logger *log.Logger) (*KafkaPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.ClientID = "storefront"
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Retry.Max = 5
	cfg.Producer.Return.Successes = true
	cfg.Producer.Timeout = 5 * time.Second

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("start kafka producer: %w", err)
	}
	return NewKafkaPublisherWithProducer(producer, topic, logger), nil
}

func NewKafkaPublisherWithProducer(producer sarama.SyncProducer, topic string, logger *log.Logger) *KafkaPublisher {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &KafkaPublisher{producer: producer, topic: topic, logger: logger}
}

func (p *KafkaPublisher) PublishOrderPlaced(_ context.Context, order domain.Order) error {
	payload, err := json.Marshal(NewOrderPlaced(order))
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.FormatInt(order.ID, 10)),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("type"), Value: []byte(TypeOrderPlaced)},
		},
	}
	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		p.logger.Printf("kafka: send order=%d topic=%s error=%v", order.ID, p.topic, err)
		return fmt.Errorf("send order event: %w", err)
	}
	p.logger.Printf("kafka: sent order=%d topic=%s partition=%d offset=%d", order.ID, p.topic, partition, offset)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
