package chatnotify

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/IBM/sarama"

	"veluna/internal/domain/service"
	"veluna/internal/errors"
)

const providerKafka = "kafka"

// kafkaNotifier sends each message to a Kafka topic keyed by user id
type kafkaNotifier struct {
	producer sarama.SyncProducer
	topic    string
	logger   *slog.Logger
}

// NewKafkaProducerConfig returns the producer settings used for chat mirroring
func NewKafkaProducerConfig(timeout time.Duration) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Retry.Max = 0
	cfg.Producer.Return.Successes = true
	if timeout > 0 {
		cfg.Producer.Timeout = timeout
	}

	return cfg
}

// NewKafkaNotifier connects a sync producer to brokers
func NewKafkaNotifier(brokers []string, topic string, timeout time.Duration, logger *slog.Logger) (service.ChatNotifier, error) {
	producer, err := sarama.NewSyncProducer(brokers, NewKafkaProducerConfig(timeout))
	if err != nil {
		return nil, errors.Wrap(err, "failed to start Sarama producer")
	}

	return NewKafkaNotifierWithProducer(producer, topic, logger), nil
}

// NewKafkaNotifierWithProducer wraps an existing producer
func NewKafkaNotifierWithProducer(producer sarama.SyncProducer, topic string, logger *slog.Logger) service.ChatNotifier {
	return &kafkaNotifier{
		producer: producer,
		topic:    topic,
		logger:   logger,
	}
}

// NotifyChat sends one message. The producer call does not observe ctx.
func (n *kafkaNotifier) NotifyChat(_ context.Context, msg service.ChatNotification) *service.NotifyError {
	data, err := json.Marshal(msg)
	if err != nil {
		return &service.NotifyError{Provider: providerKafka, Err: errors.WithStack(err)}
	}

	partition, offset, err := n.producer.SendMessage(&sarama.ProducerMessage{
		Topic: n.topic,
		Key:   sarama.StringEncoder(msg.UserID),
		Value: sarama.ByteEncoder(data),
	})
	if err != nil {
		return &service.NotifyError{Provider: providerKafka, Err: errors.WithStack(err)}
	}

	n.logger.Debug("Chat message sent to Kafka",
		slog.String("topic", n.topic),
		slog.Int("partition", int(partition)),
		slog.Int64("offset", offset),
	)

	return nil
}

// Close shuts the producer down
func (n *kafkaNotifier) Close() error {
	return errors.WithStack(n.producer.Close())
}
