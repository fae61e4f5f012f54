package kafka_client

import (
	"context"
	"encoding/json"
	"fmt"
	"itsector/types"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

// EventSink publishes dashboard audit events to a Kafka topic.
type EventSink struct {
	producer *kafka.Producer
	topic    string
}

func NewEventSink(bootstrapServers, topic string) (*EventSink, error) {
	zap.L().Info("KAFKA_BOOTSTRAPSERVERS: ", zap.String("uri", bootstrapServers))

	producer, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": bootstrapServers,
		"client.id":         "itsector-dashboard",
		"acks":              "all",
	})
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}

	// Delivery report handler for produced messages
	go func() {
		for e := range producer.Events() {
			switch ev := e.(type) {
			case *kafka.Message:
				if ev.TopicPartition.Error != nil {
					zap.L().Error("Kafka Delivery failed: ", zap.Error(ev.TopicPartition.Error))
				} else {
					zap.L().Debug("Delivered message", zap.String("topic", *ev.TopicPartition.Topic))
				}
			}
		}
	}()

	return &EventSink{producer: producer, topic: topic}, nil
}

func (s *EventSink) Publish(_ context.Context, event types.AuditEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = s.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &s.topic, Partition: kafka.PartitionAny},
		Key:            []byte(event.ID),
		Value:          message,
	}, nil)
	if err != nil {
		return fmt.Errorf("produce to %s: %w", s.topic, err)
	}
	return nil
}

// Close flushes outstanding messages for up to five seconds.
func (s *EventSink) Close() error {
	if remaining := s.producer.Flush(5000); remaining > 0 {
		zap.L().Warn("Kafka messages not delivered before close", zap.Int("remaining", remaining))
	}
	s.producer.Close()
	return nil
}
