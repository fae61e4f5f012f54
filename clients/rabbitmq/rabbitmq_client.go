package rabbitmq_client

import (
	"context"
	"encoding/json"
	"fmt"
	"itsector/types"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

type Options struct {
	Server   string
	Port     string
	User     string
	Password string
	Queue    string
}

// URL is the AMQP connection string.
func (o Options) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/", o.User, o.Password, o.Server, o.Port)
}

// EventSink publishes dashboard audit events to a durable queue.
type EventSink struct {
	connection *amqp.Connection
	channel    *amqp.Channel
	queue      amqp.Queue
}

func NewEventSink(opts Options) (*EventSink, error) {
	zap.L().Sugar().Infof("RabbitMQ Server: %s", opts.Server)
	zap.L().Sugar().Infof("RabbitMQ Port: %s", opts.Port)

	conn, err := amqp.Dial(opts.URL())
	if err != nil {
		return nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		opts.Queue, // Name of the queue
		true,       // Durable
		false,      // Delete when unused
		false,      // Exclusive
		false,      // No-wait
		nil,        // Arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("rabbitmq declare %s: %w", opts.Queue, err)
	}

	zap.L().Info("Connected to RabbitMQ.")
	return &EventSink{connection: conn, channel: ch, queue: q}, nil
}

func (s *EventSink) Publish(_ context.Context, event types.AuditEvent) error {
	message, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = s.channel.Publish(
		"",           // Exchange (empty means default)
		s.queue.Name, // Routing key (queue name in this case)
		false,        // Mandatory
		false,        // Immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   event.ID,
			Timestamp:   event.Timestamp,
			Body:        message,
		})
	if err != nil {
		return fmt.Errorf("publish to %s: %w", s.queue.Name, err)
	}
	return nil
}

func (s *EventSink) Close() error {
	if err := s.channel.Close(); err != nil {
		zap.L().Error("Error closing rabbitmq channel", zap.Error(err))
	}
	return s.connection.Close()
}
