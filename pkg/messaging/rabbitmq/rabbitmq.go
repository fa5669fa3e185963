package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jwalitptl/hospital-records/pkg/circuitbreaker"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
)

const ExchangeType = "topic"

type Config struct {
	URL      string
	Exchange string
}

// Broker publishes JSON messages to a durable topic exchange, using the
// channel name as routing key.
type Broker struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	cb       *circuitbreaker.CircuitBreaker
}

func NewRabbitMQBroker(config Config) (messaging.Broker, error) {
	conn, err := amqp.Dial(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		config.Exchange, // name
		ExchangeType,    // type
		true,            // durable
		false,           // auto-deleted
		false,           // internal
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	return &Broker{
		conn:     conn,
		channel:  channel,
		exchange: config.Exchange,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "rabbitmq-broker",
			MaxRequests: 1,
			Interval:    10 * time.Second,
			Timeout:     5 * time.Second,
		}),
	}, nil
}

func (b *Broker) Publish(ctx context.Context, routingKey string, message interface{}) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return b.cb.Execute(func() error {
		err := b.channel.PublishWithContext(
			ctx,
			b.exchange, // exchange
			routingKey, // routing key (e.g., "patient.created")
			false,      // mandatory
			false,      // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				Body:         body,
				DeliveryMode: amqp.Persistent,
				Timestamp:    time.Now().UTC(),
				MessageId:    uuid.NewString(),
			},
		)
		if err != nil {
			return fmt.Errorf("failed to publish to %s: %w", routingKey, err)
		}
		return nil
	})
}

// Subscribe binds an exclusive, auto-deleted queue to the exchange for each
// routing key and hands deliveries to handler until ctx is done.
func (b *Broker) Subscribe(ctx context.Context, routingKeys []string, handler messaging.Handler) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open channel: %w", err)
	}
	defer ch.Close()

	q, err := ch.QueueDeclare(
		"",    // name
		false, // durable
		true,  // auto-delete
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	for _, key := range routingKeys {
		if err := ch.QueueBind(q.Name, key, b.exchange, false, nil); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	deliveries, err := ch.Consume(
		q.Name, // queue
		"",     // consumer
		true,   // auto-ack
		true,   // exclusive
		false,  // no-local
		false,  // no-wait
		nil,    // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			handler(ctx, d.RoutingKey, d.Body)
		}
	}
}

func (b *Broker) Close() error {
	if b.channel != nil {
		b.channel.Close()
	}
	if b.conn != nil {
		return b.conn.Close()
	}
	return nil
}
