package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jwalitptl/hospital-records/pkg/circuitbreaker"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
)

type RedisBroker struct {
	client *redis.Client
	cb     *circuitbreaker.CircuitBreaker
	prefix string
}

type Config struct {
	URL           string
	ChannelPrefix string
	MaxRetries    int
	RetryBackoff  time.Duration
	PoolSize      int
	MinIdleConns  int
}

func NewRedisBroker(ctx context.Context, config Config) (messaging.Broker, error) {
	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Configure connection pooling
	if config.MaxRetries > 0 {
		opts.MaxRetries = config.MaxRetries
	}
	if config.RetryBackoff > 0 {
		opts.MinRetryBackoff = config.RetryBackoff
	}
	if config.PoolSize > 0 {
		opts.PoolSize = config.PoolSize
	}
	opts.MinIdleConns = config.MinIdleConns

	client := redis.NewClient(opts)

	// Test connection
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisBroker{
		client: client,
		cb: circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
			Name:        "redis-broker",
			MaxRequests: 1,
			Interval:    10 * time.Second,
			Timeout:     5 * time.Second,
		}),
		prefix: config.ChannelPrefix,
	}, nil
}

func (b *RedisBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	return b.cb.Execute(func() error {
		return b.client.Publish(ctx, b.prefix+channel, payload).Err()
	})
}

// Subscribe listens on the prefixed channels and hands every message to
// handler with the prefix removed.
func (b *RedisBroker) Subscribe(ctx context.Context, channels []string, handler messaging.Handler) error {
	names := make([]string, len(channels))
	for i, ch := range channels {
		names[i] = b.prefix + ch
	}

	pubsub := b.client.Subscribe(ctx, names...)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed
	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe: %w", err)
	}

	msgs := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			handler(ctx, strings.TrimPrefix(msg.Channel, b.prefix), []byte(msg.Payload))
		}
	}
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
