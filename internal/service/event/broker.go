package event

import (
	"context"
	"fmt"

	"github.com/jwalitptl/hospital-records/internal/config"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
	"github.com/jwalitptl/hospital-records/pkg/messaging/rabbitmq"
	"github.com/jwalitptl/hospital-records/pkg/messaging/redis"
)

// NewBroker connects the broker selected by cfg.Broker.
func NewBroker(ctx context.Context, cfg config.EventsConfig) (messaging.Broker, error) {
	switch cfg.Broker {
	case "", "none":
		return messaging.NopBroker{}, nil
	case "redis":
		return redis.NewRedisBroker(ctx, redis.Config{
			URL:           cfg.Redis.URL,
			ChannelPrefix: cfg.Redis.ChannelPrefix,
			MaxRetries:    cfg.Redis.MaxRetries,
			RetryBackoff:  cfg.Redis.RetryBackoff,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
		})
	case "rabbitmq":
		return rabbitmq.NewRabbitMQBroker(rabbitmq.Config{
			URL:      cfg.RabbitMQ.URL,
			Exchange: cfg.RabbitMQ.Exchange,
		})
	default:
		return nil, fmt.Errorf("unknown broker %q", cfg.Broker)
	}
}
