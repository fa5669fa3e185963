package messaging

import (
	"context"
)

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Close() error
}

// Handler receives one message. channel is the name passed to Subscribe.
type Handler func(ctx context.Context, channel string, payload []byte)

// Subscriber is implemented by brokers that can deliver messages back.
// Subscribe blocks until ctx is done or the subscription fails.
type Subscriber interface {
	Subscribe(ctx context.Context, channels []string, handler Handler) error
}

// NopBroker discards every message. It is used when no broker is configured.
type NopBroker struct{}

func (NopBroker) Publish(context.Context, string, interface{}) error { return nil }

// Subscribe delivers nothing and returns when ctx is done.
func (NopBroker) Subscribe(ctx context.Context, _ []string, _ Handler) error {
	<-ctx.Done()
	return nil
}

func (NopBroker) Close() error { return nil }
