package event

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jwalitptl/hospital-records/pkg/circuitbreaker"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

type EventService struct {
	broker      messaging.Broker
	serviceName string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	now         func() time.Time
}

func NewEventService(broker messaging.Broker, serviceName string, log *logger.Logger, m *metrics.Metrics) *EventService {
	if broker == nil {
		broker = messaging.NopBroker{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &EventService{
		broker:      broker,
		serviceName: serviceName,
		logger:      log,
		metrics:     m,
		now:         time.Now,
	}
}

// Emit wraps data in an Envelope and publishes it on the eventType channel.
// Failures are logged and counted.
func (s *EventService) Emit(ctx context.Context, eventType string, data interface{}) {
	env := Envelope{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		Timestamp:   s.now().UTC(),
		ServiceName: s.serviceName,
		Data:        data,
	}

	err := s.broker.Publish(ctx, eventType, env)
	s.metrics.EventPublished(eventType, err)
	if circuitbreaker.IsOpen(err) {
		s.logger.WithContext(ctx).Warn("event dropped while broker circuit is open",
			"event_type", eventType,
			"event_id", env.EventID,
		)
		return
	}
	if err != nil {
		s.logger.WithContext(ctx).Error(err, "failed to publish event",
			"event_type", eventType,
			"event_id", env.EventID,
		)
		return
	}
	s.logger.WithContext(ctx).Debug("event published", "event_type", eventType, "event_id", env.EventID)
}
