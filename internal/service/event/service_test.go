package event

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/internal/config"
	"github.com/jwalitptl/hospital-records/pkg/circuitbreaker"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

type MockBroker struct {
	mock.Mock
}

func (m *MockBroker) Publish(ctx context.Context, channel string, message interface{}) error {
	args := m.Called(ctx, channel, message)
	return args.Error(0)
}

func (m *MockBroker) Close() error {
	return m.Called().Error(0)
}

func TestEmitWrapsEnvelope(t *testing.T) {
	broker := new(MockBroker)
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewEventService(broker, "hospital-records", logger.Nop(), m)
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	broker.On("Publish", mock.Anything, PatientCreated, mock.MatchedBy(func(env Envelope) bool {
		return env.EventType == PatientCreated &&
			env.ServiceName == "hospital-records" &&
			env.Timestamp.Equal(fixed) &&
			env.EventID != "" &&
			env.Data == "payload"
	})).Return(nil)

	svc.Emit(t.Context(), PatientCreated, "payload")

	broker.AssertExpectations(t)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(PatientCreated, "success")))
}

func TestEmitSwallowsBrokerErrors(t *testing.T) {
	broker := new(MockBroker)
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewEventService(broker, "hospital-records", logger.Nop(), m)

	broker.On("Publish", mock.Anything, DoctorCreated, mock.Anything).Return(errors.New("connection refused"))

	assert.NotPanics(t, func() { svc.Emit(t.Context(), DoctorCreated, nil) })
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(DoctorCreated, "error")))
}

func TestEmitWarnsWhenBreakerIsOpen(t *testing.T) {
	cb := circuitbreaker.NewCircuitBreaker(circuitbreaker.Settings{
		Name:                "test",
		Timeout:             time.Minute,
		ConsecutiveFailures: 1,
	})
	_ = cb.Execute(func() error { return errors.New("connection refused") })
	openErr := cb.Execute(func() error { return nil })
	require.True(t, circuitbreaker.IsOpen(openErr))

	var buf bytes.Buffer
	broker := new(MockBroker)
	m := metrics.New("test", prometheus.NewRegistry())
	svc := NewEventService(broker, "hospital-records", logger.NewLogger(&logger.Config{
		Level:  logger.DebugLevel,
		Output: &buf,
		JSON:   true,
	}), m)
	broker.On("Publish", mock.Anything, PatientCreated, mock.Anything).Return(openErr)

	svc.Emit(t.Context(), PatientCreated, nil)

	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), "event dropped while broker circuit is open")
	assert.NotContains(t, buf.String(), `"level":"error"`)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.EventsPublished.WithLabelValues(PatientCreated, "error")))
}

func TestNewBrokerNone(t *testing.T) {
	b, err := NewBroker(t.Context(), config.EventsConfig{Broker: "none"})
	require.NoError(t, err)
	assert.IsType(t, messaging.NopBroker{}, b)

	_, err = NewBroker(t.Context(), config.EventsConfig{Broker: "kafka"})
	assert.Error(t, err)
}
