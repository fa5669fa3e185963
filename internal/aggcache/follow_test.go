package aggcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/internal/service/event"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
)

// replaySubscriber delivers a fixed list of channels, then blocks.
type replaySubscriber struct {
	deliver    []string
	subscribed []string
	err        error
}

func (s *replaySubscriber) Subscribe(ctx context.Context, channels []string, handler messaging.Handler) error {
	if s.err != nil {
		return s.err
	}
	s.subscribed = channels
	for _, ch := range s.deliver {
		handler(ctx, ch, []byte(`{}`))
	}
	<-ctx.Done()
	return nil
}

func primed(t *testing.T, c *Cache, keys ...string) {
	t.Helper()
	for _, k := range keys {
		_, err := Load(t.Context(), c, k, func(context.Context) (int, error) { return 1, nil })
		require.NoError(t, err)
	}
}

func cached(c *Cache, key string) bool {
	_, ok := c.store.Get(key)
	return ok
}

func TestFollowInvalidatesOnRecordEvents(t *testing.T) {
	c := New(time.Minute, nil)
	primed(t, c, KeyDashboard, KeyInventoryValue, KeyBloodSummary)

	sub := &replaySubscriber{deliver: []string{event.PharmacyItemAdded, event.DoctorStatusChanged}}
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	require.NoError(t, Follow(ctx, c, sub, nil))

	assert.False(t, cached(c, KeyInventoryValue))
	assert.False(t, cached(c, KeyDashboard))
	assert.True(t, cached(c, KeyBloodSummary))
	assert.ElementsMatch(t, []string{
		event.PatientCreated,
		event.DoctorCreated,
		event.AppointmentBooked,
		event.PharmacyItemAdded,
		event.BloodDonationRecorded,
	}, sub.subscribed)
}

func TestFollowReturnsSubscribeError(t *testing.T) {
	err := Follow(t.Context(), New(time.Minute, nil), &replaySubscriber{err: errors.New("no route")}, nil)
	assert.Error(t, err)
}

func TestFollowWithNopBrokerStopsWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()
	assert.NoError(t, Follow(ctx, New(time.Minute, nil), messaging.NopBroker{}, nil))
}
