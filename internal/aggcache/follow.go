package aggcache

import (
	"context"

	"github.com/jwalitptl/hospital-records/internal/service/event"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
)

// EventKeys maps each record event to the aggregates the write changed.
var EventKeys = map[string][]string{
	event.PatientCreated:        {KeyDashboard},
	event.DoctorCreated:         {KeyDashboard},
	event.AppointmentBooked:     {KeyDashboard},
	event.PharmacyItemAdded:     {KeyInventoryValue, KeyDashboard},
	event.BloodDonationRecorded: {KeyBloodSummary},
}

// Follow invalidates c for every record event delivered by sub, so writes made
// by other processes (seed runs, other replicas) are visible on the next read.
// It blocks until ctx is done.
func Follow(ctx context.Context, c *Cache, sub messaging.Subscriber, log *logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	channels := make([]string, 0, len(EventKeys))
	for eventType := range EventKeys {
		channels = append(channels, eventType)
	}

	return sub.Subscribe(ctx, channels, func(_ context.Context, channel string, _ []byte) {
		keys, ok := EventKeys[channel]
		if !ok {
			return
		}
		c.Invalidate(keys...)
		log.Debug("aggregates invalidated by event", "event_type", channel)
	})
}
