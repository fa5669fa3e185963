package event

import (
	"context"
	"time"
)

// Event types
const (
	PatientCreated        = "patient.created"
	DoctorCreated         = "doctor.created"
	DoctorStatusChanged   = "doctor.status_changed"
	AppointmentBooked     = "appointment.booked"
	PharmacyItemAdded     = "pharmacy.item_added"
	BloodDonationRecorded = "bloodbank.donation_recorded"
	StockReportGenerated  = "stock.report"
)

// Envelope is what goes on the wire.
type Envelope struct {
	EventID     string      `json:"event_id"`
	EventType   string      `json:"event_type"`
	Timestamp   time.Time   `json:"timestamp"`
	ServiceName string      `json:"service_name"`
	Data        interface{} `json:"data"`
}

// Emitter publishes record events. Emit never fails the caller.
type Emitter interface {
	Emit(ctx context.Context, eventType string, data interface{})
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, string, interface{}) {}

// Nop returns an Emitter that drops every event.
func Nop() Emitter { return nopEmitter{} }
