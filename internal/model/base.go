package model

import (
	"time"
)

// Base contains common fields for all records. IDs are assigned by the
// database and strictly increase within a collection.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Collection names, used for metrics and event types.
const (
	CollectionPatients     = "patients"
	CollectionDoctors      = "doctors"
	CollectionAppointments = "appointments"
	CollectionPharmacy     = "pharmacy"
	CollectionBloodBank    = "blood_bank"
)
