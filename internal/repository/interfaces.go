package repository

import (
	"context"

	"github.com/jwalitptl/hospital-records/internal/model"
)

// All repository interfaces in one file. List methods return records
// descending by id.
type (
	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) error
		Get(ctx context.Context, id int64) (*model.Patient, error)
		// FindByName returns the most recently created patient with exactly this name.
		FindByName(ctx context.Context, name string) (*model.Patient, error)
		List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	}

	DoctorRepository interface {
		Create(ctx context.Context, doctor *model.Doctor) error
		Get(ctx context.Context, id int64) (*model.Doctor, error)
		FindByName(ctx context.Context, name string) (*model.Doctor, error)
		List(ctx context.Context) ([]*model.Doctor, error)
		UpdateStatus(ctx context.Context, id int64, status model.DoctorStatus) (*model.Doctor, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, appointment *model.Appointment) error
		List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error)
	}

	PharmacyRepository interface {
		Create(ctx context.Context, item *model.PharmacyItem) error
		List(ctx context.Context) ([]*model.PharmacyItem, error)
		Valuation(ctx context.Context) (*model.InventoryValuation, error)
		ListBelowQuantity(ctx context.Context, threshold int64) ([]*model.PharmacyItem, error)
	}

	BloodBankRepository interface {
		Create(ctx context.Context, donation *model.BloodDonation) error
		// Totals returns one row per blood type present, bags summed.
		Totals(ctx context.Context) ([]*model.BloodTypeTotal, error)
	}

	StatsRepository interface {
		Counts(ctx context.Context) (*model.DashboardSummary, error)
	}
)
