// Package mocks provides testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-records/internal/model"
)

type PatientRepository struct {
	mock.Mock
}

func (m *PatientRepository) Create(ctx context.Context, patient *model.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *PatientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *PatientRepository) FindByName(ctx context.Context, name string) (*model.Patient, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Patient), args.Error(1)
}

func (m *PatientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Patient), args.Error(1)
}

type DoctorRepository struct {
	mock.Mock
}

func (m *DoctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	args := m.Called(ctx, doctor)
	return args.Error(0)
}

func (m *DoctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *DoctorRepository) FindByName(ctx context.Context, name string) (*model.Doctor, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

func (m *DoctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Doctor), args.Error(1)
}

func (m *DoctorRepository) UpdateStatus(ctx context.Context, id int64, status model.DoctorStatus) (*model.Doctor, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Doctor), args.Error(1)
}

type AppointmentRepository struct {
	mock.Mock
}

func (m *AppointmentRepository) Create(ctx context.Context, appointment *model.Appointment) error {
	args := m.Called(ctx, appointment)
	return args.Error(0)
}

func (m *AppointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.Appointment, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Appointment), args.Error(1)
}

type PharmacyRepository struct {
	mock.Mock
}

func (m *PharmacyRepository) Create(ctx context.Context, item *model.PharmacyItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *PharmacyRepository) List(ctx context.Context) ([]*model.PharmacyItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PharmacyItem), args.Error(1)
}

func (m *PharmacyRepository) Valuation(ctx context.Context) (*model.InventoryValuation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InventoryValuation), args.Error(1)
}

func (m *PharmacyRepository) ListBelowQuantity(ctx context.Context, threshold int64) ([]*model.PharmacyItem, error) {
	args := m.Called(ctx, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.PharmacyItem), args.Error(1)
}

type BloodBankRepository struct {
	mock.Mock
}

func (m *BloodBankRepository) Create(ctx context.Context, donation *model.BloodDonation) error {
	args := m.Called(ctx, donation)
	return args.Error(0)
}

func (m *BloodBankRepository) Totals(ctx context.Context) ([]*model.BloodTypeTotal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.BloodTypeTotal), args.Error(1)
}

type StatsRepository struct {
	mock.Mock
}

func (m *StatsRepository) Counts(ctx context.Context) (*model.DashboardSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DashboardSummary), args.Error(1)
}

// Emitter records emitted event types.
type Emitter struct {
	mock.Mock
}

func (m *Emitter) Emit(ctx context.Context, eventType string, data interface{}) {
	m.Called(ctx, eventType, data)
}
