package doctor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository/mocks"
	"github.com/jwalitptl/hospital-records/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

func setup() (*Service, *mocks.DoctorRepository, *mocks.Emitter) {
	repo := new(mocks.DoctorRepository)
	events := new(mocks.Emitter)
	return NewService(repo, validator.New(), nil, events, logger.Nop(), nil), repo, events
}

func TestAddDoctor_DefaultsToAvailable(t *testing.T) {
	svc, repo, events := setup()

	repo.On("Create", mock.Anything, mock.MatchedBy(func(d *model.Doctor) bool {
		return d.Status == model.DoctorStatusAvailable
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Doctor).ID = 1
	}).Return(nil)
	events.On("Emit", mock.Anything, event.DoctorCreated, mock.Anything).Return()

	d, err := svc.AddDoctor(t.Context(), &model.CreateDoctorRequest{Name: "Dr. Sara", Specialty: "cardiology"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.ID)
	assert.Equal(t, model.DoctorStatusAvailable, d.Status)
	events.AssertExpectations(t)
}

func TestAddDoctor_Validation(t *testing.T) {
	tests := []struct {
		name string
		req  model.CreateDoctorRequest
	}{
		{"missing name", model.CreateDoctorRequest{Specialty: "surgery"}},
		{"missing specialty", model.CreateDoctorRequest{Name: "Dr. Omar", Specialty: "  "}},
		{"unknown status", model.CreateDoctorRequest{Name: "Dr. Omar", Specialty: "surgery", Status: "asleep"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := setup()
			_, err := svc.AddDoctor(t.Context(), &tt.req)
			assert.True(t, apperrors.IsValidation(err))
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestUpdateDoctorStatus(t *testing.T) {
	svc, repo, events := setup()

	updated := &model.Doctor{Base: model.Base{ID: 4}, Name: "Dr. Sara", Status: model.DoctorStatusOnLeave}
	repo.On("UpdateStatus", mock.Anything, int64(4), model.DoctorStatusOnLeave).Return(updated, nil)
	events.On("Emit", mock.Anything, event.DoctorStatusChanged, updated).Return()

	d, err := svc.UpdateDoctorStatus(t.Context(), 4, &model.UpdateDoctorStatusRequest{Status: model.DoctorStatusOnLeave})
	require.NoError(t, err)
	assert.Equal(t, model.DoctorStatusOnLeave, d.Status)
	events.AssertExpectations(t)
}

func TestUpdateDoctorStatus_UnknownDoctor(t *testing.T) {
	svc, repo, events := setup()

	repo.On("UpdateStatus", mock.Anything, int64(99), model.DoctorStatusBusy).
		Return(nil, apperrors.NotFound("doctor", nil))

	_, err := svc.UpdateDoctorStatus(t.Context(), 99, &model.UpdateDoctorStatusRequest{Status: model.DoctorStatusBusy})
	assert.True(t, apperrors.IsNotFound(err))
	events.AssertNotCalled(t, "Emit", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateDoctorStatus_RejectsUnknownStatus(t *testing.T) {
	svc, repo, _ := setup()

	_, err := svc.UpdateDoctorStatus(t.Context(), 1, &model.UpdateDoctorStatusRequest{Status: "retired"})
	assert.True(t, apperrors.IsValidation(err))
	repo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
