package appointment

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository/mocks"
	"github.com/jwalitptl/hospital-records/internal/service/appointment"
	"github.com/jwalitptl/hospital-records/internal/service/event"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type fixture struct {
	router   *gin.Engine
	appts    *mocks.AppointmentRepository
	patients *mocks.PatientRepository
	doctors  *mocks.DoctorRepository
}

func newFixture() *fixture {
	gin.SetMode(gin.TestMode)
	f := &fixture{
		appts:    new(mocks.AppointmentRepository),
		patients: new(mocks.PatientRepository),
		doctors:  new(mocks.DoctorRepository),
	}
	svc := appointment.NewService(f.appts, f.patients, f.doctors, validator.New(), nil, event.Nop(), logger.Nop(), nil)
	f.router = gin.New()
	NewHandler(svc).RegisterRoutes(f.router.Group("/api/v1"))
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func TestBookAppointment(t *testing.T) {
	f := newFixture()
	f.patients.On("FindByName", mock.Anything, "Ali").Return(&model.Patient{Base: model.Base{ID: 1}, Name: "Ali"}, nil)
	f.doctors.On("FindByName", mock.Anything, "Dr. Sara").Return(&model.Doctor{Base: model.Base{ID: 2}, Name: "Dr. Sara"}, nil)
	f.appts.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := f.do(http.MethodPost, "/api/v1/appointments",
		`{"patient_name":"Ali","doctor_name":"Dr. Sara","date":"2024-05-01","time":"10:30"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data model.Appointment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(1), body.Data.PatientID)
	assert.Equal(t, int64(2), body.Data.DoctorID)
	assert.Equal(t, "2024-05-01", body.Data.Date)
}

func TestBookAppointment_UnknownDoctor(t *testing.T) {
	f := newFixture()
	f.patients.On("Get", mock.Anything, int64(1)).Return(&model.Patient{Base: model.Base{ID: 1}, Name: "Ali"}, nil)
	f.doctors.On("FindByName", mock.Anything, "Dr. Who").Return(nil, apperrors.NotFound("doctor", nil))

	w := f.do(http.MethodPost, "/api/v1/appointments",
		`{"patient_id":1,"doctor_name":"Dr. Who","date":"2024-05-01","time":"10:30"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	f.appts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListAppointmentsByDate(t *testing.T) {
	f := newFixture()
	f.appts.On("List", mock.Anything, &model.AppointmentFilters{Date: "2024-05-01"}).
		Return([]*model.Appointment{{Base: model.Base{ID: 4}, Date: "2024-05-01", Time: "09:00"}}, nil)

	w := f.do(http.MethodGet, "/api/v1/appointments?date=2024-05-01", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"date":"2024-05-01"`)
}
