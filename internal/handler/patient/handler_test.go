package patient

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
	"github.com/jwalitptl/hospital-records/internal/service/event"
	"github.com/jwalitptl/hospital-records/internal/service/patient"
	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Field   string          `json:"field"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(repo *mocks.PatientRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := patient.NewService(repo, validator.New(), nil, event.Nop(), logger.Nop(), nil)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestAddPatient(t *testing.T) {
	repo := new(mocks.PatientRepository)
	r := setupRouter(repo)

	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Patient).ID = 1
	}).Return(nil)

	w, env := do(r, http.MethodPost, "/api/v1/patients", `{"name":"Ali","age":30,"phone":"0100"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "success", env.Status)

	var p model.Patient
	require.NoError(t, json.Unmarshal(env.Data, &p))
	assert.Equal(t, int64(1), p.ID)
	assert.Equal(t, "Ali", p.Name)
}

func TestAddPatient_MissingPhone(t *testing.T) {
	repo := new(mocks.PatientRepository)
	r := setupRouter(repo)

	w, env := do(r, http.MethodPost, "/api/v1/patients", `{"name":"Ali"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "phone", env.Field)
	assert.Equal(t, "phone is required", env.Message)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAddPatient_MalformedBody(t *testing.T) {
	w, env := do(setupRouter(new(mocks.PatientRepository)), http.MethodPost, "/api/v1/patients", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "error", env.Status)
}

func TestSearchPatients(t *testing.T) {
	repo := new(mocks.PatientRepository)
	r := setupRouter(repo)

	repo.On("List", mock.Anything, &model.PatientFilters{Query: "ali"}).Return([]*model.Patient{
		{Base: model.Base{ID: 2}, Name: "ali", Phone: "0101"},
		{Base: model.Base{ID: 1}, Name: "Ali", Phone: "0100"},
	}, nil)

	w, env := do(r, http.MethodGet, "/api/v1/patients?q=ali", "")
	require.Equal(t, http.StatusOK, w.Code)

	var patients []model.Patient
	require.NoError(t, json.Unmarshal(env.Data, &patients))
	require.Len(t, patients, 2)
	assert.Equal(t, int64(2), patients[0].ID)
}

func TestGetPatient(t *testing.T) {
	repo := new(mocks.PatientRepository)
	r := setupRouter(repo)

	repo.On("Get", mock.Anything, int64(404)).Return(nil, apperrors.NotFound("patient", nil))

	w, env := do(r, http.MethodGet, "/api/v1/patients/404", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "patient not found", env.Message)

	w, _ = do(r, http.MethodGet, "/api/v1/patients/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
