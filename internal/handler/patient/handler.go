package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/service/patient"
	"github.com/jwalitptl/hospital-records/pkg/httputil"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.AddPatient)
		patients.GET("", h.SearchPatients)
		patients.GET("/:id", h.GetPatient)
	}
}

func (h *Handler) AddPatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := httputil.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	patient, err := h.service.AddPatient(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, patient)
}

// SearchPatients handles GET /patients?q=. Without q every patient is listed.
func (h *Handler) SearchPatients(c *gin.Context) {
	patients, err := h.service.SearchPatients(c.Request.Context(), c.Query("q"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, patients)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := httputil.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	patient, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, patient)
}
