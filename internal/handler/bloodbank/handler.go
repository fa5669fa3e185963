package bloodbank

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/service/bloodbank"
	"github.com/jwalitptl/hospital-records/pkg/httputil"
)

type Handler struct {
	service  bloodbank.BloodBankService
	seedBags int
}

// NewHandler serves the blood bank routes. seedBags is used by POST /seed
// when the request carries no body or omits bags.
func NewHandler(service bloodbank.BloodBankService, seedBags int) *Handler {
	return &Handler{service: service, seedBags: seedBags}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	bb := r.Group("/blood-bank")
	{
		bb.POST("/donations", h.RecordDonation)
		bb.GET("/summary", h.Summary)
		bb.POST("/seed", h.Seed)
	}
}

func (h *Handler) RecordDonation(c *gin.Context) {
	var req model.RecordDonationRequest
	if err := httputil.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	donation, err := h.service.RecordBloodDonation(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, donation)
}

func (h *Handler) Summary(c *gin.Context) {
	totals, err := h.service.BloodSummary(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, totals)
}

func (h *Handler) Seed(c *gin.Context) {
	req := model.SeedBloodStockRequest{Bags: h.seedBags}
	if c.Request.ContentLength != 0 {
		if err := httputil.BindJSON(c, &req); err != nil {
			httputil.RespondWithError(c, err)
			return
		}
	}

	totals, err := h.service.SeedBloodStock(c.Request.Context(), req.Bags)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, totals)
}
