package pharmacy

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/service/pharmacy"
	"github.com/jwalitptl/hospital-records/pkg/httputil"
)

type Handler struct {
	service pharmacy.PharmacyService
}

func NewHandler(service pharmacy.PharmacyService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ph := r.Group("/pharmacy")
	{
		ph.POST("/items", h.AddItem)
		ph.GET("/items", h.ListItems)
		ph.GET("/inventory-value", h.InventoryValue)
	}
}

func (h *Handler) AddItem(c *gin.Context) {
	var req model.CreatePharmacyItemRequest
	if err := httputil.BindJSON(c, &req); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	item, err := h.service.AddPharmacyItem(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, item)
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListPharmacy(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, items)
}

func (h *Handler) InventoryValue(c *gin.Context) {
	v, err := h.service.TotalInventoryValue(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, v)
}
