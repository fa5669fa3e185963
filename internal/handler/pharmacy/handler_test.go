package pharmacy

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository/mocks"
	"github.com/jwalitptl/hospital-records/internal/service/event"
	"github.com/jwalitptl/hospital-records/internal/service/pharmacy"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

func setupRouter(repo *mocks.PharmacyRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := pharmacy.NewService(repo, validator.New(), nil, event.Nop(), logger.Nop(), nil)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAddItem(t *testing.T) {
	repo := new(mocks.PharmacyRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	w := do(setupRouter(repo), http.MethodPost, "/api/v1/pharmacy/items", `{"name":"Paracetamol","price":10,"quantity":3}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestAddItem_NegativeQuantity(t *testing.T) {
	repo := new(mocks.PharmacyRepository)

	w := do(setupRouter(repo), http.MethodPost, "/api/v1/pharmacy/items", `{"name":"Paracetamol","price":10,"quantity":-1}`)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "quantity must not be negative")
}

func TestInventoryValue(t *testing.T) {
	repo := new(mocks.PharmacyRepository)
	repo.On("Valuation", mock.Anything).Return(&model.InventoryValuation{TotalValue: 40, Items: 2}, nil)

	w := do(setupRouter(repo), http.MethodGet, "/api/v1/pharmacy/inventory-value", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","data":{"total_value":40,"items":2}}`, w.Body.String())
}
