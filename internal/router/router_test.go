package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jwalitptl/hospital-records/internal/handler"
	dashboardhandler "github.com/jwalitptl/hospital-records/internal/handler/dashboard"
	"github.com/jwalitptl/hospital-records/internal/middleware"
	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository/mocks"
	"github.com/jwalitptl/hospital-records/internal/service/dashboard"
	"github.com/jwalitptl/hospital-records/pkg/httputil"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

func TestRouterSetup(t *testing.T) {
	reg := prometheus.NewRegistry()
	stats := new(mocks.StatsRepository)
	stats.On("Counts", mock.Anything).Return(&model.DashboardSummary{}, nil)

	r := NewRouter(
		handler.NewHandler(okPinger{}, reg),
		RouterConfig{
			Mode:          gin.TestMode,
			CORSConfig:    middleware.DefaultCORSConfig(nil),
			MetricsPrefix: "test",
			Registerer:    reg,
		},
		dashboardhandler.NewHandler(dashboard.NewService(stats, nil)),
	)
	r.Setup()

	for _, path := range []string{"/api/v1/health/live", "/api/v1/health/ready", "/api/v1/dashboard/summary", "/metrics"} {
		w := httptest.NewRecorder()
		r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
		assert.NotEmpty(t, w.Header().Get(middleware.HeaderXRequestID), path)
	}

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, w.Body.String(), "test_http_requests_total")
}

type limitRoutes struct{}

func (limitRoutes) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/echo", func(c *gin.Context) {
		var body map[string]interface{}
		if err := httputil.BindJSON(c, &body); err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})
	g.GET("/deadline", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
}

func TestRouterAppliesSizeLimitAndTimeout(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewRouter(
		handler.NewHandler(okPinger{}, reg),
		RouterConfig{
			Mode:           gin.TestMode,
			CORSConfig:     middleware.DefaultCORSConfig(nil),
			MetricsPrefix:  "test",
			Registerer:     reg,
			MaxBodySize:    64,
			RequestTimeout: time.Second,
		},
		limitRoutes{},
	)
	r.Setup()

	w := httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/echo", strings.NewReader(`{"name":"Ali"}`)))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	big := `{"name":"` + strings.Repeat("x", 128) + `"}`
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/echo", strings.NewReader(big)))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = httptest.NewRecorder()
	r.Engine().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/deadline", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
}
