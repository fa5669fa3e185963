package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-records/pkg/httputil"
)

// TimeoutConfig defines timeout settings
type TimeoutConfig struct {
	Duration time.Duration
}

// Timeout puts a deadline on the request context. Handlers run on the
// request goroutine; database and broker calls made with that context give
// up once it expires. A handler that returns after the deadline without
// writing anything gets a 504.
func Timeout(config TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if config.Duration <= 0 {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), config.Duration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if errors.Is(ctx.Err(), context.DeadlineExceeded) && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, httputil.ErrorResponse{
				Status:  "error",
				Message: "request timed out",
			})
		}
	}
}
