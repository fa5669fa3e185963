package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-records/pkg/httputil"
)

// SizeLimitConfig defines request size limits
type SizeLimitConfig struct {
	// MaxBodySize in bytes; zero disables the body check.
	MaxBodySize int64
	// MaxHeaderSize in bytes; zero disables the header check.
	MaxHeaderSize int
	SkipPaths     []string
}

// DefaultSizeLimitConfig returns the default size limit configuration
func DefaultSizeLimitConfig() SizeLimitConfig {
	return SizeLimitConfig{
		MaxBodySize:   1 << 20,  // 1MB
		MaxHeaderSize: 16 << 10, // 16KB
	}
}

// SizeLimit rejects requests whose declared length or headers exceed the
// limits and caps the body reader for chunked uploads.
func SizeLimit(config SizeLimitConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(config.SkipPaths))
	for _, p := range config.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		if config.MaxHeaderSize > 0 && headerSize(c.Request.Header) > config.MaxHeaderSize {
			c.AbortWithStatusJSON(http.StatusRequestHeaderFieldsTooLarge, httputil.ErrorResponse{
				Status:  "error",
				Message: fmt.Sprintf("request headers exceed %d bytes", config.MaxHeaderSize),
			})
			return
		}

		if config.MaxBodySize > 0 {
			if c.Request.ContentLength > config.MaxBodySize {
				c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, httputil.ErrorResponse{
					Status:  "error",
					Message: fmt.Sprintf("request body exceeds %d bytes", config.MaxBodySize),
				})
				return
			}
			if c.Request.Body != nil {
				c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.MaxBodySize)
			}
		}

		c.Next()
	}
}

func headerSize(h http.Header) int {
	size := 0
	for name, values := range h {
		for _, v := range values {
			size += len(name) + len(v)
		}
	}
	return size
}
