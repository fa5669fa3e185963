package httputil

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	apperrors "github.com/jwalitptl/hospital-records/pkg/errors"
)

// Response wraps successful API responses
type Response struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// ErrorResponse wraps failed API responses
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// RespondWithSuccess sends data with the given status
func RespondWithSuccess(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Response{
		Status: "success",
		Data:   data,
	})
}

// RespondWithError maps err onto a status code and sends it. Internal
// details are logged, not returned.
func RespondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		if errors.Is(err, context.DeadlineExceeded) {
			appErr = apperrors.Timeout(err)
		} else {
			appErr = apperrors.Internal(err)
		}
		err = appErr
	}
	status := appErr.StatusCode()

	body := ErrorResponse{
		Status:  "error",
		Message: apperrors.PublicMessage(err),
		Field:   appErr.Field,
	}

	if status >= http.StatusInternalServerError {
		log.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("request_id", c.GetString("request_id")).
			Msg("request failed")
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, body)
}

// BindJSON decodes the request body into obj. A body cut off by
// http.MaxBytesReader is reported as too large rather than malformed.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return apperrors.PayloadTooLarge(tooLarge.Limit)
		}
		return apperrors.Validation("", "invalid request body: "+err.Error())
	}
	return nil
}

// ParseID reads a positive integer path parameter.
func ParseID(c *gin.Context, param string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || id < 1 {
		return 0, apperrors.Validation(param, param+" must be a positive integer")
	}
	return id, nil
}
