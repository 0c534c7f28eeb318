package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safescan/backend/internal/domain"
	"github.com/safescan/backend/internal/usecase"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error   string               `json:"error"`
	Details []usecase.FieldError `json:"details,omitempty"`
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidProduct),
		errors.Is(err, domain.ErrInvalidProfile):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrProductSourceFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON with its mapped status
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	_ = c.Error(err)

	resp := ErrorResponse{Error: err.Error()}
	var validationErr *usecase.ValidationError
	if errors.As(err, &validationErr) {
		resp.Error = errors.Unwrap(validationErr).Error()
		resp.Details = validationErr.Fields
	}
	if status == http.StatusInternalServerError {
		resp.Error = "internal server error"
	}
	c.JSON(status, resp)
}

// respondBindError reports a malformed request body
func respondBindError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   domain.ErrInvalidRequest.Error(),
		Details: []usecase.FieldError{{Path: "body", Info: err.Error()}},
	})
}
