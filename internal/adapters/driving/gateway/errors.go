package gateway

import (
	"errors"
	"net/http"

	"github.com/mukesh2006/medic/internal/core/domain"
)

// ErrMissingIntakeService is returned when the intake service is not provided.
var ErrMissingIntakeService = errors.New("gateway: intake service is required")

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error  string                `json:"error"`
	Failed []domain.WriteFailure `json:"failed,omitempty"`
	Result *domain.SaveResult    `json:"result,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrMalformedMessage):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrLineageTooDeep):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStoreUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
