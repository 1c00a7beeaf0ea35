package handlers

import (
	"errors"
	"net/http"

	"explainstudio/internal/repositories"
	"explainstudio/internal/services"
)

// statusFor maps service-layer errors onto HTTP status codes. Anything
// outside the known sentinels is an internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrNotCompatible):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
