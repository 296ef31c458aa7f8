package api

import (
	"errors"
	"net/http"

	"github.com/subtextdev/subtext-api/internal/domain"
	"github.com/subtextdev/subtext-api/internal/service"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status
// codes based on the error type. This prevents leaking internal error
// types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrTaskNotFound):
		return http.StatusNotFound

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, service.ErrEmptyResult):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly message for
// the error. Validation errors keep their detail; everything else is
// generic.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, service.ErrTaskNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrEmptyResult):
		return "Result cannot be empty"

	case errors.Is(err, domain.ErrValidation):
		// Validation detail is derived from client input; safe to echo.
		return err.Error()

	default:
		return "An unexpected error occurred"
	}
}
