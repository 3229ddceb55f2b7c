// Package controller holds the gin handlers. Each controller is a thin
// adapter: bind, call the service, map the error, shape the JSON.
package controller

import (
	"errors"
	"net/http"

	"apebrain-backend/internal/payment"
	"apebrain-backend/internal/repository"
	"apebrain-backend/internal/service"
)

// httpStatus maps service errors onto HTTP statuses.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateCode),
		errors.Is(err, service.ErrBadDiscountType),
		errors.Is(err, service.ErrBadExpiry),
		errors.Is(err, service.ErrNoFields),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrBadResetToken):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrPaymentNotCompleted):
		return http.StatusPaymentRequired
	case errors.Is(err, payment.ErrNotConfigured):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
