package api

import (
	"errors"
	"net/http"

	"github.com/tiendalab/tienda-bff/internal/api/shared"
	"github.com/tiendalab/tienda-bff/internal/platform/fakestore"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, shared.ErrInvalidBody):
		return http.StatusBadRequest
	case errors.Is(err, fakestore.ErrUpstreamUnavailable),
		errors.Is(err, fakestore.ErrInvalidResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for err.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return msgUnexpected
	case errors.Is(err, shared.ErrInvalidBody):
		return msgInvalidBody
	case errors.Is(err, fakestore.ErrUpstreamUnavailable):
		return msgUpstreamUnavailable
	case errors.Is(err, fakestore.ErrInvalidResponse):
		return msgUpstreamInvalid
	default:
		return msgUnexpected
	}
}

// HandleAPIError writes the response for an internal error and logs it.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
