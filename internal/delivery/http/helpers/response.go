package helpers

import (
	"encoding/json"
	"errors"
	"net/http"

	"eventplanner/internal/domain"
)

// Error codes for API error responses. Use these with WriteJSONError.
const (
	ErrCodeBadRequest    = "bad_request"
	ErrCodeUnauthorized  = "unauthorized"
	ErrCodeForbidden     = "forbidden"
	ErrCodeNotFound      = "not_found"
	ErrCodeConflict      = "conflict"
	ErrCodeInternalError = "internal_error"
)

// APIError is the error object in the standardized API response envelope.
// swagger:model APIError
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// APIResponse is the standardized envelope for all API responses.
// On success: Data is set, Error is nil. On error: Data is nil, Error is set.
// swagger:model APIResponse
type APIResponse struct {
	Data  any       `json:"data"`
	Error *APIError `json:"error"`
}

// WriteJSONSuccess sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with the given data and error set to nil.
func WriteJSONSuccess(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{Data: data, Error: nil})
}

// WriteJSONError sets Content-Type to application/json, writes statusCode, and
// encodes an APIResponse with data nil and the given error code and message.
func WriteJSONError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(APIResponse{
		Data:  nil,
		Error: &APIError{Code: code, Message: message},
	})
}

// ClientError reports whether err maps to a 4xx response, so callers can
// skip error-level logging for routine request failures.
func ClientError(err error) bool {
	return errors.Is(err, domain.ErrNotFound) ||
		errors.Is(err, domain.ErrForbidden) ||
		errors.Is(err, domain.ErrNotPrivate) ||
		errors.Is(err, domain.ErrAlreadyRegistered) ||
		errors.Is(err, domain.ErrAlreadyInvited) ||
		errors.Is(err, domain.ErrDuplicateSlug) ||
		errors.Is(err, domain.ErrInvalidInput)
}

// WriteDomainError maps a domain sentinel onto the matching status and error
// code and writes it. Unknown errors become an opaque 500 internal_error;
// the real error goes to the log, never the response body. Forbidden
// responses carry the authorization reason when the error is an AuthzError.
func WriteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		WriteJSONError(w, http.StatusNotFound, ErrCodeNotFound, "not found")
	case errors.Is(err, domain.ErrNotPrivate):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, domain.AuthzReason(err))
	case errors.Is(err, domain.ErrForbidden):
		WriteJSONError(w, http.StatusForbidden, ErrCodeForbidden, domain.AuthzReason(err))
	case errors.Is(err, domain.ErrAlreadyRegistered):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "already registered for this event")
	case errors.Is(err, domain.ErrAlreadyInvited):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "email already invited to this event")
	case errors.Is(err, domain.ErrDuplicateSlug):
		WriteJSONError(w, http.StatusConflict, ErrCodeConflict, "an event with this name already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		WriteJSONError(w, http.StatusBadRequest, ErrCodeBadRequest, err.Error())
	default:
		WriteJSONError(w, http.StatusInternalServerError, ErrCodeInternalError, "internal server error")
	}
}
