package hostfuncs

import (
	"encoding/json"
	stdErrors "errors"
	"net/http"

	"github.com/0-don/monero-ts/domain/entities"
	"github.com/0-don/monero-ts/domain/errors"
)

// ErrorResponse represents a structured error that can be returned as JSON to
// hosts that exchange data rather than traps or exceptions.
type ErrorResponse struct {
	// Error is a machine-readable error type identifier (e.g., "VALIDATION_ERROR", "INTERNAL_ERROR").
	Error string `json:"error"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Detail is the structured form of the underlying error, when there is one.
	Detail *entities.ErrorDetail `json:"detail,omitempty"`

	// Code is a numeric error code (e.g., 400, 500).
	Code int `json:"code"`
}

// ToJSON serializes the ErrorResponse to JSON bytes.
// Returns nil if serialization fails (which should never happen for this simple type).
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewValidationError creates an error response for bad input (e.g., malformed JSON).
func NewValidationError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   "VALIDATION_ERROR",
		Message: message,
		Code:    http.StatusBadRequest,
	}
}

// NewNotFoundError creates an error response for unknown export names.
func NewNotFoundError(name string) ErrorResponse {
	return ErrorResponse{
		Error:   "NOT_FOUND",
		Message: "unknown export: " + name,
		Code:    http.StatusNotFound,
	}
}

// NewInternalError creates an error response for unexpected failures.
func NewInternalError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   "INTERNAL_ERROR",
		Message: message,
		Code:    http.StatusInternalServerError,
	}
}

// NewUnavailableError creates an error response for a table that is not Ready.
func NewUnavailableError(message string) ErrorResponse {
	return ErrorResponse{
		Error:   "UNAVAILABLE",
		Message: message,
		Code:    http.StatusServiceUnavailable,
	}
}

// ErrorResponseFrom classifies err into an ErrorResponse.
func ErrorResponseFrom(err error) ErrorResponse {
	resp := classify(err)
	resp.Detail = errors.ToErrorDetail(err)
	return resp
}

func classify(err error) ErrorResponse {
	var (
		notFound *errors.NotFoundError
		argErr   *errors.ArgumentError
	)
	switch {
	case stdErrors.As(err, &notFound):
		return NewNotFoundError(notFound.Name)
	case stdErrors.As(err, &argErr):
		return NewValidationError(argErr.Error())
	case stdErrors.Is(err, errors.ErrNotInitialized):
		return NewUnavailableError(err.Error())
	case stdErrors.Is(err, errors.ErrUnknownHandle):
		return NewValidationError(err.Error())
	default:
		return NewInternalError(err.Error())
	}
}
