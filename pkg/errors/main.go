package errors

import (
	"errors"
	"fmt"
)

const (
	StatusOK                  = 200
	StatusNoContent           = 204
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusRequestTimeout      = 408
	StatusRequestTooLarge     = 413
	StatusInternalServerError = 500
	StatusServiceUnavailable  = 503
)

const (
	ErrorTypeInvalidRequest      = "INVALID_REQUEST"
	ErrorTypeMalformedPayload    = "MALFORMED_PAYLOAD"
	ErrorTypeDatabaseError       = "DATABASE_ERROR"
	ErrorTypeNotFound            = "NOT_FOUND"
	ErrorTypeStoreUnavailable    = "STORE_UNAVAILABLE"
	ErrorTypeInternalServerError = "INTERNAL_SERVER_ERROR"
	ErrorTypeRequestTimeout      = "REQUEST_TIMEOUT"
	ErrorTypeMethodNotAllowed    = "METHOD_NOT_ALLOWED"
	ErrorTypeUnknown             = "UNKNOWN_ERROR"
)

type AppError struct {
	Type    string
	Message string
	Err     error
	// Details carries per-field problems for validation failures.
	Details []ValidationErrorResponse
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NewAppError(errType, message string, err error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Err:     err,
	}
}

// NewValidationError reports a business rule the client can fix. The message
// is returned to the caller verbatim.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrorTypeInvalidRequest, message, nil)
}

// NewFieldValidationError is a validation error that also lists the offending fields.
func NewFieldValidationError(message string, details []ValidationErrorResponse) *AppError {
	appErr := NewAppError(ErrorTypeInvalidRequest, message, nil)
	appErr.Details = details
	return appErr
}

func NewMalformedPayloadError(message string, err error) *AppError {
	return NewAppError(ErrorTypeMalformedPayload, message, err)
}

func NewDatabaseError(message string, err error) *AppError {
	return NewAppError(ErrorTypeDatabaseError, message, err)
}

func NewNotFoundError(message string, err error) *AppError {
	return NewAppError(ErrorTypeNotFound, message, err)
}

func NewStoreUnavailableError(message string, err error) *AppError {
	return NewAppError(ErrorTypeStoreUnavailable, message, err)
}

func NewInternalServerError(message string, err error) *AppError {
	return NewAppError(ErrorTypeInternalServerError, message, err)
}

func GetErrorType(err error) string {
	if err == nil {
		return ""
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}

	return ErrorTypeUnknown
}

// GetDetails returns the field-level details attached to err, if any.
func GetDetails(err error) []ValidationErrorResponse {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Details
	}

	return nil
}
