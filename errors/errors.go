package errors

import (
	"fmt"
)

// AppError is the error type returned across package boundaries: feed
// operations, the HTTP source, config validation and the fixture server
// all report failures as an AppError.
type AppError struct {
	Code       ErrorCode      `json:"code"`
	Message    string         `json:"message"`
	Retryable  bool           `json:"retryable"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying error.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges details into the error.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	for k, v := range details {
		e.WithDetail(k, v)
	}
	return e
}

// WithDetail sets one detail.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates an AppError. Retryable is derived from code.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// newCoded creates an AppError with the status registered for code.
func newCoded(code ErrorCode, message string, details map[string]any) *AppError {
	e := New(code, message, StatusFor(code))
	if len(details) > 0 {
		e.Details = details
	}
	return e
}

func ServiceUnavailable(service string) *AppError {
	return newCoded(ErrCodeServiceUnavailable,
		fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		map[string]any{"service": service})
}

func ConnectionFailed(service string) *AppError {
	return newCoded(ErrCodeConnectionFailed,
		fmt.Sprintf("Unable to connect to %s. Please verify the service is running.", service),
		map[string]any{"service": service})
}

func Timeout(operation string) *AppError {
	return newCoded(ErrCodeTimeout, "The request took too long. Please try again.",
		map[string]any{"operation": operation})
}

func RateLimited() *AppError {
	return newCoded(ErrCodeRateLimited, "Too many requests. Please wait a moment and try again.", nil)
}

// NotFound omits the id detail when id is empty.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return newCoded(ErrCodeNotFound, fmt.Sprintf("The requested %s was not found.", resource), details)
}

func InvalidInput(field, reason string) *AppError {
	var details map[string]any
	if field != "" {
		details = map[string]any{"field": field}
	}
	return newCoded(ErrCodeInvalidInput, "Invalid input: "+reason, details)
}

// Validation wraps a combined validation message.
func Validation(message string) *AppError {
	return newCoded(ErrCodeInvalidInput, message, nil)
}

func InvalidFormat(field, expectedFormat string) *AppError {
	return newCoded(ErrCodeInvalidFormat,
		fmt.Sprintf("Invalid format for %s. Expected: %s", field, expectedFormat),
		map[string]any{"field": field, "expected_format": expectedFormat})
}

func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return newCoded(ErrCodeUnauthorized, reason, nil)
}

func Forbidden(reason string) *AppError {
	if reason == "" {
		reason = "You don't have permission to perform this action."
	}
	return newCoded(ErrCodeForbidden, reason, nil)
}

func Internal(cause error) *AppError {
	return newCoded(ErrCodeInternal, "An unexpected error occurred.", nil).WithCause(cause)
}

func ExternalServiceError(service string, cause error) *AppError {
	return newCoded(ErrCodeExternalService,
		fmt.Sprintf("The %s service encountered an error. Please try again.", service),
		map[string]any{"service": service}).WithCause(cause)
}

// Closed reports an operation attempted after component was closed.
func Closed(component string) *AppError {
	return newCoded(ErrCodeClosed, fmt.Sprintf("The %s has been closed.", component),
		map[string]any{"component": component})
}
