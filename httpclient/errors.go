package httpclient

import (
	"errors"
	"fmt"
	"net/http"

	apperrors "github.com/synapseiq/site/errors"
	"github.com/synapseiq/site/resilience"
)

// ErrorCode is the transport-level failure class.
type ErrorCode int

const (
	ErrCodeTimeout ErrorCode = iota
	ErrCodeConnection
	ErrCodeAuth       // 401, 403
	ErrCodeNotFound   // 404
	ErrCodeRateLimit  // 429
	ErrCodeValidation // other 4xx, or a request that could not be built
	ErrCodeServer     // 5xx
)

var errorCodeNames = [...]string{
	ErrCodeTimeout:    "timeout",
	ErrCodeConnection: "connection",
	ErrCodeAuth:       "auth",
	ErrCodeNotFound:   "not_found",
	ErrCodeRateLimit:  "rate_limit",
	ErrCodeValidation: "validation",
	ErrCodeServer:     "server",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(errorCodeNames) {
		return "unknown"
	}
	return errorCodeNames[c]
}

// Error is a failed call to the testimonials API. StatusCode is zero when
// no response was received.
type Error struct {
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	Body       []byte
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewValidationError reports a request that never left the process.
func NewValidationError(msg string) *Error {
	return &Error{Code: ErrCodeValidation, Message: msg}
}

// ClassifyStatusCode returns nil for 2xx and a classified *Error otherwise.
// 429 and 5xx are retryable.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	e := &Error{StatusCode: statusCode, Message: fmt.Sprintf("HTTP %d", statusCode), Body: body}
	switch {
	case statusCode == http.StatusUnauthorized, statusCode == http.StatusForbidden:
		e.Code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		e.Code = ErrCodeRateLimit
		e.Retryable = true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeValidation
	default:
		e.Code = ErrCodeServer
		e.Retryable = statusCode >= 500
	}
	return e
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsRetryable is the RetryIf predicate used by DefaultRetryConfig.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}

// ToAppError translates a transport failure into an AppError naming
// service. AppErrors pass through unchanged and an open circuit becomes
// SERVICE_UNAVAILABLE.
func ToAppError(err error, service string) *apperrors.AppError {
	if err == nil {
		return nil
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return apperrors.ServiceUnavailable(service).WithCause(err)
	}

	var e *Error
	if !errors.As(err, &e) {
		return apperrors.ExternalServiceError(service, err)
	}

	var out *apperrors.AppError
	switch {
	case e.Code == ErrCodeTimeout:
		out = apperrors.Timeout(service)
	case e.Code == ErrCodeConnection:
		out = apperrors.ConnectionFailed(service)
	case e.StatusCode == http.StatusForbidden:
		out = apperrors.Forbidden("")
	case e.Code == ErrCodeAuth:
		out = apperrors.Unauthorized("")
	case e.Code == ErrCodeNotFound:
		out = apperrors.NotFound(service, "")
	case e.Code == ErrCodeRateLimit:
		out = apperrors.RateLimited()
	default:
		out = apperrors.ExternalServiceError(service, nil)
	}
	if e.StatusCode != 0 {
		out.WithDetail("status_code", e.StatusCode)
	}
	return out.WithCause(err)
}
