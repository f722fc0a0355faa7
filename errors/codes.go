package errors

import "net/http"

// ErrorCode is a machine-readable error code.
type ErrorCode string

// Failures reaching the testimonials API. All are retryable.
const (
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	ErrCodeConnectionFailed   ErrorCode = "CONNECTION_FAILED"
	ErrCodeTimeout            ErrorCode = "TIMEOUT"
	ErrCodeRateLimited        ErrorCode = "RATE_LIMITED"
	ErrCodeExternalService    ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// Request and input errors.
const (
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	ErrCodeUnauthorized  ErrorCode = "UNAUTHORIZED"
	ErrCodeForbidden     ErrorCode = "FORBIDDEN"
)

const (
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeClosed marks an operation on a feed or component after Close.
	ErrCodeClosed ErrorCode = "CLOSED"
)

type codeInfo struct {
	status    int
	retryable bool
}

var codes = map[ErrorCode]codeInfo{
	ErrCodeServiceUnavailable: {http.StatusServiceUnavailable, true},
	ErrCodeConnectionFailed:   {http.StatusServiceUnavailable, true},
	ErrCodeTimeout:            {http.StatusGatewayTimeout, true},
	ErrCodeRateLimited:        {http.StatusTooManyRequests, true},
	ErrCodeExternalService:    {http.StatusBadGateway, true},
	ErrCodeNotFound:           {http.StatusNotFound, false},
	ErrCodeInvalidInput:       {http.StatusBadRequest, false},
	ErrCodeInvalidFormat:      {http.StatusBadRequest, false},
	ErrCodeUnauthorized:       {http.StatusUnauthorized, false},
	ErrCodeForbidden:          {http.StatusForbidden, false},
	ErrCodeInternal:           {http.StatusInternalServerError, false},
	ErrCodeClosed:             {http.StatusServiceUnavailable, false},
}

// IsRetryableCode reports whether errors with code are worth retrying.
func IsRetryableCode(code ErrorCode) bool {
	return codes[code].retryable
}

// StatusFor returns the HTTP status associated with code, or 500 for
// unknown codes.
func StatusFor(code ErrorCode) int {
	if info, ok := codes[code]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}
