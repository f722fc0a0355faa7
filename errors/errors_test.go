package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out", http.StatusGatewayTimeout)
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
	if New(ErrCodeNotFound, "gone", http.StatusNotFound).Retryable {
		t.Error("NOT_FOUND should not be retryable")
	}
}

func TestAppError_NotFound_EmptyID(t *testing.T) {
	err := NotFound("testimonial", "")
	if _, ok := err.Details["id"]; ok {
		t.Error("expected no 'id' key in details when id is empty")
	}
	if err.Details["resource"] != "testimonial" {
		t.Errorf("expected resource=testimonial, got %v", err.Details["resource"])
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := ExternalServiceError("testimonials", nil).WithCause(cause)
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
}

func TestAppError_WithDetails_Merge(t *testing.T) {
	err := InvalidInput("index", "out of range").WithDetails(map[string]any{"index": 7})
	err.WithDetail("length", 3)
	if err.Details["field"] != "index" || err.Details["index"] != 7 || err.Details["length"] != 3 {
		t.Errorf("unexpected details: %v", err.Details)
	}
}

func TestAppError_Constructors_Table(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"ServiceUnavailable", ServiceUnavailable("api"), ErrCodeServiceUnavailable, http.StatusServiceUnavailable, true},
		{"ConnectionFailed", ConnectionFailed("api"), ErrCodeConnectionFailed, http.StatusServiceUnavailable, true},
		{"Timeout", Timeout("fetch"), ErrCodeTimeout, http.StatusGatewayTimeout, true},
		{"RateLimited", RateLimited(), ErrCodeRateLimited, http.StatusTooManyRequests, true},
		{"InvalidFormat", InvalidFormat("date", "YYYY-MM-DD"), ErrCodeInvalidFormat, http.StatusBadRequest, false},
		{"Unauthorized", Unauthorized(""), ErrCodeUnauthorized, http.StatusUnauthorized, false},
		{"Forbidden", Forbidden(""), ErrCodeForbidden, http.StatusForbidden, false},
		{"Internal", Internal(nil), ErrCodeInternal, http.StatusInternalServerError, false},
		{"ExternalServiceError", ExternalServiceError("api", nil), ErrCodeExternalService, http.StatusBadGateway, true},
		{"Closed", Closed("feed"), ErrCodeClosed, http.StatusServiceUnavailable, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.HTTPStatus)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("expected retryable=%v, got %v", tt.retryable, tt.err.Retryable)
			}
		})
	}
}

func TestAsAppError_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("load more: %w", Timeout("fetch"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to unwrap")
	}
	if appErr.Code != ErrCodeTimeout {
		t.Errorf("expected TIMEOUT, got %s", appErr.Code)
	}
	if !HasCode(wrapped, ErrCodeTimeout) {
		t.Error("expected HasCode to match")
	}
	if HasCode(fmt.Errorf("plain"), ErrCodeTimeout) {
		t.Error("plain errors carry no code")
	}
	if IsAppError(fmt.Errorf("plain")) {
		t.Error("plain error is not an AppError")
	}
}

func TestToResponse(t *testing.T) {
	resp := NotFound("testimonial", "9").ToResponse()
	if resp.Error.Code != ErrCodeNotFound {
		t.Errorf("expected NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.Details["id"] != "9" {
		t.Errorf("expected id detail, got %v", resp.Error.Details)
	}
}

func TestStatusFor(t *testing.T) {
	if StatusFor(ErrCodeRateLimited) != http.StatusTooManyRequests {
		t.Error("RATE_LIMITED should map to 429")
	}
	if StatusFor(ErrorCode("SOMETHING_ELSE")) != http.StatusInternalServerError {
		t.Error("unknown codes should map to 500")
	}
	if IsRetryableCode(ErrorCode("SOMETHING_ELSE")) {
		t.Error("unknown codes are not retryable")
	}
}
