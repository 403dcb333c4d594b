package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestFromStatus(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		message  string
		sentinel error
		code     string
		wantMsg  string
	}{
		{"unauthorized defaults", http.StatusUnauthorized, "", ErrUnauthorized, "UNAUTHORIZED", "invalid credentials"},
		{"forbidden defaults", http.StatusForbidden, "", ErrForbidden, "FORBIDDEN", "no permission"},
		{"not found", http.StatusNotFound, "doctor not found", ErrNotFound, "NOT_FOUND", "doctor not found"},
		{"conflict", http.StatusConflict, "doctor has registered patients", ErrConflict, "CONFLICT", "doctor has registered patients"},
		{"unprocessable", http.StatusUnprocessableEntity, "", ErrValidation, "VALIDATION_ERROR", "validation failed"},
		{"other 4xx", http.StatusTeapot, "", ErrBadRequest, "BAD_REQUEST", http.StatusText(http.StatusTeapot)},
		{"server error", http.StatusBadGateway, "", ErrInternal, "BACKEND_ERROR", http.StatusText(http.StatusBadGateway)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := FromStatus(tt.status, tt.message)
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("FromStatus(%d) does not wrap %v", tt.status, tt.sentinel)
			}
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s", err.Code, tt.code)
			}
			if err.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", err.Message, tt.wantMsg)
			}
		})
	}
}

func TestWrapKeepsAppError(t *testing.T) {
	inner := NotFound("patient", "12")
	wrapped := Wrap(inner, "load patient")
	if !errors.Is(wrapped, ErrNotFound) {
		t.Error("wrapping must preserve the sentinel")
	}
	if wrapped.Code != "NOT_FOUND" {
		t.Errorf("code = %s, want NOT_FOUND", wrapped.Code)
	}
}
