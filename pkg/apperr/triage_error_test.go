package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
)

func TestAppErrorError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := New(CodeBadRequest, "invalid field", http.StatusBadRequest)
		if got := err.Error(); got != "[BAD_REQUEST] invalid field" {
			t.Errorf("Error() = %q", got)
		}
	})

	t.Run("with cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := Wrap(cause, CodeInternalError, "something failed", http.StatusInternalServerError)
		if got := err.Error(); !strings.Contains(got, "boom") {
			t.Errorf("Error() = %q, want wrapped cause", got)
		}
		if !errors.Is(err, cause) {
			t.Error("errors.Is lost the cause through Unwrap")
		}
	})
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"bad request", BadRequest("nope"), CodeBadRequest, http.StatusBadRequest},
		{"bad request default message", BadRequest(""), CodeBadRequest, http.StatusBadRequest},
		{"not found", NotFound("missing"), CodeNotFound, http.StatusNotFound},
		{"payload too large", PayloadTooLarge(""), CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
		{"config", ConfigError(errors.New("bad yaml"), "load failed"), CodeConfigError, http.StatusInternalServerError},
		{"internal", Internal(errors.New("x"), ""), CodeInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("Code = %q, want %q", tt.err.Code, tt.wantCode)
			}
			if tt.err.HTTPStatus() != tt.wantStatus {
				t.Errorf("HTTPStatus() = %d, want %d", tt.err.HTTPStatus(), tt.wantStatus)
			}
			if tt.err.Message == "" {
				t.Error("Message is empty")
			}
		})
	}
}

func TestWithDetail(t *testing.T) {
	err := BadRequest("invalid batch").WithDetail("max", 500).WithDetail("got", 501)
	if err.Details["max"] != 500 || err.Details["got"] != 501 {
		t.Errorf("Details = %v", err.Details)
	}
}

func TestIs(t *testing.T) {
	err := NotFound("intent")
	if !Is(err, CodeNotFound) {
		t.Error("Is() = false for matching code")
	}
	if Is(err, CodeBadRequest) {
		t.Error("Is() = true for mismatched code")
	}
	if Is(errors.New("plain"), CodeNotFound) {
		t.Error("Is() = true for non-AppError")
	}

	wrapped := fmt.Errorf("outer: %w", err)
	if !Is(wrapped, CodeNotFound) {
		t.Error("Is() = false through wrapping")
	}
}

func TestAsAppError(t *testing.T) {
	original := BadRequest("x")
	if got := AsAppError(fmt.Errorf("wrap: %w", original)); got != original {
		t.Errorf("AsAppError() = %v, want the original", got)
	}

	plain := errors.New("plain failure")
	got := AsAppError(plain)
	if got.Code != CodeInternalError {
		t.Errorf("Code = %q, want internal", got.Code)
	}
	if !errors.Is(got, plain) {
		t.Error("cause lost when promoting a plain error")
	}
}
