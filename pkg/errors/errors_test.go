package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeEmptyQuery, "Enter a path like %s", "$.user")
	if err.Error() != "EMPTY_QUERY: Enter a path like $.user" {
		t.Errorf("Error() = %q", err.Error())
	}

	cause := errors.New("unexpected end of JSON input")
	wrapped := Wrap(ErrCodeInvalidJSON, cause, "Invalid JSON: %s", cause)
	if wrapped.Message != "Invalid JSON: unexpected end of JSON input" {
		t.Errorf("Message = %q", wrapped.Message)
	}
	if errors.Unwrap(wrapped) != cause || !errors.Is(wrapped, cause) {
		t.Error("wrapped error should unwrap to its cause")
	}
}

func TestCodeLookup(t *testing.T) {
	inner := New(ErrCodeInvalidJSON, "Invalid JSON: bad")
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"structured", New(ErrCodeNoMatch, "No match found"), ErrCodeNoMatch, "No match found"},
		{"wrapped by fmt", fmt.Errorf("generate: %w", inner), ErrCodeInvalidJSON, "Invalid JSON: bad"},
		{"outer code wins", Wrap(ErrCodeNotFound, inner, "workspace gone"), ErrCodeNotFound, "workspace gone"},
		{"plain error", errors.New("disk full"), "", "disk full"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if tt.code != "" && !Is(tt.err, tt.code) {
				t.Errorf("Is(%q) = false", tt.code)
			}
			if Is(tt.err, ErrCodeUnsupported) {
				t.Error("Is(UNSUPPORTED) = true")
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}

	if Is(nil, ErrCodeInternal) || GetCode(nil) != "" {
		t.Error("nil error should have no code")
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{New(ErrCodeInvalidJSON, "bad"), http.StatusBadRequest},
		{New(ErrCodeEmptyQuery, "empty"), http.StatusBadRequest},
		{New(ErrCodeNoMatch, "none"), http.StatusNotFound},
		{New(ErrCodeNotFound, "gone"), http.StatusNotFound},
		{New(ErrCodeUnsupported, "no"), http.StatusNotImplemented},
		{errors.New("plain"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := HTTPStatus(tt.err); got != tt.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}
