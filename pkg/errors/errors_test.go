package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeConfig, "missing variable: %s", "APOD_API_KEY")

	if err.Code != ErrCodeConfig {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeConfig)
	}

	if err.Message != "missing variable: APOD_API_KEY" {
		t.Errorf("Message = %v, want %v", err.Message, "missing variable: APOD_API_KEY")
	}

	expected := "CONFIG_ERROR: missing variable: APOD_API_KEY"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeNetwork, cause, "fetch entry")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	if unwrapped := errors.Unwrap(err); unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	// Test errors.Is with wrapped error
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeDecode, "bad payload"),
			code:     ErrCodeDecode,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeDecode, "bad payload"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error keeps outer code",
			err:      Wrap(ErrCodeUpstream, New(ErrCodeNetwork, "inner"), "outer"),
			code:     ErrCodeUpstream,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeConfig,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeConfig,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if code := GetCode(New(ErrCodeAuth, "rejected")); code != ErrCodeAuth {
		t.Errorf("GetCode() = %v, want %v", code, ErrCodeAuth)
	}
	if code := GetCode(errors.New("plain")); code != "" {
		t.Errorf("GetCode(plain) = %v, want empty", code)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodePathTranslation, "no rule matches")
	if msg := UserMessage(err); msg != "no rule matches" {
		t.Errorf("UserMessage() = %q, want %q", msg, "no rule matches")
	}
	plain := errors.New("plain error")
	if msg := UserMessage(plain); msg != "plain error" {
		t.Errorf("UserMessage(plain) = %q, want %q", msg, "plain error")
	}
}
