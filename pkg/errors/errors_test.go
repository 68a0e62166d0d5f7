package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidInput, "test message: %s", "value")

	if err.Code != ErrCodeInvalidInput {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidInput)
	}

	if err.Message != "test message: value" {
		t.Errorf("Message = %v, want %v", err.Message, "test message: value")
	}

	expected := "INVALID_INPUT: test message: value"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInputFormat, cause, "parse network.xgmml")

	if err.Code != ErrCodeInputFormat {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInputFormat)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	// Test Unwrap
	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
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
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInvalidInput,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeInvalidInput, "test"),
			code:     ErrCodeInputFormat,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeInputFormat, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeInputFormat,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
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
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeSchema, "test"),
			expected: ErrCodeSchema,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidInput, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestThresholdError(t *testing.T) {
	cause := New(ErrCodeRender, "layout failed")

	t.Run("with source", func(t *testing.T) {
		err := &ThresholdError{Source: "KOFAM", Threshold: 35, Err: cause}
		expected := "KOFAM threshold 35: RENDER: layout failed"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("without source", func(t *testing.T) {
		err := &ThresholdError{Threshold: 12.5, Err: cause}
		expected := "threshold 12.5: RENDER: layout failed"
		if err.Error() != expected {
			t.Errorf("Error() = %v, want %v", err.Error(), expected)
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &ThresholdError{}
		if err.Code() != ErrCodeRender {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeRender)
		}
	})

	t.Run("unwrap and extract", func(t *testing.T) {
		var err error = fmt.Errorf("sweep: %w", &ThresholdError{Source: "EGGNOG", Threshold: 80, Err: cause})
		if !Is(err, ErrCodeRender) {
			t.Error("Is(err, ErrCodeRender) = false, want true")
		}
		got, ok := FailedThreshold(err)
		if !ok || got != 80 {
			t.Errorf("FailedThreshold() = %v, %v, want 80, true", got, ok)
		}
		if _, ok := FailedThreshold(errors.New("plain")); ok {
			t.Error("FailedThreshold(plain) reported a threshold")
		}
	})
}

func TestGetCodeTypedError(t *testing.T) {
	err := fmt.Errorf("sweep KOFAM: %w", &ThresholdError{Threshold: 3, Err: errors.New("disk full")})
	if got := GetCode(err); got != ErrCodeRender {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeRender)
	}
	if Is(errors.New("plain"), "") {
		t.Error("Is(plain, \"\") = true, want false")
	}
}
