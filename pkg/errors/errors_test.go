package errors

import (
	"errors"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeUnknownWidgetType, "unknown widget type: %s", "carousel")

	if err.Code != ErrCodeUnknownWidgetType {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeUnknownWidgetType)
	}

	if err.Message != "unknown widget type: carousel" {
		t.Errorf("Message = %v, want %v", err.Message, "unknown widget type: carousel")
	}

	expected := "UNKNOWN_WIDGET_TYPE: unknown widget type: carousel"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(ErrCodeSaveFailed, cause, "save page for user123")

	if err.Code != ErrCodeSaveFailed {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeSaveFailed)
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
			err:      New(ErrCodeElementNotFound, "test"),
			code:     ErrCodeElementNotFound,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeElementNotFound, "test"),
			code:     ErrCodeSaveFailed,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeSaveFailed, New(ErrCodeTimeout, "inner"), "outer"),
			code:     ErrCodeSaveFailed,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeElementNotFound,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeElementNotFound,
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
	if got := GetCode(New(ErrCodeLoadCorrupt, "bad mirror entry")); got != ErrCodeLoadCorrupt {
		t.Errorf("GetCode() = %v, want %v", got, ErrCodeLoadCorrupt)
	}

	if got := GetCode(errors.New("plain")); got != Code("") {
		t.Errorf("GetCode() = %v, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	err := New(ErrCodeSaveFailed, "could not reach the save endpoint")
	if got := UserMessage(err); got != "could not reach the save endpoint" {
		t.Errorf("UserMessage() = %v", got)
	}

	plain := errors.New("plain error")
	if got := UserMessage(plain); got != "plain error" {
		t.Errorf("UserMessage() = %v", got)
	}
}
