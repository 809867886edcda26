package errors

import (
	"fmt"
	"testing"
)

func TestFernError_Error(t *testing.T) {
	err := &FernError{
		Code:    ErrNotFound,
		Status:  404,
		Message: "journal entry not found",
	}

	expected := "NOT_FOUND: journal entry not found"
	if err.Error() != expected {
		t.Errorf("Error() = %q, want %q", err.Error(), expected)
	}
}

func TestNewInvalidRequest(t *testing.T) {
	err := NewInvalidRequest("mood name is required")

	if err.Code != ErrInvalidRequest {
		t.Errorf("Code = %q, want %q", err.Code, ErrInvalidRequest)
	}
	if err.Status != 400 {
		t.Errorf("Status = %d, want 400", err.Status)
	}
	if err.Message != "mood name is required" {
		t.Errorf("Message = %q, want %q", err.Message, "mood name is required")
	}
}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound("task mood-box-breathing")

	if err.Code != ErrNotFound {
		t.Errorf("Code = %q, want %q", err.Code, ErrNotFound)
	}
	if err.Status != 404 {
		t.Errorf("Status = %d, want 404", err.Status)
	}
	if err.Details["identifier"] != "task mood-box-breathing" {
		t.Errorf("Details[identifier] = %v, want %q", err.Details["identifier"], "task mood-box-breathing")
	}
}

func TestNewServiceUnavailable(t *testing.T) {
	err := NewServiceUnavailable("analysis service", fmt.Errorf("connection refused"))

	if err.Code != ErrServiceUnavailable {
		t.Errorf("Code = %q, want %q", err.Code, ErrServiceUnavailable)
	}
	if err.Status != 502 {
		t.Errorf("Status = %d, want 502", err.Status)
	}
	if err.Details["service"] != "analysis service" {
		t.Errorf("Details[service] = %v, want %q", err.Details["service"], "analysis service")
	}
}

func TestNewInternal(t *testing.T) {
	t.Run("with error", func(t *testing.T) {
		originalErr := fmt.Errorf("database connection failed")
		err := NewInternal(originalErr)

		if err.Code != ErrInternal {
			t.Errorf("Code = %q, want %q", err.Code, ErrInternal)
		}
		if err.Status != 500 {
			t.Errorf("Status = %d, want 500", err.Status)
		}
		// Message should be generic (not leak internal details)
		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details["internal_error"] != "database connection failed" {
			t.Errorf("Details[internal_error] = %q, want %q", err.Details["internal_error"], "database connection failed")
		}
	})

	t.Run("with nil", func(t *testing.T) {
		err := NewInternal(nil)

		if err.Message != "an internal error occurred" {
			t.Errorf("Message = %q, want %q", err.Message, "an internal error occurred")
		}
		if err.Details == nil {
			t.Error("Details should not be nil")
		}
	})
}

func TestIs(t *testing.T) {
	t.Run("matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if !Is(err, ErrNotFound) {
			t.Error("Is() = false, want true")
		}
	})

	t.Run("non-matching code", func(t *testing.T) {
		err := NewNotFound("test")
		if Is(err, ErrConflict) {
			t.Error("Is() = true, want false")
		}
	})

	t.Run("non-FernError", func(t *testing.T) {
		err := fmt.Errorf("plain error")
		if Is(err, ErrNotFound) {
			t.Error("Is() = true, want false for non-FernError")
		}
	})

	t.Run("wrapped FernError", func(t *testing.T) {
		inner := NewNotFound("test")
		wrapped := fmt.Errorf("load progress: %w", inner)
		if !Is(wrapped, ErrNotFound) {
			t.Error("Is() = false, want true for wrapped FernError")
		}
	})
}
