package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFound_WrapsSentinel(t *testing.T) {
	err := NotFound("internship", "abc123")

	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFound() should wrap ErrNotFound")
	}
	if err.Message == "" {
		t.Error("NotFound() should have a message")
	}
}

func TestValidationFailed_CarriesField(t *testing.T) {
	err := ValidationFailed("email", "email is required")

	if !errors.Is(err, ErrValidation) {
		t.Error("ValidationFailed() should wrap ErrValidation")
	}
	if err.Field != "email" {
		t.Errorf("Field = %q, want %q", err.Field, "email")
	}
}

func TestForbidden_WrapsSentinel(t *testing.T) {
	err := Forbidden("access denied")

	if !errors.Is(err, ErrForbidden) {
		t.Error("Forbidden() should wrap ErrForbidden")
	}
	if err.Error() != "access denied" {
		t.Errorf("Error() = %q, want %q", err.Error(), "access denied")
	}
}

func TestConflict_WrapsSentinel(t *testing.T) {
	err := Conflict("already applied")

	if !errors.Is(err, ErrConflict) {
		t.Error("Conflict() should wrap ErrConflict")
	}
}

func TestStorageRejected_WrapsSentinel(t *testing.T) {
	err := StorageRejected("file too large")

	if !errors.Is(err, ErrStorage) {
		t.Error("StorageRejected() should wrap ErrStorage")
	}
}

func TestWrappedError_SurvivesFmtErrorf(t *testing.T) {
	// Services wrap repository errors with fmt.Errorf("...: %w", err).
	// errors.Is must still find the sentinel through the chain.
	inner := NotFound("application", "xyz")
	outer := fmt.Errorf("updating status: %w", inner)

	if !errors.Is(outer, ErrNotFound) {
		t.Error("errors.Is should find ErrNotFound through fmt.Errorf wrapping")
	}

	var appErr *AppError
	if !errors.As(outer, &appErr) {
		t.Fatal("errors.As should extract *AppError through fmt.Errorf wrapping")
	}
	if appErr.Message == "" {
		t.Error("extracted AppError lost its message")
	}
}
