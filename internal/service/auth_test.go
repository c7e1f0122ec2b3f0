package service

import (
	"context"
	"errors"
	"testing"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/auth"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
)

func newAuthService(t *testing.T) (*AuthService, *mockStore) {
	t.Helper()
	store := newMockStore()
	tokens, err := auth.NewTokenService("test-secret-0123456789abcdef")
	if err != nil {
		t.Fatalf("setup: NewTokenService() error = %v", err)
	}
	// MinCost keeps the bcrypt work factor out of the test runtime.
	passwords := auth.NewPasswordServiceForTest(4)
	return NewAuthService(store, tokens, passwords, testLogger()), store
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(context.Background(), "Asha Rao", "asha@example.com", "hunter2hunter2", model.RoleCandidate)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.User.ID == "" {
		t.Error("expected user to have an ID")
	}
	if result.User.Role != model.RoleCandidate {
		t.Errorf("Role = %q, want %q", result.User.Role, model.RoleCandidate)
	}
	if result.Token == "" {
		t.Error("expected a token to be issued")
	}
	if result.User.PasswordHash == "hunter2hunter2" {
		t.Error("password must not be stored in plaintext")
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	result, err := svc.Register(context.Background(), "Asha", "  Asha@Example.COM ", "hunter2hunter2", model.RoleCandidate)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.User.Email != "asha@example.com" {
		t.Errorf("Email = %q, want lowercased and trimmed", result.User.Email)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), "First", "dup@example.com", "hunter2hunter2", model.RoleCandidate); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "Second", "dup@example.com", "password123", model.RoleEmployer)
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newAuthService(t)

	cases := []struct {
		name     string
		userName string
		email    string
		password string
		role     model.Role
	}{
		{"empty name", "", "a@b.com", "hunter2hunter2", model.RoleCandidate},
		{"missing at sign", "Asha", "not-an-email", "hunter2hunter2", model.RoleCandidate},
		{"short password", "Asha", "a@b.com", "short", model.RoleCandidate},
		{"unknown role", "Asha", "a@b.com", "hunter2hunter2", model.Role("Admin")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.userName, tc.email, tc.password, tc.role)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_Success(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "hunter2hunter2", model.RoleCandidate); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "asha@example.com", "hunter2hunter2")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Token == "" {
		t.Error("expected a token to be issued")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "hunter2hunter2", model.RoleCandidate); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "asha@example.com", "wrong-password")
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// Unknown email and wrong password must be indistinguishable.
func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _ := newAuthService(t)

	if _, err := svc.Register(context.Background(), "Asha", "asha@example.com", "hunter2hunter2", model.RoleCandidate); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
	_, errWrong := svc.Login(context.Background(), "asha@example.com", "bad-password")

	if errUnknown == nil || errWrong == nil {
		t.Fatal("both logins should fail")
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("error messages differ: %q vs %q", errUnknown, errWrong)
	}
}

// =========================================================================
// GET USER TESTS
// =========================================================================

func TestGetUserByID_NotFound(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.GetUserByID(context.Background(), "no-such-user")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
