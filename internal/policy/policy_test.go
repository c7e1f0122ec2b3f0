package policy

import (
	"errors"
	"testing"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
)

var (
	candidate      = Actor{UserID: "cand-1", Role: model.RoleCandidate}
	otherCandidate = Actor{UserID: "cand-2", Role: model.RoleCandidate}
	employer       = Actor{UserID: "emp-1", Role: model.RoleEmployer}
	otherEmployer  = Actor{UserID: "emp-2", Role: model.RoleEmployer}
)

func ownedInternship() *model.Internship {
	return &model.Internship{ID: "int-1", CompanyID: employer.UserID}
}

func applicationFrom(candidateID string) *model.Application {
	return &model.Application{ID: "app-1", CandidateID: candidateID, InternshipID: "int-1"}
}

func wantForbidden(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected a forbidden error, got nil")
	}
	if !errors.Is(err, apperror.ErrForbidden) {
		t.Errorf("error = %v, want ErrForbidden", err)
	}
}

// =========================================================================
// ROLE GATING
// =========================================================================

func TestRequireRole(t *testing.T) {
	if err := RequireRole(candidate, model.RoleCandidate); err != nil {
		t.Errorf("candidate should pass candidate gate, got %v", err)
	}
	if err := RequireRole(employer, model.RoleEmployer); err != nil {
		t.Errorf("employer should pass employer gate, got %v", err)
	}
	wantForbidden(t, RequireRole(candidate, model.RoleEmployer))
	wantForbidden(t, RequireRole(employer, model.RoleCandidate))
}

// =========================================================================
// OWNERSHIP GATING
// =========================================================================

func TestCanManageInternship_Owner(t *testing.T) {
	if err := CanManageInternship(employer, ownedInternship()); err != nil {
		t.Errorf("owner should manage own internship, got %v", err)
	}
}

func TestCanManageInternship_OtherEmployer(t *testing.T) {
	wantForbidden(t, CanManageInternship(otherEmployer, ownedInternship()))
}

func TestCanManageInternship_Candidate(t *testing.T) {
	wantForbidden(t, CanManageInternship(candidate, ownedInternship()))
}

func TestCanModerateApplication_Owner(t *testing.T) {
	if err := CanModerateApplication(employer, ownedInternship()); err != nil {
		t.Errorf("owner should moderate applications on own internship, got %v", err)
	}
}

func TestCanModerateApplication_OtherEmployer(t *testing.T) {
	wantForbidden(t, CanModerateApplication(otherEmployer, ownedInternship()))
}

// =========================================================================
// MESSAGING PARTICIPANT GATING
// =========================================================================

func TestMessageParties_CandidateSendsToEmployer(t *testing.T) {
	sender, receiver, err := MessageParties(candidate, applicationFrom(candidate.UserID), ownedInternship())
	if err != nil {
		t.Fatalf("MessageParties() error = %v", err)
	}
	if sender != candidate.UserID {
		t.Errorf("sender = %q, want %q", sender, candidate.UserID)
	}
	if receiver != employer.UserID {
		t.Errorf("receiver = %q, want %q", receiver, employer.UserID)
	}
}

func TestMessageParties_EmployerSendsToCandidate(t *testing.T) {
	sender, receiver, err := MessageParties(employer, applicationFrom(candidate.UserID), ownedInternship())
	if err != nil {
		t.Fatalf("MessageParties() error = %v", err)
	}
	if sender != employer.UserID {
		t.Errorf("sender = %q, want %q", sender, employer.UserID)
	}
	if receiver != candidate.UserID {
		t.Errorf("receiver = %q, want %q", receiver, candidate.UserID)
	}
}

func TestMessageParties_NonPartyCandidateDenied(t *testing.T) {
	_, _, err := MessageParties(otherCandidate, applicationFrom(candidate.UserID), ownedInternship())
	wantForbidden(t, err)
}

func TestMessageParties_NonOwningEmployerDenied(t *testing.T) {
	_, _, err := MessageParties(otherEmployer, applicationFrom(candidate.UserID), ownedInternship())
	wantForbidden(t, err)
}

func TestMessageParties_UnknownRoleDenied(t *testing.T) {
	ghost := Actor{UserID: "x", Role: model.Role("Admin")}
	_, _, err := MessageParties(ghost, applicationFrom(candidate.UserID), ownedInternship())
	wantForbidden(t, err)
}

// =========================================================================
// READ RECEIPTS
// =========================================================================

func TestCanMarkRead(t *testing.T) {
	msg := &model.Message{ID: "msg-1", SenderID: candidate.UserID, ReceiverID: employer.UserID}

	if err := CanMarkRead(employer, msg); err != nil {
		t.Errorf("receiver should mark read, got %v", err)
	}
	wantForbidden(t, CanMarkRead(candidate, msg)) // sender may not
	wantForbidden(t, CanMarkRead(otherCandidate, msg))
}
