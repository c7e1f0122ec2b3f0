// Package policy contains the access-control rules applied before every
// core operation: role gating, ownership gating, and messaging participant
// gating.
//
// Each check is a pure function from (actor, resource) to nil or a
// Forbidden error. The checks know nothing about HTTP or the database, so
// the whole authorization surface can be tested with plain function calls.
// Services call these before touching the store; a Forbidden result is
// terminal for the request: never corrected, never silently downgraded.
package policy

import (
	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
)

// Actor is the authenticated identity attached to a request by the auth
// middleware. The core never authenticates credentials itself; it trusts
// the Actor handed to it.
type Actor struct {
	UserID string
	Role   model.Role
}

// RequireRole denies actors whose role is not the required one. Used for
// operations restricted to exactly one role: posting internships is
// employer-only, applying and saving are candidate-only, and so on.
func RequireRole(actor Actor, role model.Role) error {
	if actor.Role != role {
		return apperror.Forbidden("access denied")
	}
	return nil
}

// CanManageInternship checks that the actor is an employer AND owns the
// internship. Both editing and deleting a posting go through this.
// IDs are compared as opaque strings.
func CanManageInternship(actor Actor, internship *model.Internship) error {
	if err := RequireRole(actor, model.RoleEmployer); err != nil {
		return err
	}
	if internship.CompanyID != actor.UserID {
		return apperror.Forbidden("internship belongs to another employer")
	}
	return nil
}

// CanModerateApplication checks that the actor owns the internship the
// application targets. Only that employer may approve or reject it.
func CanModerateApplication(actor Actor, internship *model.Internship) error {
	if err := RequireRole(actor, model.RoleEmployer); err != nil {
		return err
	}
	if internship.CompanyID != actor.UserID {
		return apperror.Forbidden("application belongs to another employer")
	}
	return nil
}

// MessageParties resolves who a message from the actor goes to, given the
// application it is attached to and that application's internship.
//
//   - the application's candidate sends to the internship's owning employer
//   - the owning employer sends to the candidate
//   - anyone else is denied
//
// Returning the pair from here keeps the relay rule in one place: the
// messaging service stores exactly what this function derives.
func MessageParties(actor Actor, app *model.Application, internship *model.Internship) (senderID, receiverID string, err error) {
	switch actor.Role {
	case model.RoleCandidate:
		if app.CandidateID != actor.UserID {
			return "", "", apperror.Forbidden("access denied")
		}
		return actor.UserID, internship.CompanyID, nil
	case model.RoleEmployer:
		if internship.CompanyID != actor.UserID {
			return "", "", apperror.Forbidden("access denied")
		}
		return actor.UserID, app.CandidateID, nil
	default:
		return "", "", apperror.Forbidden("access denied")
	}
}

// CanMarkRead allows only the message's receiver to mark it read.
func CanMarkRead(actor Actor, msg *model.Message) error {
	if msg.ReceiverID != actor.UserID {
		return apperror.Forbidden("only the receiver may mark a message read")
	}
	return nil
}
