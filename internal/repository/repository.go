// Package repository declares the persistence interfaces the services
// depend on. Services receive these interfaces (not the concrete sqlite
// types), so tests can inject in-memory mocks and the storage backend can
// be swapped without touching business logic.
//
// Method names carry the entity (CreateUser, not Create) because a single
// sqlite.DB implements every interface here; unqualified names would
// collide.
package repository

import (
	"context"

	"github.com/Priyanshu055/intern-match-backend/internal/model"
)

// InternshipFilter narrows a catalog listing. Zero values mean "no
// constraint". Skills matches internships requiring ANY of the given
// skills (set membership, not all-of).
type InternshipFilter struct {
	Location string
	Skills   []string
}

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	SetProfileImage(ctx context.Context, id, imageRef string) error
}

// CandidateProfileRepository manages candidate profiles keyed by user ID.
// Upsert creates the profile on first write; Get returns NotFound for
// users who have never written one.
type CandidateProfileRepository interface {
	GetCandidateProfile(ctx context.Context, userID string) (*model.CandidateProfile, error)
	UpsertCandidateProfile(ctx context.Context, profile *model.CandidateProfile) error
}

type EmployerProfileRepository interface {
	GetEmployerProfile(ctx context.Context, userID string) (*model.EmployerProfile, error)
	UpsertEmployerProfile(ctx context.Context, profile *model.EmployerProfile) error
}

type InternshipRepository interface {
	CreateInternship(ctx context.Context, internship *model.Internship) error
	GetInternshipByID(ctx context.Context, id string) (*model.Internship, error)
	ListInternships(ctx context.Context, filter InternshipFilter) ([]model.Internship, error)
	ListInternshipsByCompany(ctx context.Context, companyID string) ([]model.Internship, error)
	UpdateInternship(ctx context.Context, internship *model.Internship) error
	DeleteInternship(ctx context.Context, id string) error
}

// ApplicationRepository persists applications. CreateApplication must fail
// with a Conflict error when an application for the same (candidate,
// internship) pair already exists; the unique index makes this hold even
// when two requests race past ApplicationExists.
type ApplicationRepository interface {
	CreateApplication(ctx context.Context, app *model.Application) error
	GetApplicationByID(ctx context.Context, id string) (*model.Application, error)
	ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]model.Application, error)
	ListApplicationsByInternships(ctx context.Context, internshipIDs []string) ([]model.Application, error)
	ApplicationExists(ctx context.Context, candidateID, internshipID string) (bool, error)
	UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) error
}

type SavedInternshipRepository interface {
	SaveInternship(ctx context.Context, saved *model.SavedInternship) error
	UnsaveInternship(ctx context.Context, userID, internshipID string) error
	ListSavedByUser(ctx context.Context, userID string) ([]model.SavedInternship, error)
}

// MessageRepository persists messages. ListMessagesByParticipant returns
// every message the user sent or received, newest first.
type MessageRepository interface {
	CreateMessage(ctx context.Context, msg *model.Message) error
	GetMessageByID(ctx context.Context, id string) (*model.Message, error)
	ListMessagesByParticipant(ctx context.Context, userID string) ([]model.Message, error)
	MarkMessageRead(ctx context.Context, id string) error
}
