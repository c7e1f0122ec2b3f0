package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/policy"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
)

// ApplicationService handles the application lifecycle: applying,
// listing, and employer status decisions.
type ApplicationService struct {
	applications repository.ApplicationRepository
	internships  repository.InternshipRepository
	logger       *slog.Logger
}

func NewApplicationService(
	applications repository.ApplicationRepository,
	internships repository.InternshipRepository,
	logger *slog.Logger,
) *ApplicationService {
	return &ApplicationService{
		applications: applications,
		internships:  internships,
		logger:       logger,
	}
}

// ApplyInput carries the candidate-supplied application fields.
type ApplyInput struct {
	InternshipID   string
	CoverLetter    string
	ResumeURL      string
	AdditionalInfo string
}

// Apply creates a Pending application for the acting candidate.
//
// The existence pre-check gives the common duplicate case a friendly
// message; the unique index in the store is what actually holds when two
// submissions race past it; the second insert comes back as a Conflict
// either way.
func (s *ApplicationService) Apply(ctx context.Context, actor policy.Actor, input ApplyInput) (*model.Application, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.InternshipID) == "" {
		return nil, apperror.ValidationFailed("internship_id", "internship ID is required")
	}

	if _, err := s.internships.GetInternshipByID(ctx, input.InternshipID); err != nil {
		return nil, err
	}

	exists, err := s.applications.ApplicationExists(ctx, actor.UserID, input.InternshipID)
	if err != nil {
		return nil, fmt.Errorf("checking for existing application: %w", err)
	}
	if exists {
		return nil, apperror.Conflict("you have already applied for this internship")
	}

	app := &model.Application{
		CandidateID:    actor.UserID,
		InternshipID:   input.InternshipID,
		CoverLetter:    input.CoverLetter,
		ResumeURL:      input.ResumeURL,
		AdditionalInfo: input.AdditionalInfo,
	}
	if err := s.applications.CreateApplication(ctx, app); err != nil {
		return nil, fmt.Errorf("creating application: %w", err)
	}

	s.logger.Info("application submitted",
		slog.String("id", app.ID),
		slog.String("candidateID", app.CandidateID),
		slog.String("internshipID", app.InternshipID),
	)
	return app, nil
}

// ListForCandidate returns the actor's own applications.
func (s *ApplicationService) ListForCandidate(ctx context.Context, actor policy.Actor) ([]model.Application, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}
	apps, err := s.applications.ListApplicationsByCandidate(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing candidate applications: %w", err)
	}
	return apps, nil
}

// ListForEmployer returns every application against any of the acting
// employer's internships.
func (s *ApplicationService) ListForEmployer(ctx context.Context, actor policy.Actor) ([]model.Application, error) {
	if err := policy.RequireRole(actor, model.RoleEmployer); err != nil {
		return nil, err
	}

	internships, err := s.internships.ListInternshipsByCompany(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing employer internships: %w", err)
	}

	ids := make([]string, len(internships))
	for i, in := range internships {
		ids[i] = in.ID
	}

	apps, err := s.applications.ListApplicationsByInternships(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("listing employer applications: %w", err)
	}
	return apps, nil
}

// UpdateStatus records the employer's decision on an application. The
// actor must own the internship the application targets.
//
// The status value is validated, but the transition is not: Approved can
// become Rejected and either can go back to Pending. Restricting that
// would change decisions employers currently rely on being able to redo.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor policy.Actor, id string, status model.ApplicationStatus) (*model.Application, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "application ID is required")
	}
	if !status.Valid() {
		return nil, apperror.ValidationFailed("status", "status must be Pending, Approved, or Rejected")
	}

	app, err := s.applications.GetApplicationByID(ctx, id)
	if err != nil {
		return nil, err
	}

	internship, err := s.internships.GetInternshipByID(ctx, app.InternshipID)
	if err != nil {
		return nil, err
	}
	if err := policy.CanModerateApplication(actor, internship); err != nil {
		return nil, err
	}

	if err := s.applications.UpdateApplicationStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("updating application %s: %w", id, err)
	}
	app.Status = status

	s.logger.Info("application status updated",
		slog.String("id", id),
		slog.String("status", string(status)),
	)
	return app, nil
}
