package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/match"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/policy"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
)

const MaxTitleLength = 150

// InternshipService handles the internship catalog: listing, posting,
// recommendations, and bookmarks.
type InternshipService struct {
	internships repository.InternshipRepository
	saved       repository.SavedInternshipRepository
	candidates  repository.CandidateProfileRepository
	logger      *slog.Logger
}

func NewInternshipService(
	internships repository.InternshipRepository,
	saved repository.SavedInternshipRepository,
	candidates repository.CandidateProfileRepository,
	logger *slog.Logger,
) *InternshipService {
	return &InternshipService{
		internships: internships,
		saved:       saved,
		candidates:  candidates,
		logger:      logger,
	}
}

// InternshipInput carries the client-supplied fields for creating or
// updating a posting. CompanyID and PostedAt never come from the client.
type InternshipInput struct {
	Title               string
	Description         string
	RequiredSkills      []string
	Location            string
	Stipend             string
	Duration            string
	ApplicationDeadline *time.Time
}

// List returns the public catalog, optionally filtered by location and
// skill membership. No authentication required.
func (s *InternshipService) List(ctx context.Context, filter repository.InternshipFilter) ([]model.Internship, error) {
	internships, err := s.internships.ListInternships(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing internships: %w", err)
	}
	return internships, nil
}

func (s *InternshipService) Get(ctx context.Context, id string) (*model.Internship, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperror.ValidationFailed("id", "internship ID is required")
	}
	return s.internships.GetInternshipByID(ctx, id)
}

// Recommend returns the whole catalog scored against the candidate's
// skills, best match first.
//
// A candidate without a profile is not an error: scoring proceeds with an
// empty skill set, every score is 0, and the result is the catalog in its
// stored order.
func (s *InternshipService) Recommend(ctx context.Context, actor policy.Actor) ([]match.Recommendation, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}

	var skills []string
	profile, err := s.candidates.GetCandidateProfile(ctx, actor.UserID)
	switch {
	case err == nil:
		skills = profile.Skills
	case errors.Is(err, apperror.ErrNotFound):
		// no profile yet, recommend with zero skills
	default:
		return nil, fmt.Errorf("loading candidate profile: %w", err)
	}

	catalog, err := s.internships.ListInternships(ctx, repository.InternshipFilter{})
	if err != nil {
		return nil, fmt.Errorf("listing internships: %w", err)
	}

	return match.Rank(skills, catalog), nil
}

// ListByEmployer returns the actor's own postings.
func (s *InternshipService) ListByEmployer(ctx context.Context, actor policy.Actor) ([]model.Internship, error) {
	if err := policy.RequireRole(actor, model.RoleEmployer); err != nil {
		return nil, err
	}
	internships, err := s.internships.ListInternshipsByCompany(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing employer internships: %w", err)
	}
	return internships, nil
}

// Create posts a new internship owned by the acting employer.
func (s *InternshipService) Create(ctx context.Context, actor policy.Actor, input InternshipInput) (*model.Internship, error) {
	if err := policy.RequireRole(actor, model.RoleEmployer); err != nil {
		return nil, err
	}

	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(input.Title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperror.ValidationFailed("description", "description is required")
	}

	internship := &model.Internship{
		CompanyID:           actor.UserID,
		Title:               input.Title,
		Description:         input.Description,
		RequiredSkills:      input.RequiredSkills,
		Location:            input.Location,
		Stipend:             input.Stipend,
		Duration:            input.Duration,
		ApplicationDeadline: input.ApplicationDeadline,
	}
	if err := s.internships.CreateInternship(ctx, internship); err != nil {
		s.logger.Error("failed to create internship",
			slog.String("companyID", actor.UserID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating internship: %w", err)
	}

	s.logger.Info("internship posted",
		slog.String("id", internship.ID),
		slog.String("companyID", internship.CompanyID),
	)
	return internship, nil
}

// Update edits a posting. Ownership is checked against the stored record,
// so an employer can never touch another company's internship. Empty
// fields keep their prior values; a non-nil skill list replaces the old
// one wholesale.
func (s *InternshipService) Update(ctx context.Context, actor policy.Actor, id string, input InternshipInput) (*model.Internship, error) {
	internship, err := s.internships.GetInternshipByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.CanManageInternship(actor, internship); err != nil {
		return nil, err
	}

	if title := strings.TrimSpace(input.Title); title != "" {
		if len(title) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
		}
		internship.Title = title
	}
	if input.Description != "" {
		internship.Description = input.Description
	}
	if input.RequiredSkills != nil {
		internship.RequiredSkills = input.RequiredSkills
	}
	if input.Location != "" {
		internship.Location = input.Location
	}
	if input.Stipend != "" {
		internship.Stipend = input.Stipend
	}
	if input.Duration != "" {
		internship.Duration = input.Duration
	}
	if input.ApplicationDeadline != nil {
		internship.ApplicationDeadline = input.ApplicationDeadline
	}

	if err := s.internships.UpdateInternship(ctx, internship); err != nil {
		return nil, fmt.Errorf("updating internship %s: %w", id, err)
	}

	s.logger.Info("internship updated", slog.String("id", id))
	return internship, nil
}

// Delete removes a posting. Owner only.
func (s *InternshipService) Delete(ctx context.Context, actor policy.Actor, id string) error {
	internship, err := s.internships.GetInternshipByID(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.CanManageInternship(actor, internship); err != nil {
		return err
	}

	if err := s.internships.DeleteInternship(ctx, id); err != nil {
		return fmt.Errorf("deleting internship %s: %w", id, err)
	}

	s.logger.Info("internship deleted", slog.String("id", id))
	return nil
}

// Save bookmarks an internship for the acting candidate. Saving twice is
// a Conflict.
func (s *InternshipService) Save(ctx context.Context, actor policy.Actor, internshipID string) (*model.SavedInternship, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}
	if strings.TrimSpace(internshipID) == "" {
		return nil, apperror.ValidationFailed("internship_id", "internship ID is required")
	}

	// Confirm the internship exists so bookmarks can't point nowhere
	// from the start. (They can still dangle later if the posting is
	// deleted; ListSaved filters those out.)
	if _, err := s.internships.GetInternshipByID(ctx, internshipID); err != nil {
		return nil, err
	}

	saved := &model.SavedInternship{
		UserID:       actor.UserID,
		InternshipID: internshipID,
	}
	if err := s.saved.SaveInternship(ctx, saved); err != nil {
		return nil, fmt.Errorf("saving internship %s: %w", internshipID, err)
	}
	return saved, nil
}

// Unsave removes a bookmark. Unsaving something never saved is NotFound.
func (s *InternshipService) Unsave(ctx context.Context, actor policy.Actor, internshipID string) error {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return err
	}
	if err := s.saved.UnsaveInternship(ctx, actor.UserID, internshipID); err != nil {
		return fmt.Errorf("unsaving internship %s: %w", internshipID, err)
	}
	return nil
}

// ListSaved returns the internships the candidate has bookmarked.
// Bookmarks whose internship has since been deleted are silently dropped.
func (s *InternshipService) ListSaved(ctx context.Context, actor policy.Actor) ([]model.Internship, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}

	bookmarks, err := s.saved.ListSavedByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("listing saved internships: %w", err)
	}

	internships := make([]model.Internship, 0, len(bookmarks))
	for _, b := range bookmarks {
		internship, err := s.internships.GetInternshipByID(ctx, b.InternshipID)
		if errors.Is(err, apperror.ErrNotFound) {
			continue // posting deleted after it was saved
		}
		if err != nil {
			return nil, fmt.Errorf("loading saved internship %s: %w", b.InternshipID, err)
		}
		internships = append(internships, *internship)
	}
	return internships, nil
}
