package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/policy"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
	"github.com/Priyanshu055/intern-match-backend/internal/resume"
	"github.com/Priyanshu055/intern-match-backend/internal/storage"
)

// ProfileService handles candidate and employer profiles, plus the two
// upload flows (resume, profile image).
type ProfileService struct {
	users      repository.UserRepository
	candidates repository.CandidateProfileRepository
	employers  repository.EmployerProfileRepository
	blobs      storage.BlobStore
	logger     *slog.Logger
}

func NewProfileService(
	users repository.UserRepository,
	candidates repository.CandidateProfileRepository,
	employers repository.EmployerProfileRepository,
	blobs storage.BlobStore,
	logger *slog.Logger,
) *ProfileService {
	return &ProfileService{
		users:      users,
		candidates: candidates,
		employers:  employers,
		blobs:      blobs,
		logger:     logger,
	}
}

// CandidateProfileInput carries a partial candidate profile update. Nil
// or empty fields keep their stored values.
type CandidateProfileInput struct {
	Skills     []string
	Education  string
	Experience string
}

// EmployerProfileInput carries a partial employer profile update.
type EmployerProfileInput struct {
	Company     string
	Industry    string
	Website     string
	Description string
}

// GetCandidate returns the actor's candidate profile, or NotFound if it
// was never created.
func (s *ProfileService) GetCandidate(ctx context.Context, actor policy.Actor) (*model.CandidateProfile, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}
	return s.candidates.GetCandidateProfile(ctx, actor.UserID)
}

func (s *ProfileService) GetEmployer(ctx context.Context, actor policy.Actor) (*model.EmployerProfile, error) {
	if err := policy.RequireRole(actor, model.RoleEmployer); err != nil {
		return nil, err
	}
	return s.employers.GetEmployerProfile(ctx, actor.UserID)
}

// UpsertCandidate creates the profile on first write and merges partial
// updates afterwards: fields the client omits keep their prior values.
func (s *ProfileService) UpsertCandidate(ctx context.Context, actor policy.Actor, input CandidateProfileInput) (*model.CandidateProfile, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}

	profile, err := s.loadOrBlankCandidate(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if input.Skills != nil {
		profile.Skills = dedupeSkills(input.Skills)
	}
	if input.Education != "" {
		profile.Education = input.Education
	}
	if input.Experience != "" {
		profile.Experience = input.Experience
	}

	if err := s.candidates.UpsertCandidateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("upserting candidate profile: %w", err)
	}

	s.logger.Info("candidate profile saved", slog.String("userID", actor.UserID))
	return profile, nil
}

func (s *ProfileService) UpsertEmployer(ctx context.Context, actor policy.Actor, input EmployerProfileInput) (*model.EmployerProfile, error) {
	if err := policy.RequireRole(actor, model.RoleEmployer); err != nil {
		return nil, err
	}

	profile, err := s.loadOrBlankEmployer(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}

	if input.Company != "" {
		profile.Company = input.Company
	}
	if input.Industry != "" {
		profile.Industry = input.Industry
	}
	if input.Website != "" {
		profile.Website = input.Website
	}
	if input.Description != "" {
		profile.Description = input.Description
	}

	if err := s.employers.UpsertEmployerProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("upserting employer profile: %w", err)
	}

	s.logger.Info("employer profile saved", slog.String("userID", actor.UserID))
	return profile, nil
}

// ResumeUpload is the result of a resume upload: where the file landed
// and, for PDFs, which known skills its text mentions.
type ResumeUpload struct {
	ResumeURL       string
	SuggestedSkills []string
}

// UploadResume stores the file, records the reference on the candidate's
// profile (creating the profile if this is their first interaction), and
// suggests skills found in the document text.
//
// Suggestion is best effort: extraction only works for PDFs, and a file
// we can't parse simply yields no suggestions. The upload itself never
// fails because of the parser.
func (s *ProfileService) UploadResume(ctx context.Context, actor policy.Actor, filename string, data []byte) (*ResumeUpload, error) {
	if err := policy.RequireRole(actor, model.RoleCandidate); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, apperror.ValidationFailed("resume", "no file uploaded")
	}

	ref, err := s.blobs.Save(storage.KindResume, filename, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("storing resume: %w", err)
	}

	profile, err := s.loadOrBlankCandidate(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	profile.ResumeURL = ref
	if err := s.candidates.UpsertCandidateProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("recording resume reference: %w", err)
	}

	result := &ResumeUpload{ResumeURL: ref}
	if strings.EqualFold(filepath.Ext(filename), ".pdf") {
		if text, err := resume.ExtractText(data); err == nil {
			result.SuggestedSkills = resume.SuggestSkills(text)
		} else {
			s.logger.Warn("resume text extraction failed",
				slog.String("userID", actor.UserID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.logger.Info("resume uploaded",
		slog.String("userID", actor.UserID),
		slog.String("ref", ref),
	)
	return result, nil
}

// UploadProfileImage stores the image and records the reference on the
// user record. Both roles may have a profile image.
func (s *ProfileService) UploadProfileImage(ctx context.Context, actor policy.Actor, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperror.ValidationFailed("profileImage", "no file uploaded")
	}

	ref, err := s.blobs.Save(storage.KindImage, filename, int64(len(data)), bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("storing profile image: %w", err)
	}

	if err := s.users.SetProfileImage(ctx, actor.UserID, ref); err != nil {
		return "", fmt.Errorf("recording profile image: %w", err)
	}

	s.logger.Info("profile image uploaded", slog.String("userID", actor.UserID))
	return ref, nil
}

// loadOrBlankCandidate fetches the stored profile or starts a blank one;
// profiles are created lazily on first write.
func (s *ProfileService) loadOrBlankCandidate(ctx context.Context, userID string) (*model.CandidateProfile, error) {
	profile, err := s.candidates.GetCandidateProfile(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return &model.CandidateProfile{UserID: userID, Skills: []string{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading candidate profile: %w", err)
	}
	return profile, nil
}

func (s *ProfileService) loadOrBlankEmployer(ctx context.Context, userID string) (*model.EmployerProfile, error) {
	profile, err := s.employers.GetEmployerProfile(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return &model.EmployerProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading employer profile: %w", err)
	}
	return profile, nil
}

// dedupeSkills trims whitespace and drops duplicates while preserving
// first-seen order. Duplicate skills are meaningless to the matcher but
// would look broken in the UI.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
