package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
)

var (
	_ repository.CandidateProfileRepository = (*DB)(nil)
	_ repository.EmployerProfileRepository  = (*DB)(nil)
)

func (db *DB) GetCandidateProfile(ctx context.Context, userID string) (*model.CandidateProfile, error) {
	var (
		p   model.CandidateProfile
		raw string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, skills, education, experience, resume_url, created_at, updated_at
		 FROM candidate_profiles WHERE user_id = ?`, userID,
	).Scan(&p.ID, &p.UserID, &raw, &p.Education, &p.Experience, &p.ResumeURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("candidate profile", userID)
		}
		return nil, fmt.Errorf("sqlite: getting candidate profile for %s: %w", userID, err)
	}

	p.Skills, err = decodeSkills(raw)
	if err != nil {
		return nil, fmt.Errorf("sqlite: candidate profile %s: %w", p.ID, err)
	}
	return &p, nil
}

// UpsertCandidateProfile inserts the profile on first write, updates it
// afterwards. The user_id column is UNIQUE, so ON CONFLICT does the
// branching, so there is no read-then-write race between concurrent first
// writes.
func (db *DB) UpsertCandidateProfile(ctx context.Context, profile *model.CandidateProfile) error {
	skills, err := encodeSkills(profile.Skills)
	if err != nil {
		return fmt.Errorf("sqlite: upserting candidate profile: %w", err)
	}

	now := time.Now()
	newID := xid.New().String()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO candidate_profiles (id, user_id, skills, education, experience, resume_url, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			skills = excluded.skills,
			education = excluded.education,
			experience = excluded.experience,
			resume_url = excluded.resume_url,
			updated_at = excluded.updated_at`,
		newID, profile.UserID, skills, profile.Education, profile.Experience,
		profile.ResumeURL, now, now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting candidate profile for %s: %w", profile.UserID, err)
	}

	// Read the row back so the caller sees the canonical ID and
	// timestamps regardless of which branch ran.
	stored, err := db.GetCandidateProfile(ctx, profile.UserID)
	if err != nil {
		return fmt.Errorf("sqlite: reading back candidate profile: %w", err)
	}
	*profile = *stored
	return nil
}

func (db *DB) GetEmployerProfile(ctx context.Context, userID string) (*model.EmployerProfile, error) {
	var p model.EmployerProfile
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, company, industry, website, description, created_at, updated_at
		 FROM employer_profiles WHERE user_id = ?`, userID,
	).Scan(&p.ID, &p.UserID, &p.Company, &p.Industry, &p.Website, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("employer profile", userID)
		}
		return nil, fmt.Errorf("sqlite: getting employer profile for %s: %w", userID, err)
	}
	return &p, nil
}

func (db *DB) UpsertEmployerProfile(ctx context.Context, profile *model.EmployerProfile) error {
	now := time.Now()
	newID := xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO employer_profiles (id, user_id, company, industry, website, description, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			company = excluded.company,
			industry = excluded.industry,
			website = excluded.website,
			description = excluded.description,
			updated_at = excluded.updated_at`,
		newID, profile.UserID, profile.Company, profile.Industry, profile.Website,
		profile.Description, now, now,
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting employer profile for %s: %w", profile.UserID, err)
	}

	stored, err := db.GetEmployerProfile(ctx, profile.UserID)
	if err != nil {
		return fmt.Errorf("sqlite: reading back employer profile: %w", err)
	}
	*profile = *stored
	return nil
}
