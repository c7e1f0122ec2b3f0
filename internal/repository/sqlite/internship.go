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
	_ repository.InternshipRepository      = (*DB)(nil)
	_ repository.SavedInternshipRepository = (*DB)(nil)
)

const internshipColumns = `id, company_id, title, description, required_skills,
	location, stipend, duration, deadline, posted_at, created_at, updated_at`

func (db *DB) CreateInternship(ctx context.Context, internship *model.Internship) error {
	internship.ID = xid.New().String()
	now := time.Now()
	internship.CreatedAt = now
	internship.UpdatedAt = now
	if internship.PostedAt.IsZero() {
		internship.PostedAt = now
	}

	skills, err := encodeSkills(internship.RequiredSkills)
	if err != nil {
		return fmt.Errorf("sqlite: creating internship: %w", err)
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO internships (`+internshipColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		internship.ID, internship.CompanyID, internship.Title, internship.Description,
		skills, internship.Location, internship.Stipend, internship.Duration,
		internship.ApplicationDeadline, internship.PostedAt,
		internship.CreatedAt, internship.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating internship: %w", err)
	}
	return nil
}

func (db *DB) GetInternshipByID(ctx context.Context, id string) (*model.Internship, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+internshipColumns+` FROM internships WHERE id = ?`, id)

	in, err := scanInternship(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("internship", id)
		}
		return nil, fmt.Errorf("sqlite: getting internship %s: %w", id, err)
	}
	return in, nil
}

// ListInternships returns the catalog, newest postings first. The
// location filter runs in SQL; the skills filter runs in Go because the
// skill list lives in a JSON column.
func (db *DB) ListInternships(ctx context.Context, filter repository.InternshipFilter) ([]model.Internship, error) {
	query := `SELECT ` + internshipColumns + ` FROM internships`
	var args []any
	if filter.Location != "" {
		query += ` WHERE location = ?`
		args = append(args, filter.Location)
	}
	query += ` ORDER BY posted_at DESC`

	internships, err := db.queryInternships(ctx, query, args...)
	if err != nil {
		return nil, err
	}

	if len(filter.Skills) == 0 {
		return internships, nil
	}

	wanted := make(map[string]bool, len(filter.Skills))
	for _, s := range filter.Skills {
		wanted[s] = true
	}
	filtered := make([]model.Internship, 0, len(internships))
	for _, in := range internships {
		for _, s := range in.RequiredSkills {
			if wanted[s] {
				filtered = append(filtered, in)
				break
			}
		}
	}
	return filtered, nil
}

func (db *DB) ListInternshipsByCompany(ctx context.Context, companyID string) ([]model.Internship, error) {
	return db.queryInternships(ctx,
		`SELECT `+internshipColumns+` FROM internships
		 WHERE company_id = ? ORDER BY posted_at DESC`, companyID)
}

func (db *DB) queryInternships(ctx context.Context, query string, args ...any) ([]model.Internship, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing internships: %w", err)
	}
	defer rows.Close()

	var internships []model.Internship
	for rows.Next() {
		in, err := scanInternship(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning internship row: %w", err)
		}
		internships = append(internships, *in)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating internships: %w", err)
	}
	if internships == nil {
		internships = []model.Internship{}
	}
	return internships, nil
}

// scanInternship reads one row via the given scan function, shared
// between QueryRow and Rows iteration.
func scanInternship(scan func(dest ...any) error) (*model.Internship, error) {
	var (
		in       model.Internship
		skills   string
		deadline sql.NullTime
	)
	err := scan(
		&in.ID, &in.CompanyID, &in.Title, &in.Description, &skills,
		&in.Location, &in.Stipend, &in.Duration, &deadline, &in.PostedAt,
		&in.CreatedAt, &in.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if deadline.Valid {
		in.ApplicationDeadline = &deadline.Time
	}
	in.RequiredSkills, err = decodeSkills(skills)
	if err != nil {
		return nil, err
	}
	return &in, nil
}

// UpdateInternship rewrites the mutable fields. CompanyID and PostedAt are
// deliberately absent from the SET list; ownership and the posting date
// never change after creation.
func (db *DB) UpdateInternship(ctx context.Context, internship *model.Internship) error {
	skills, err := encodeSkills(internship.RequiredSkills)
	if err != nil {
		return fmt.Errorf("sqlite: updating internship: %w", err)
	}
	internship.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE internships
		 SET title = ?, description = ?, required_skills = ?, location = ?,
		     stipend = ?, duration = ?, deadline = ?, updated_at = ?
		 WHERE id = ?`,
		internship.Title, internship.Description, skills, internship.Location,
		internship.Stipend, internship.Duration, internship.ApplicationDeadline,
		internship.UpdatedAt, internship.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating internship %s: %w", internship.ID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("internship", internship.ID)
	}
	return nil
}

func (db *DB) DeleteInternship(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM internships WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting internship %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("internship", id)
	}
	return nil
}

// SaveInternship bookmarks an internship for a candidate. Saving the same
// internship twice hits the unique index and surfaces as a Conflict.
func (db *DB) SaveInternship(ctx context.Context, saved *model.SavedInternship) error {
	saved.ID = xid.New().String()
	saved.CreatedAt = time.Now()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO saved_internships (id, user_id, internship_id, created_at)
		 VALUES (?, ?, ?, ?)`,
		saved.ID, saved.UserID, saved.InternshipID, saved.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("internship already saved")
		}
		return fmt.Errorf("sqlite: saving internship: %w", err)
	}
	return nil
}

func (db *DB) UnsaveInternship(ctx context.Context, userID, internshipID string) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM saved_internships WHERE user_id = ? AND internship_id = ?`,
		userID, internshipID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: unsaving internship %s: %w", internshipID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("saved internship", internshipID)
	}
	return nil
}

func (db *DB) ListSavedByUser(ctx context.Context, userID string) ([]model.SavedInternship, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, user_id, internship_id, created_at
		 FROM saved_internships WHERE user_id = ? ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing saved internships: %w", err)
	}
	defer rows.Close()

	saved := []model.SavedInternship{}
	for rows.Next() {
		var s model.SavedInternship
		if err := rows.Scan(&s.ID, &s.UserID, &s.InternshipID, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning saved internship row: %w", err)
		}
		saved = append(saved, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating saved internships: %w", err)
	}
	return saved, nil
}
