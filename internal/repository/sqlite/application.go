package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/Priyanshu055/intern-match-backend/internal/apperror"
	"github.com/Priyanshu055/intern-match-backend/internal/model"
	"github.com/Priyanshu055/intern-match-backend/internal/repository"
)

var _ repository.ApplicationRepository = (*DB)(nil)

const applicationColumns = `id, candidate_id, internship_id, status,
	cover_letter, resume_url, additional_info, created_at, updated_at`

// CreateApplication inserts a new application in the Pending state. The
// unique index on (candidate_id, internship_id) turns a racing duplicate
// into a Conflict here even when the service's pre-check passed.
func (db *DB) CreateApplication(ctx context.Context, app *model.Application) error {
	app.ID = xid.New().String()
	app.Status = model.StatusPending
	now := time.Now()
	app.CreatedAt = now
	app.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO applications (`+applicationColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		app.ID, app.CandidateID, app.InternshipID, string(app.Status),
		app.CoverLetter, app.ResumeURL, app.AdditionalInfo,
		app.CreatedAt, app.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("you have already applied for this internship")
		}
		return fmt.Errorf("sqlite: creating application: %w", err)
	}
	return nil
}

func (db *DB) GetApplicationByID(ctx context.Context, id string) (*model.Application, error) {
	row := db.conn.QueryRowContext(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = ?`, id)

	app, err := scanApplication(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("application", id)
		}
		return nil, fmt.Errorf("sqlite: getting application %s: %w", id, err)
	}
	return app, nil
}

func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID string) ([]model.Application, error) {
	return db.queryApplications(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE candidate_id = ? ORDER BY created_at DESC`, candidateID)
}

// ListApplicationsByInternships returns applications against any of the
// given internships: the employer inbox view. An empty ID list returns
// an empty slice without touching the database.
func (db *DB) ListApplicationsByInternships(ctx context.Context, internshipIDs []string) ([]model.Application, error) {
	if len(internshipIDs) == 0 {
		return []model.Application{}, nil
	}

	placeholders := strings.Repeat("?,", len(internshipIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(internshipIDs))
	for i, id := range internshipIDs {
		args[i] = id
	}

	return db.queryApplications(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE internship_id IN (`+placeholders+`) ORDER BY created_at DESC`,
		args...)
}

func (db *DB) queryApplications(ctx context.Context, query string, args ...any) ([]model.Application, error) {
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing applications: %w", err)
	}
	defer rows.Close()

	apps := []model.Application{}
	for rows.Next() {
		app, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning application row: %w", err)
		}
		apps = append(apps, *app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating applications: %w", err)
	}
	return apps, nil
}

func scanApplication(scan func(dest ...any) error) (*model.Application, error) {
	var (
		app    model.Application
		status string
	)
	err := scan(
		&app.ID, &app.CandidateID, &app.InternshipID, &status,
		&app.CoverLetter, &app.ResumeURL, &app.AdditionalInfo,
		&app.CreatedAt, &app.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	app.Status = model.ApplicationStatus(status)
	return &app, nil
}

func (db *DB) ApplicationExists(ctx context.Context, candidateID, internshipID string) (bool, error) {
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM applications WHERE candidate_id = ? AND internship_id = ?`,
		candidateID, internshipID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("sqlite: checking application existence: %w", err)
	}
	return count > 0, nil
}

func (db *DB) UpdateApplicationStatus(ctx context.Context, id string, status model.ApplicationStatus) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE applications SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating application %s status: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("application", id)
	}
	return nil
}
