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

// compile-time check that *DB implements repository.UserRepository
var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new user. The email column is UNIQUE, so a second
// registration with the same address surfaces as a Conflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, role, name, email, password_hash, profile_image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, string(user.Role), user.Name, user.Email,
		user.PasswordHash, user.ProfileImage, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Conflict("an account with this email already exists")
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}
	return nil
}

func (db *DB) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	return db.getUser(ctx, `WHERE id = ?`, id)
}

func (db *DB) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return db.getUser(ctx, `WHERE email = ?`, email)
}

func (db *DB) getUser(ctx context.Context, where string, arg any) (*model.User, error) {
	var (
		u    model.User
		role string
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, role, name, email, password_hash, profile_image, created_at, updated_at
		 FROM users `+where, arg,
	).Scan(&u.ID, &role, &u.Name, &u.Email, &u.PasswordHash, &u.ProfileImage, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", fmt.Sprint(arg))
		}
		return nil, fmt.Errorf("sqlite: getting user: %w", err)
	}
	u.Role = model.Role(role)
	return &u, nil
}

// SetProfileImage updates only the profile image reference.
func (db *DB) SetProfileImage(ctx context.Context, id, imageRef string) error {
	result, err := db.conn.ExecContext(ctx,
		`UPDATE users SET profile_image = ?, updated_at = ? WHERE id = ?`,
		imageRef, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("sqlite: setting profile image for user %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("user", id)
	}
	return nil
}
