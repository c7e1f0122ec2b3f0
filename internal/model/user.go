// Package model defines the data structures used throughout the application.
package model

import "time"

// Role is a closed enumeration of account types. The role is fixed at
// registration and never changes afterwards.
type Role string

const (
	RoleCandidate Role = "Candidate"
	RoleEmployer  Role = "Employer"
)

// Valid reports whether r is one of the known roles. Request bodies carry
// the role as a plain string, so we validate it at the boundary instead of
// trusting it deeper in the stack.
func (r Role) Valid() bool {
	return r == RoleCandidate || r == RoleEmployer
}

// User represents a registered account: either a candidate looking for an
// internship or an employer posting them.
//
// PasswordHash holds the bcrypt hash, never the plaintext. It is tagged
// json:"-" so it can never leak into an API response by accident.
type User struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	ProfileImage string    `json:"profileImage,omitempty"` // reference path into blob storage
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
