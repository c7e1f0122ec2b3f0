package model

import "time"

// ApplicationStatus is the state of a single application.
//
// Pending is the initial state; Approved and Rejected are set by the
// employer who owns the internship. Status updates overwrite the current
// value without restricting the transition, so an employer can flip a
// decision after making it.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

// Valid reports whether s is one of the known statuses.
func (s ApplicationStatus) Valid() bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// Application links one candidate to one internship. At most one
// application may exist per (candidate, internship) pair; the store
// enforces this with a unique index.
type Application struct {
	ID             string            `json:"id"`
	CandidateID    string            `json:"candidateId"`
	InternshipID   string            `json:"internshipId"`
	Status         ApplicationStatus `json:"status"`
	CoverLetter    string            `json:"coverLetter"`
	ResumeURL      string            `json:"resumeUrl,omitempty"`
	AdditionalInfo string            `json:"additionalInfo"`
	CreatedAt      time.Time         `json:"createdAt"`
	UpdatedAt      time.Time         `json:"updatedAt"`
}
