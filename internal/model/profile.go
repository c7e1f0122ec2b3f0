package model

import "time"

// CandidateProfile holds the job-seeking side of a user's data. It is
// created lazily on the first profile write or resume upload, so a
// candidate may exist without one; callers must treat a missing profile
// as "no skills recorded".
type CandidateProfile struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Skills     []string  `json:"skills"`
	Education  string    `json:"education"`
	Experience string    `json:"experience"`
	ResumeURL  string    `json:"resumeUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EmployerProfile holds the organisation details for an employer account.
// Same lazy-creation and partial-update semantics as CandidateProfile.
type EmployerProfile struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Company     string    `json:"company"`
	Industry    string    `json:"industry"`
	Website     string    `json:"website"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
