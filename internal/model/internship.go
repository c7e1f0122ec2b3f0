package model

import "time"

// Internship is a position posted by an employer. CompanyID is the owning
// employer's user ID; every ownership check in the system compares
// against this field.
type Internship struct {
	ID                  string     `json:"id"`
	CompanyID           string     `json:"companyId"`
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	RequiredSkills      []string   `json:"requiredSkills"`
	Location            string     `json:"location"`
	Stipend             string     `json:"stipend"`
	Duration            string     `json:"duration"`
	ApplicationDeadline *time.Time `json:"applicationDeadline,omitempty"`
	PostedAt            time.Time  `json:"postedAt"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

// SavedInternship is a candidate's bookmark of an internship. It carries
// no status; saving and applying are independent actions.
type SavedInternship struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	InternshipID string    `json:"internshipId"`
	CreatedAt    time.Time `json:"createdAt"`
}
