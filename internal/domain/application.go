package domain

import "time"

type ApplicationStatus string

const (
	StatusApplied     ApplicationStatus = "applied"
	StatusViewed      ApplicationStatus = "viewed"
	StatusShortlisted ApplicationStatus = "shortlisted"
	StatusInterview   ApplicationStatus = "interview"
	StatusOffered     ApplicationStatus = "offered"
	StatusRejected    ApplicationStatus = "rejected"
	StatusHired       ApplicationStatus = "hired"
	StatusWithdrawn   ApplicationStatus = "withdrawn"
)

// Application carries the joined job and seeker fields the HR views need.
type Application struct {
	ID          int64             `json:"id" db:"id"`
	JobID       int64             `json:"job_id" db:"job_id"`
	SeekerID    int64             `json:"seeker_id" db:"seeker_id"`
	Status      ApplicationStatus `json:"status" db:"status"`
	StatusNotes *string           `json:"status_notes,omitempty" db:"status_notes"`
	Rating      *int              `json:"rating,omitempty" db:"rating"`
	AppliedAt   time.Time         `json:"applied_at" db:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at" db:"updated_at"`

	JobTitle    string  `json:"job_title" db:"job_title"`
	PostedBy    int64   `json:"posted_by" db:"posted_by"`
	CompanyName *string `json:"company_name,omitempty" db:"company_name"`
	SeekerName  *string `json:"seeker_name,omitempty" db:"seeker_name"`
	SeekerEmail string  `json:"seeker_email" db:"seeker_email"`
}

// Job is the part of a job posting an application needs.
type Job struct {
	ID       int64  `json:"id" db:"id"`
	PostedBy int64  `json:"posted_by" db:"posted_by"`
	Title    string `json:"title" db:"title"`
}

type UpdateApplicationStatusInput struct {
	Status string `json:"status" form:"status" validate:"required,oneof=applied viewed shortlisted interview offered rejected hired withdrawn"`
	Notes  string `json:"notes" form:"notes" validate:"max=2000"`
}

type UpdateRatingInput struct {
	Rating int `json:"rating" form:"rating" validate:"min=1,max=5"`
}
