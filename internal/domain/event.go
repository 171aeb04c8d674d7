package domain

import (
	"fmt"
	"strings"
	"time"
)

type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingCompleted MeetingStatus = "completed"
)

// IsTerminal reports whether the status permanently blocks entry.
func (s MeetingStatus) IsTerminal() bool {
	return s == MeetingCancelled || s == MeetingCompleted
}

const (
	eventDateLayout = "2006-01-02"
	eventTimeLayout = "15:04:05"
)

// Event is a scheduled interview row. EventDate and EventTime are kept in
// their column text form and combined by ScheduledAt.
type Event struct {
	ID              int64         `json:"id" db:"id"`
	MeetingToken    string        `json:"meeting_token" db:"meeting_token"`
	ApplicationID   *int64        `json:"application_id,omitempty" db:"application_id"`
	HRUserID        int64         `json:"hr_user_id" db:"hr_user_id"`
	SeekerUserID    int64         `json:"seeker_user_id" db:"seeker_user_id"`
	Title           string        `json:"title" db:"title"`
	EventDate       string        `json:"event_date" db:"event_date"`
	EventTime       string        `json:"event_time" db:"event_time"`
	DurationMinutes int           `json:"duration_minutes" db:"duration_minutes"`
	Status          MeetingStatus `json:"status" db:"status"`

	JobTitle        *string `json:"job_title,omitempty" db:"job_title"`
	CompanyName     *string `json:"company_name,omitempty" db:"company_name"`
	CompanyLogo     *string `json:"company_logo,omitempty" db:"company_logo"`
	SeekerFirstName *string `json:"seeker_first_name,omitempty" db:"seeker_first_name"`
	SeekerLastName  *string `json:"seeker_last_name,omitempty" db:"seeker_last_name"`
	SeekerEmail     *string `json:"seeker_email,omitempty" db:"seeker_email"`
}

// ScheduledAt combines the date and time columns into one instant in loc.
func (e *Event) ScheduledAt(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	clock := strings.TrimSpace(e.EventTime)
	if len(clock) == len("15:04") {
		clock += ":00"
	}
	t, err := time.ParseInLocation(eventDateLayout+" "+eventTimeLayout, strings.TrimSpace(e.EventDate)+" "+clock, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule %q %q: %w", e.EventDate, e.EventTime, err)
	}
	return t, nil
}

// CandidateName is the trimmed "first last" name, or "Candidate".
func (e *Event) CandidateName() string {
	name := strings.TrimSpace(deref(e.SeekerFirstName) + " " + deref(e.SeekerLastName))
	if name == "" {
		return "Candidate"
	}
	return name
}

// InterviewerName is the company name, or "Interviewer".
func (e *Event) InterviewerName() string {
	if name := strings.TrimSpace(deref(e.CompanyName)); name != "" {
		return name
	}
	return "Interviewer"
}

func (e *Event) PositionTitle() string {
	if title := deref(e.JobTitle); title != "" {
		return title
	}
	return "Interview"
}

type ScheduleInterviewInput struct {
	ApplicationID   int64  `json:"application_id" form:"application_id" validate:"required,gt=0"`
	EventDate       string `json:"event_date" form:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime       string `json:"event_time" form:"event_time" validate:"required,datetime=15:04"`
	DurationMinutes int    `json:"duration_minutes" form:"duration_minutes" validate:"omitempty,min=15,max=480"`
}

type RescheduleInterviewInput struct {
	EventDate string `json:"event_date" form:"event_date" validate:"required,datetime=2006-01-02"`
	EventTime string `json:"event_time" form:"event_time" validate:"required,datetime=15:04"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
