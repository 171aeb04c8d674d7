package meeting

import (
	"time"

	"jobnexus/internal/domain"
)

const (
	JoinOpensBefore = 30 * time.Minute
	JoinClosesAfter = 120 * time.Minute
)

type Outcome string

const (
	OutcomeNotFound      Outcome = "not_found"
	OutcomeCancelled     Outcome = "cancelled"
	OutcomeCompleted     Outcome = "completed"
	OutcomeLoginRequired Outcome = "login_required"
	OutcomeAccessDenied  Outcome = "access_denied"
	OutcomeNotStarted    Outcome = "not_started"
	OutcomeEnded         Outcome = "ended"
	OutcomeAdmitted      Outcome = "admitted"
)

type Role string

const (
	RoleInterviewer Role = "interviewer"
	RoleCandidate   Role = "candidate"
)

// Decision is the gate result. Schedule fields are only set once the
// requester is known to be a participant.
type Decision struct {
	Outcome     Outcome
	Role        Role
	DisplayName string
	ScheduledAt time.Time
	OpensAt     time.Time
	ClosesAt    time.Time
}

func (d Decision) Admitted() bool {
	return d.Outcome == OutcomeAdmitted
}

// Decide applies the access rules in order: existence, terminal status,
// authentication, membership, then the join window. The scheduled instant is
// read in now's location.
func Decide(meeting *domain.Event, identity *domain.Identity, now time.Time) Decision {
	if meeting == nil {
		return Decision{Outcome: OutcomeNotFound}
	}

	switch meeting.Status {
	case domain.MeetingCancelled:
		return Decision{Outcome: OutcomeCancelled}
	case domain.MeetingCompleted:
		return Decision{Outcome: OutcomeCompleted}
	}

	if identity == nil {
		return Decision{Outcome: OutcomeLoginRequired}
	}

	var d Decision
	switch identity.UserID {
	case meeting.HRUserID:
		d.Role = RoleInterviewer
		d.DisplayName = meeting.InterviewerName()
	case meeting.SeekerUserID:
		d.Role = RoleCandidate
		d.DisplayName = meeting.CandidateName()
	default:
		return Decision{Outcome: OutcomeAccessDenied}
	}

	scheduled, err := meeting.ScheduledAt(now.Location())
	if err != nil {
		return Decision{Outcome: OutcomeNotFound}
	}
	d.ScheduledAt = scheduled
	d.OpensAt = scheduled.Add(-JoinOpensBefore)
	d.ClosesAt = scheduled.Add(JoinClosesAfter)

	switch {
	case now.Before(d.OpensAt):
		d.Outcome = OutcomeNotStarted
	case now.After(d.ClosesAt):
		d.Outcome = OutcomeEnded
	default:
		d.Outcome = OutcomeAdmitted
	}
	return d
}
