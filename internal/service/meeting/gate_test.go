package meeting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jobnexus/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleMeeting() *domain.Event {
	return &domain.Event{
		MeetingToken:    "tok",
		HRUserID:        10,
		SeekerUserID:    20,
		EventDate:       "2025-06-01",
		EventTime:       "14:00:00",
		DurationMinutes: 45,
		Status:          domain.MeetingScheduled,
		CompanyName:     strPtr("Acme Corp"),
		SeekerFirstName: strPtr("Maria"),
		SeekerLastName:  strPtr("Santos"),
	}
}

var (
	scheduled = time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)
	hr        = &domain.Identity{UserID: 10, Role: domain.RoleHR}
	seeker    = &domain.Identity{UserID: 20, Role: domain.RoleSeeker}
	stranger  = &domain.Identity{UserID: 30, Role: domain.RoleSeeker}
)

func TestDecide_Scenarios(t *testing.T) {
	t.Run("cancelled regardless of identity or time", func(t *testing.T) {
		m := sampleMeeting()
		m.Status = domain.MeetingCancelled
		for _, id := range []*domain.Identity{nil, hr, stranger} {
			d := Decide(m, id, scheduled)
			assert.Equal(t, OutcomeCancelled, d.Outcome)
		}
	})

	t.Run("stranger denied inside the window", func(t *testing.T) {
		d := Decide(sampleMeeting(), stranger, scheduled.Add(5*time.Minute))
		assert.Equal(t, OutcomeAccessDenied, d.Outcome)
		assert.True(t, d.ScheduledAt.IsZero())
	})

	t.Run("hr forty minutes early is not started", func(t *testing.T) {
		d := Decide(sampleMeeting(), hr, scheduled.Add(-40*time.Minute))
		assert.Equal(t, OutcomeNotStarted, d.Outcome)
		assert.Equal(t, scheduled, d.ScheduledAt)
	})

	t.Run("seeker ten minutes in is admitted as candidate", func(t *testing.T) {
		d := Decide(sampleMeeting(), seeker, scheduled.Add(10*time.Minute))
		assert.True(t, d.Admitted())
		assert.Equal(t, RoleCandidate, d.Role)
		assert.Equal(t, "Maria Santos", d.DisplayName)
	})

	t.Run("hr two and a half hours later has ended", func(t *testing.T) {
		d := Decide(sampleMeeting(), hr, scheduled.Add(150*time.Minute))
		assert.Equal(t, OutcomeEnded, d.Outcome)
	})
}

func TestDecide_Precedence(t *testing.T) {
	t.Run("nil meeting is not found", func(t *testing.T) {
		assert.Equal(t, OutcomeNotFound, Decide(nil, hr, scheduled).Outcome)
	})

	t.Run("completed beats login", func(t *testing.T) {
		m := sampleMeeting()
		m.Status = domain.MeetingCompleted
		assert.Equal(t, OutcomeCompleted, Decide(m, nil, scheduled).Outcome)
	})

	t.Run("anonymous must log in", func(t *testing.T) {
		assert.Equal(t, OutcomeLoginRequired, Decide(sampleMeeting(), nil, scheduled).Outcome)
	})

	t.Run("unknown status is not terminal", func(t *testing.T) {
		m := sampleMeeting()
		m.Status = "rescheduled"
		assert.Equal(t, OutcomeAdmitted, Decide(m, hr, scheduled).Outcome)
	})
}

func TestDecide_WindowBoundsInclusive(t *testing.T) {
	m := sampleMeeting()

	assert.Equal(t, OutcomeAdmitted, Decide(m, hr, scheduled.Add(-30*time.Minute)).Outcome)
	assert.Equal(t, OutcomeNotStarted, Decide(m, hr, scheduled.Add(-30*time.Minute-time.Second)).Outcome)
	assert.Equal(t, OutcomeAdmitted, Decide(m, hr, scheduled.Add(120*time.Minute)).Outcome)
	assert.Equal(t, OutcomeEnded, Decide(m, hr, scheduled.Add(120*time.Minute+time.Second)).Outcome)
}

func TestDecide_ScheduleUsesClockLocation(t *testing.T) {
	manila := time.FixedZone("PHT", 8*60*60)
	m := sampleMeeting()

	// 14:00 in Manila is 06:00 UTC.
	now := time.Date(2025, 6, 1, 6, 0, 0, 0, time.UTC).In(manila)
	d := Decide(m, hr, now)

	assert.True(t, d.Admitted())
	assert.True(t, d.ScheduledAt.Equal(now))
}

func TestDecide_DisplayNames(t *testing.T) {
	m := sampleMeeting()
	m.CompanyName = nil
	m.SeekerFirstName = strPtr("  ")
	m.SeekerLastName = nil

	d := Decide(m, hr, scheduled)
	assert.Equal(t, RoleInterviewer, d.Role)
	assert.Equal(t, "Interviewer", d.DisplayName)

	d = Decide(m, seeker, scheduled)
	assert.Equal(t, "Candidate", d.DisplayName)
}

func TestDecide_ShortTimeColumn(t *testing.T) {
	m := sampleMeeting()
	m.EventTime = "14:00"
	assert.True(t, Decide(m, hr, scheduled).Admitted())

	m.EventDate = "not-a-date"
	assert.Equal(t, OutcomeNotFound, Decide(m, hr, scheduled).Outcome)
}
