package interview_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobnexus/internal/domain"
	"jobnexus/internal/mocks"
	"jobnexus/internal/service/email"
	"jobnexus/internal/service/interview"
)

var (
	ctx    = context.Background()
	hrUser = &domain.Identity{UserID: 10, Role: domain.RoleHR}
)

type fixture struct {
	events   *mocks.EventRepository
	apps     *mocks.ApplicationRepository
	notifier *mocks.Notifier
	mail     *mocks.EmailService
	svc      interview.Service
}

func newFixture() *fixture {
	f := &fixture{
		events:   new(mocks.EventRepository),
		apps:     new(mocks.ApplicationRepository),
		notifier: new(mocks.Notifier),
		mail:     new(mocks.EmailService),
	}
	f.svc = interview.NewService(f.events, f.apps, f.notifier, f.mail, "https://jobs.test", nil)
	return f
}

func TestService_Schedule(t *testing.T) {
	company := "Acme"
	app := &domain.Application{
		ID: 5, JobID: 2, SeekerID: 20, PostedBy: 10,
		JobTitle: "Analyst", CompanyName: &company, SeekerEmail: "maria@example.com",
	}
	input := domain.ScheduleInterviewInput{ApplicationID: 5, EventDate: "2025-06-01", EventTime: "14:30"}

	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.apps.On("GetByID", ctx, int64(5)).Return(app, nil).Once()
		f.events.On("Create", ctx, mock.MatchedBy(func(e *domain.Event) bool {
			return e.HRUserID == 10 && e.SeekerUserID == 20 && e.MeetingToken != "" &&
				e.DurationMinutes == 60 && e.Status == domain.MeetingScheduled
		})).Return(nil).Once()
		f.notifier.On("InterviewScheduled", ctx, int64(20), "Analyst", "2025-06-01", "14:30").Once()
		f.mail.On("SendInterviewInvitation", ctx, mock.MatchedBy(func(m email.InterviewEmail) bool {
			return m.ToEmail == "maria@example.com" && m.CompanyName == "Acme" &&
				m.Date == "Jun 1, 2025" && len(m.MeetingURL) > len("https://jobs.test/meeting?id=")
		})).Return(nil).Once()

		event, err := f.svc.Schedule(ctx, hrUser, input)

		require.NoError(t, err)
		assert.Len(t, event.MeetingToken, 36)
		f.apps.AssertExpectations(t)
		f.events.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
		f.mail.AssertExpectations(t)
	})

	t.Run("Email failure does not fail scheduling", func(t *testing.T) {
		f := newFixture()
		f.apps.On("GetByID", ctx, int64(5)).Return(app, nil).Once()
		f.events.On("Create", ctx, mock.Anything).Return(nil).Once()
		f.notifier.On("InterviewScheduled", ctx, int64(20), "Analyst", "2025-06-01", "14:30").Once()
		f.mail.On("SendInterviewInvitation", ctx, mock.Anything).Return(errors.New("smtp down")).Once()

		_, err := f.svc.Schedule(ctx, hrUser, input)
		assert.NoError(t, err)
	})

	t.Run("Seeker cannot schedule", func(t *testing.T) {
		f := newFixture()
		_, err := f.svc.Schedule(ctx, &domain.Identity{UserID: 20, Role: domain.RoleSeeker}, input)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("Other HR's application", func(t *testing.T) {
		f := newFixture()
		f.apps.On("GetByID", ctx, int64(5)).Return(app, nil).Once()

		_, err := f.svc.Schedule(ctx, &domain.Identity{UserID: 11, Role: domain.RoleHR}, input)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		f.events.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Invalid input", func(t *testing.T) {
		f := newFixture()
		bad := input
		bad.EventDate = "06/01/2025"

		_, err := f.svc.Schedule(ctx, hrUser, bad)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("Unknown application", func(t *testing.T) {
		f := newFixture()
		f.apps.On("GetByID", ctx, int64(5)).Return(nil, nil).Once()

		_, err := f.svc.Schedule(ctx, hrUser, input)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func scheduledEvent() *domain.Event {
	job := "Analyst"
	mail := "maria@example.com"
	return &domain.Event{
		MeetingToken: "tok", HRUserID: 10, SeekerUserID: 20,
		EventDate: "2025-06-01", EventTime: "14:30:00",
		Status: domain.MeetingScheduled, JobTitle: &job, SeekerEmail: &mail,
	}
}

func TestService_Cancel(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newFixture()
		f.events.On("GetByToken", ctx, "tok").Return(scheduledEvent(), nil).Once()
		f.events.On("UpdateStatus", ctx, "tok", int64(10), domain.MeetingCancelled).Return(int64(1), nil).Once()
		f.notifier.On("InterviewCancelled", ctx, int64(20), "Analyst", "2025-06-01").Once()
		f.mail.On("SendInterviewCancelled", ctx, mock.Anything).Return(nil).Once()

		require.NoError(t, f.svc.Cancel(ctx, hrUser, "tok"))
		f.events.AssertExpectations(t)
		f.notifier.AssertExpectations(t)
	})

	t.Run("Already completed", func(t *testing.T) {
		f := newFixture()
		ev := scheduledEvent()
		ev.Status = domain.MeetingCompleted
		f.events.On("GetByToken", ctx, "tok").Return(ev, nil).Once()

		assert.ErrorIs(t, f.svc.Cancel(ctx, hrUser, "tok"), domain.ErrValidation)
	})

	t.Run("Not the owner", func(t *testing.T) {
		f := newFixture()
		f.events.On("GetByToken", ctx, "tok").Return(scheduledEvent(), nil).Once()

		err := f.svc.Cancel(ctx, &domain.Identity{UserID: 20, Role: domain.RoleSeeker}, "tok")
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})
}

func TestService_RescheduleAndComplete(t *testing.T) {
	f := newFixture()
	f.events.On("GetByToken", ctx, "tok").Return(scheduledEvent(), nil)
	f.events.On("Reschedule", ctx, "tok", int64(10), "2025-06-03", "09:00").Return(int64(1), nil).Once()
	f.events.On("UpdateStatus", ctx, "tok", int64(10), domain.MeetingCompleted).Return(int64(1), nil).Once()
	f.notifier.On("InterviewRescheduled", ctx, int64(20), "Analyst", "2025-06-03", "09:00").Once()

	require.NoError(t, f.svc.Reschedule(ctx, hrUser, "tok", domain.RescheduleInterviewInput{EventDate: "2025-06-03", EventTime: "09:00"}))
	require.NoError(t, f.svc.Complete(ctx, hrUser, "tok"))

	assert.ErrorIs(t, f.svc.Complete(ctx, nil, "tok"), domain.ErrUnauthenticated)
	f.events.AssertExpectations(t)
	f.notifier.AssertExpectations(t)
}
