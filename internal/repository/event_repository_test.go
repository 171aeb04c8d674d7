package repository

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnexus/internal/domain"
)

func TestEventRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)
	appID := int64(3)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO events`)).
		WithArgs("tok", &appID, int64(10), int64(20), "Interview", "2026-03-10", "14:00", 60, "scheduled").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(11)))

	event := &domain.Event{
		MeetingToken: "tok", ApplicationID: &appID, HRUserID: 10, SeekerUserID: 20,
		Title: "Interview", EventDate: "2026-03-10", EventTime: "14:00", DurationMinutes: 60,
	}
	require.NoError(t, repo.Create(context.Background(), event))
	assert.Equal(t, int64(11), event.ID)
	assert.Equal(t, domain.MeetingScheduled, event.Status)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetByToken(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)

	cols := []string{
		"id", "meeting_token", "application_id", "hr_user_id", "seeker_user_id", "title",
		"event_date", "event_time", "duration_minutes", "status",
		"job_title", "company_name", "company_logo", "seeker_first_name", "seeker_last_name", "seeker_email",
	}
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.meeting_token = $1`)).
		WithArgs("tok").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(
			int64(11), "tok", int64(3), int64(10), int64(20), "Interview",
			"2026-03-10", "14:00:00", 45, "confirmed",
			"Backend Engineer", "Acme", nil, "Ana", "Lima", "ana@example.com",
		))
	mock.ExpectQuery(regexp.QuoteMeta(`WHERE e.meeting_token = $1`)).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	event, err := repo.GetByToken(context.Background(), "tok")
	require.NoError(t, err)
	require.NotNil(t, event)
	assert.Equal(t, domain.MeetingStatus("confirmed"), event.Status)
	assert.Equal(t, "Backend Engineer", event.PositionTitle())
	assert.Equal(t, "Ana Lima", event.CandidateName())
	assert.Nil(t, event.CompanyLogo)

	event, err = repo.GetByToken(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, event)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_StatusAndReschedule(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE events SET status = $3 WHERE meeting_token = $1 AND hr_user_id = $2`)).
		WithArgs("tok", int64(10), "cancelled").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`status <> 'completed'`)).
		WithArgs("tok", int64(99), "2026-03-11", "09:30").
		WillReturnResult(sqlmock.NewResult(0, 0))

	n, err := repo.UpdateStatus(ctx, "tok", 10, domain.MeetingCancelled)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Reschedule(ctx, "tok", 99, "2026-03-11", "09:30")
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}
