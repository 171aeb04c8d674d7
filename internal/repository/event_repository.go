package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobnexus/internal/domain"
)

// EventRepository stores interview meetings. Lookups by token return the
// joined display fields the meeting room needs.
type EventRepository interface {
	Create(ctx context.Context, event *domain.Event) error
	GetByToken(ctx context.Context, token string) (*domain.Event, error)
	UpdateStatus(ctx context.Context, token string, hrUserID int64, status domain.MeetingStatus) (int64, error)
	Reschedule(ctx context.Context, token string, hrUserID int64, eventDate, eventTime string) (int64, error)
}

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (meeting_token, application_id, hr_user_id, seeker_user_id, title, event_date, event_time, duration_minutes, status)
		VALUES ($1, $2, $3, $4, $5, $6::date, $7::time, $8, $9)
		RETURNING id`

	if event.Status == "" {
		event.Status = domain.MeetingScheduled
	}
	return r.db.QueryRowxContext(ctx, query,
		event.MeetingToken, event.ApplicationID, event.HRUserID, event.SeekerUserID, event.Title,
		event.EventDate, event.EventTime, event.DurationMinutes, event.Status,
	).Scan(&event.ID)
}

func (r *eventRepository) GetByToken(ctx context.Context, token string) (*domain.Event, error) {
	var event domain.Event
	query := `
		SELECT e.id, e.meeting_token, e.application_id, e.hr_user_id, e.seeker_user_id, e.title,
			to_char(e.event_date, 'YYYY-MM-DD') AS event_date,
			to_char(e.event_time, 'HH24:MI:SS') AS event_time,
			e.duration_minutes, e.status,
			j.title AS job_title, c.company_name, c.logo AS company_logo,
			sp.first_name AS seeker_first_name, sp.last_name AS seeker_last_name,
			su.email AS seeker_email
		FROM events e
		LEFT JOIN applications a ON a.id = e.application_id
		LEFT JOIN jobs j ON j.id = a.job_id
		LEFT JOIN companies c ON c.hr_user_id = e.hr_user_id
		LEFT JOIN seeker_profiles sp ON sp.user_id = e.seeker_user_id
		LEFT JOIN users su ON su.id = e.seeker_user_id
		WHERE e.meeting_token = $1`

	err := r.db.GetContext(ctx, &event, query, token)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) UpdateStatus(ctx context.Context, token string, hrUserID int64, status domain.MeetingStatus) (int64, error) {
	query := `UPDATE events SET status = $3 WHERE meeting_token = $1 AND hr_user_id = $2`
	res, err := r.db.ExecContext(ctx, query, token, hrUserID, status)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *eventRepository) Reschedule(ctx context.Context, token string, hrUserID int64, eventDate, eventTime string) (int64, error) {
	query := `
		UPDATE events SET event_date = $3::date, event_time = $4::time, status = 'scheduled'
		WHERE meeting_token = $1 AND hr_user_id = $2 AND status <> 'completed'`
	res, err := r.db.ExecContext(ctx, query, token, hrUserID, eventDate, eventTime)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
