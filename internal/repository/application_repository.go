package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobnexus/internal/domain"
)

type ApplicationRepository interface {
	GetJob(ctx context.Context, jobID int64) (*domain.Job, error)
	// Create inserts a fresh application. It reports false when the seeker
	// already applied to the job.
	Create(ctx context.Context, app *domain.Application) (bool, error)
	GetByID(ctx context.Context, id int64) (*domain.Application, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, notes *string) error
	UpdateRating(ctx context.Context, id int64, rating int) error
}

type applicationRepository struct {
	db *sqlx.DB
}

func NewApplicationRepository(db *sqlx.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) GetJob(ctx context.Context, jobID int64) (*domain.Job, error) {
	var job domain.Job
	query := `SELECT id, posted_by, title FROM jobs WHERE id = $1`

	err := r.db.GetContext(ctx, &job, query, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *applicationRepository) Create(ctx context.Context, app *domain.Application) (bool, error) {
	query := `
		INSERT INTO applications (job_id, seeker_id, status)
		VALUES ($1, $2, 'applied')
		ON CONFLICT (job_id, seeker_id) DO NOTHING
		RETURNING id, status, applied_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query, app.JobID, app.SeekerID).
		Scan(&app.ID, &app.Status, &app.AppliedAt, &app.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	var app domain.Application
	query := `
		SELECT a.id, a.job_id, a.seeker_id, a.status, a.status_notes, a.rating, a.applied_at, a.updated_at,
			j.title AS job_title, j.posted_by, c.company_name,
			NULLIF(TRIM(COALESCE(sp.first_name, '') || ' ' || COALESCE(sp.last_name, '')), '') AS seeker_name,
			u.email AS seeker_email
		FROM applications a
		JOIN jobs j ON j.id = a.job_id
		JOIN users u ON u.id = a.seeker_id
		LEFT JOIN companies c ON c.hr_user_id = j.posted_by
		LEFT JOIN seeker_profiles sp ON sp.user_id = a.seeker_id
		WHERE a.id = $1`

	err := r.db.GetContext(ctx, &app, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *applicationRepository) UpdateStatus(ctx context.Context, id int64, status domain.ApplicationStatus, notes *string) error {
	query := `UPDATE applications SET status = $2, status_notes = $3, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, status, notes)
	return err
}

func (r *applicationRepository) UpdateRating(ctx context.Context, id int64, rating int) error {
	query := `UPDATE applications SET rating = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, rating)
	return err
}
