package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobnexus/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetCompanyByHRUser(ctx context.Context, hrUserID int64) (*domain.Company, error)
	GetSeekerName(ctx context.Context, userID int64) (string, error)
}

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, role, is_active, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &user, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetCompanyByHRUser(ctx context.Context, hrUserID int64) (*domain.Company, error) {
	var company domain.Company
	query := `SELECT id, hr_user_id, company_name, logo FROM companies WHERE hr_user_id = $1`

	err := r.db.GetContext(ctx, &company, query, hrUserID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// GetSeekerName returns the trimmed profile name, or "" when no profile exists.
func (r *userRepository) GetSeekerName(ctx context.Context, userID int64) (string, error) {
	var name string
	query := `SELECT TRIM(COALESCE(first_name, '') || ' ' || COALESCE(last_name, '')) FROM seeker_profiles WHERE user_id = $1`

	err := r.db.GetContext(ctx, &name, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return name, err
}
