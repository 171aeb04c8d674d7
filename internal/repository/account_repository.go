package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"jobnexus/internal/domain"
)

// AccountRepository removes a user and everything they own in one transaction.
type AccountRepository interface {
	DeleteCascade(ctx context.Context, userID int64, role domain.UserRole) error
}

type accountRepository struct {
	db *sqlx.DB
}

func NewAccountRepository(db *sqlx.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) DeleteCascade(ctx context.Context, userID int64, role domain.UserRole) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var steps []string
	if role == domain.RoleHR {
		steps = []string{
			`DELETE FROM events WHERE hr_user_id = $1`,
			`DELETE FROM applications WHERE job_id IN (SELECT id FROM jobs WHERE posted_by = $1)`,
			`DELETE FROM jobs WHERE posted_by = $1`,
			`DELETE FROM companies WHERE hr_user_id = $1`,
		}
	} else {
		steps = []string{
			`DELETE FROM events WHERE seeker_user_id = $1`,
			`DELETE FROM applications WHERE seeker_id = $1`,
			`DELETE FROM seeker_profiles WHERE user_id = $1`,
		}
	}
	steps = append(steps,
		`DELETE FROM notifications WHERE user_id = $1`,
		`DELETE FROM sessions WHERE user_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	)

	for _, query := range steps {
		if _, err := tx.ExecContext(ctx, query, userID); err != nil {
			return fmt.Errorf("failed to delete account data: %w", err)
		}
	}

	return tx.Commit()
}
