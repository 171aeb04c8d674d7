package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"jobnexus/internal/domain"
)

// NotificationRepository scopes every statement by the owning user id.
type NotificationRepository interface {
	Create(ctx context.Context, notif *domain.Notification) error
	GetOwned(ctx context.Context, userID, id int64) (*domain.Notification, error)
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, error)
	CountByUser(ctx context.Context, userID int64, unreadOnly bool) (int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkAsRead(ctx context.Context, userID, id int64) (int64, error)
	MarkAllAsRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, userID, id int64) (int64, error)
	DeleteAllForUser(ctx context.Context, userID int64) (int64, error)
}

const notificationColumns = `id, user_id, type, title, message, link, is_read, read_at, created_at`

type notificationRepository struct {
	db *sqlx.DB
}

func NewNotificationRepository(db *sqlx.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, notif *domain.Notification) error {
	query := `
		INSERT INTO notifications (user_id, type, title, message, link, is_read)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING id, created_at`

	notif.IsRead = false
	notif.ReadAt = nil
	return r.db.QueryRowxContext(ctx, query,
		notif.UserID, notif.Type, notif.Title, notif.Message, notif.Link,
	).Scan(&notif.ID, &notif.CreatedAt)
}

func (r *notificationRepository) GetOwned(ctx context.Context, userID, id int64) (*domain.Notification, error) {
	var notif domain.Notification
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE id = $1 AND user_id = $2`

	err := r.db.GetContext(ctx, &notif, query, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &notif, nil
}

func (r *notificationRepository) ListByUser(ctx context.Context, userID int64, unreadOnly bool, params domain.PaginationParams) ([]domain.Notification, error) {
	params.Validate()

	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE user_id = $1`
	if unreadOnly {
		query += ` AND is_read = false`
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`

	notifications := []domain.Notification{}
	err := r.db.SelectContext(ctx, &notifications, query, userID, params.PerPage, params.Offset())
	return notifications, err
}

func (r *notificationRepository) CountByUser(ctx context.Context, userID int64, unreadOnly bool) (int64, error) {
	if unreadOnly {
		return r.CountUnread(ctx, userID)
	}

	var total int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1`
	err := r.db.GetContext(ctx, &total, query, userID)
	return total, err
}

func (r *notificationRepository) CountUnread(ctx context.Context, userID int64) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

func (r *notificationRepository) MarkAsRead(ctx context.Context, userID, id int64) (int64, error) {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE id = $1 AND user_id = $2 AND is_read = false`
	return r.exec(ctx, query, id, userID)
}

func (r *notificationRepository) MarkAllAsRead(ctx context.Context, userID int64) (int64, error) {
	query := `UPDATE notifications SET is_read = true, read_at = NOW() WHERE user_id = $1 AND is_read = false`
	return r.exec(ctx, query, userID)
}

func (r *notificationRepository) Delete(ctx context.Context, userID, id int64) (int64, error) {
	query := `DELETE FROM notifications WHERE id = $1 AND user_id = $2`
	return r.exec(ctx, query, id, userID)
}

func (r *notificationRepository) DeleteAllForUser(ctx context.Context, userID int64) (int64, error) {
	query := `DELETE FROM notifications WHERE user_id = $1`
	return r.exec(ctx, query, userID)
}

func (r *notificationRepository) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
