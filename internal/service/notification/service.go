package notification

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"jobnexus/internal/domain"
	"jobnexus/internal/events"
	"jobnexus/internal/metrics"
	"jobnexus/internal/repository"
)

const (
	unreadCacheTTL      = 5 * time.Minute
	unreadGenerationTTL = 24 * time.Hour
)

// errStaleCount aborts a cache fill that raced with an invalidation.
var errStaleCount = errors.New("unread count changed while loading")

// Broadcaster pushes freshly stored notifications to live connections.
type Broadcaster interface {
	Push(userID int64, notif domain.Notification)
}

type Service interface {
	Create(ctx context.Context, input domain.CreateNotificationInput) bool
	HandleRequested(ctx context.Context, ev events.NotificationRequested) error

	List(ctx context.Context, identity *domain.Identity, opts domain.ListOptions) ([]domain.Notification, error)
	CountUnread(ctx context.Context, identity *domain.Identity) (int64, error)
	MarkRead(ctx context.Context, identity *domain.Identity, id *int64) error
	Delete(ctx context.Context, identity *domain.Identity, id *int64) error
	DeleteAll(ctx context.Context, identity *domain.Identity) error
	Page(ctx context.Context, identity *domain.Identity, page int, filter domain.NotificationFilter) (*domain.NotificationPage, error)
	MarkReadAndResolveLink(ctx context.Context, identity *domain.Identity, id int64) (string, error)

	InvalidateUnread(ctx context.Context, userID int64)
	SetBroadcaster(b Broadcaster)
}

type service struct {
	notifRepo   repository.NotificationRepository
	redis       *redis.Client
	broadcaster Broadcaster
	logger      *zap.Logger
}

func NewService(notifRepo repository.NotificationRepository, redis *redis.Client, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		notifRepo: notifRepo,
		redis:     redis,
		logger:    logger,
	}
}

func (s *service) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// Create stores one unread notification. Failures are logged and reported as
// false so the calling business action can carry on.
func (s *service) Create(ctx context.Context, input domain.CreateNotificationInput) bool {
	if input.UserID <= 0 {
		s.logger.Warn("notification without recipient dropped", zap.String("type", input.Type.String()))
		metrics.NotificationsCreated.WithLabelValues("rejected").Inc()
		return false
	}

	notif := &domain.Notification{
		UserID:  input.UserID,
		Type:    input.Type,
		Title:   input.Title,
		Message: input.Message,
		Link:    input.Link,
	}
	if err := s.notifRepo.Create(ctx, notif); err != nil {
		s.logger.Warn("failed to create notification",
			zap.Int64("user_id", input.UserID),
			zap.String("type", input.Type.String()),
			zap.Error(err),
		)
		metrics.NotificationsCreated.WithLabelValues("failed").Inc()
		return false
	}

	metrics.NotificationsCreated.WithLabelValues("stored").Inc()
	s.InvalidateUnread(ctx, input.UserID)
	if s.broadcaster != nil {
		s.broadcaster.Push(input.UserID, *notif)
	}
	return true
}

// HandleRequested is the event consumer for NotificationRequested.
func (s *service) HandleRequested(ctx context.Context, ev events.NotificationRequested) error {
	ok := s.Create(ctx, domain.CreateNotificationInput{
		UserID:  ev.UserID,
		Type:    domain.ParseNotificationType(ev.Type),
		Title:   ev.Title,
		Message: ev.Message,
		Link:    ev.Link,
	})
	if !ok {
		return fmt.Errorf("notification for user %d not stored", ev.UserID)
	}
	return nil
}

func (s *service) List(ctx context.Context, identity *domain.Identity, opts domain.ListOptions) ([]domain.Notification, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	params := domain.PaginationParams{Page: 1, PerPage: domain.ClampListLimit(opts.Limit)}
	notifications, err := s.notifRepo.ListByUser(ctx, identity.UserID, opts.UnreadOnly, params)
	if err != nil {
		if repository.IsUndefinedTable(err) {
			return []domain.Notification{}, nil
		}
		return nil, storageError("list notifications", err)
	}
	return notifications, nil
}

func (s *service) CountUnread(ctx context.Context, identity *domain.Identity) (int64, error) {
	if identity == nil {
		return 0, domain.ErrUnauthenticated
	}

	cacheKey := unreadCacheKey(identity.UserID)
	var generation int64
	if s.redis != nil {
		if cached, err := s.redis.Get(ctx, cacheKey).Result(); err == nil {
			if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
				return count, nil
			}
		}
		generation = s.unreadGeneration(ctx, identity.UserID)
	}

	count, err := s.notifRepo.CountUnread(ctx, identity.UserID)
	if err != nil {
		if repository.IsUndefinedTable(err) {
			return 0, nil
		}
		return 0, storageError("count unread notifications", err)
	}

	if s.redis != nil {
		s.fillUnread(ctx, identity.UserID, generation, count)
	}
	return count, nil
}

func (s *service) unreadGeneration(ctx context.Context, userID int64) int64 {
	gen, err := s.redis.Get(ctx, unreadGenerationKey(userID)).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// fillUnread caches count only while the generation read before the database
// query is still current. Any invalidation in between bumps the generation.
func (s *service) fillUnread(ctx context.Context, userID, generation, count int64) {
	genKey := unreadGenerationKey(userID)
	err := s.redis.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, genKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return errStaleCount
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, unreadCacheKey(userID), count, unreadCacheTTL)
			return nil
		})
		return err
	}, genKey)

	switch {
	case err == nil, errors.Is(err, errStaleCount), errors.Is(err, redis.TxFailedErr):
	default:
		s.logger.Debug("unread count not cached", zap.Int64("user_id", userID), zap.Error(err))
	}
}

// MarkRead marks one owned notification, or every unread one when id is nil.
// Rows owned by someone else are left untouched without an error.
func (s *service) MarkRead(ctx context.Context, identity *domain.Identity, id *int64) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}

	var err error
	if id == nil {
		_, err = s.notifRepo.MarkAllAsRead(ctx, identity.UserID)
	} else {
		_, err = s.notifRepo.MarkAsRead(ctx, identity.UserID, *id)
	}
	if err != nil {
		return storageError("mark notifications read", err)
	}

	s.InvalidateUnread(ctx, identity.UserID)
	return nil
}

func (s *service) Delete(ctx context.Context, identity *domain.Identity, id *int64) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if id == nil || *id <= 0 {
		return domain.ErrMissingNotificationID
	}

	if _, err := s.notifRepo.Delete(ctx, identity.UserID, *id); err != nil {
		return storageError("delete notification", err)
	}

	s.InvalidateUnread(ctx, identity.UserID)
	return nil
}

func (s *service) DeleteAll(ctx context.Context, identity *domain.Identity) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}

	if _, err := s.notifRepo.DeleteAllForUser(ctx, identity.UserID); err != nil {
		return storageError("delete all notifications", err)
	}

	s.InvalidateUnread(ctx, identity.UserID)
	return nil
}

func (s *service) Page(ctx context.Context, identity *domain.Identity, page int, filter domain.NotificationFilter) (*domain.NotificationPage, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	params := domain.NotificationPagination(page)
	unreadOnly := filter == domain.FilterUnread
	result := &domain.NotificationPage{
		PaginatedResponse: domain.NewPaginatedResponse[domain.Notification](nil, params, 0),
		Filter:            filter,
	}

	total, err := s.notifRepo.CountByUser(ctx, identity.UserID, unreadOnly)
	if err != nil {
		if repository.IsUndefinedTable(err) {
			return result, nil
		}
		return nil, storageError("count notifications", err)
	}

	items, err := s.notifRepo.ListByUser(ctx, identity.UserID, unreadOnly, params)
	if err != nil {
		return nil, storageError("list notifications", err)
	}

	unread := total
	if !unreadOnly {
		unread, err = s.CountUnread(ctx, identity)
		if err != nil {
			return nil, err
		}
	}

	result.PaginatedResponse = domain.NewPaginatedResponse(items, params, total)
	result.UnreadCount = unread
	return result, nil
}

// MarkReadAndResolveLink marks the caller's notification read and returns its
// link. Another user's notification yields "" and is not touched.
func (s *service) MarkReadAndResolveLink(ctx context.Context, identity *domain.Identity, id int64) (string, error) {
	if identity == nil {
		return "", domain.ErrUnauthenticated
	}
	if id <= 0 {
		return "", domain.ErrMissingNotificationID
	}

	notif, err := s.notifRepo.GetOwned(ctx, identity.UserID, id)
	if err != nil {
		return "", storageError("get notification", err)
	}
	if notif == nil {
		return "", nil
	}

	if !notif.IsRead {
		if err := s.MarkRead(ctx, identity, &id); err != nil {
			return "", err
		}
	}

	if notif.Link == nil {
		return "", nil
	}
	return *notif.Link, nil
}

func (s *service) InvalidateUnread(ctx context.Context, userID int64) {
	if s.redis == nil {
		return
	}

	genKey := unreadGenerationKey(userID)
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey)
		pipe.Expire(ctx, genKey, unreadGenerationTTL)
		pipe.Del(ctx, unreadCacheKey(userID))
		return nil
	})
	if err != nil {
		s.logger.Warn("failed to invalidate unread count", zap.Int64("user_id", userID), zap.Error(err))
	}
}

func unreadCacheKey(userID int64) string {
	return "notifications:unread:" + strconv.FormatInt(userID, 10)
}

func unreadGenerationKey(userID int64) string {
	return "notifications:unread:gen:" + strconv.FormatInt(userID, 10)
}

func storageError(op string, err error) error {
	return fmt.Errorf("failed to %s: %w", op, errors.Join(domain.ErrStorage, err))
}
