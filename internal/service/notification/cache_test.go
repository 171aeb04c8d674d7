package notification_test

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobnexus/internal/domain"
	"jobnexus/internal/mocks"
	"jobnexus/internal/service/notification"
)

const aliceUnreadKey = "notifications:unread:1"

func newCachedService(t *testing.T) (notification.Service, *mocks.NotificationRepository, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	repo := new(mocks.NotificationRepository)
	return notification.NewService(repo, client, nil), repo, mr
}

func TestService_UnreadCache(t *testing.T) {
	t.Run("Miss loads from storage then serves the cache", func(t *testing.T) {
		svc, repo, mr := newCachedService(t)
		repo.On("CountUnread", ctx, int64(1)).Return(int64(3), nil).Once()

		first, err := svc.CountUnread(ctx, alice)
		require.NoError(t, err)
		second, err := svc.CountUnread(ctx, alice)
		require.NoError(t, err)

		assert.Equal(t, int64(3), first)
		assert.Equal(t, int64(3), second)
		cached, err := mr.Get(aliceUnreadKey)
		require.NoError(t, err)
		assert.Equal(t, "3", cached)
		repo.AssertNumberOfCalls(t, "CountUnread", 1)
	})

	t.Run("Cache is per user", func(t *testing.T) {
		svc, repo, _ := newCachedService(t)
		bob := &domain.Identity{UserID: 2, Role: domain.RoleHR}
		repo.On("CountUnread", ctx, int64(1)).Return(int64(3), nil).Once()
		repo.On("CountUnread", ctx, int64(2)).Return(int64(0), nil).Once()

		a, err := svc.CountUnread(ctx, alice)
		require.NoError(t, err)
		b, err := svc.CountUnread(ctx, bob)
		require.NoError(t, err)

		assert.Equal(t, int64(3), a)
		assert.Equal(t, int64(0), b)
		repo.AssertExpectations(t)
	})

	mutations := []struct {
		name   string
		expect func(repo *mocks.NotificationRepository)
		run    func(svc notification.Service) error
	}{
		{
			name: "Create",
			expect: func(repo *mocks.NotificationRepository) {
				repo.On("Create", ctx, mock.Anything).Return(nil).Once()
			},
			run: func(svc notification.Service) error {
				svc.Create(ctx, domain.CreateNotificationInput{UserID: 1, Type: domain.NotifSystem, Title: "t"})
				return nil
			},
		},
		{
			name: "MarkRead single",
			expect: func(repo *mocks.NotificationRepository) {
				repo.On("MarkAsRead", ctx, int64(1), int64(5)).Return(int64(1), nil).Once()
			},
			run: func(svc notification.Service) error {
				return svc.MarkRead(ctx, alice, int64Ptr(5))
			},
		},
		{
			name: "MarkRead all",
			expect: func(repo *mocks.NotificationRepository) {
				repo.On("MarkAllAsRead", ctx, int64(1)).Return(int64(2), nil).Once()
			},
			run: func(svc notification.Service) error {
				return svc.MarkRead(ctx, alice, nil)
			},
		},
		{
			name: "Delete",
			expect: func(repo *mocks.NotificationRepository) {
				repo.On("Delete", ctx, int64(1), int64(5)).Return(int64(1), nil).Once()
			},
			run: func(svc notification.Service) error {
				return svc.Delete(ctx, alice, int64Ptr(5))
			},
		},
		{
			name: "DeleteAll",
			expect: func(repo *mocks.NotificationRepository) {
				repo.On("DeleteAllForUser", ctx, int64(1)).Return(int64(4), nil).Once()
			},
			run: func(svc notification.Service) error {
				return svc.DeleteAll(ctx, alice)
			},
		},
	}

	for _, tc := range mutations {
		t.Run(tc.name+" invalidates the cached count", func(t *testing.T) {
			svc, repo, mr := newCachedService(t)
			repo.On("CountUnread", ctx, int64(1)).Return(int64(2), nil).Once()

			_, err := svc.CountUnread(ctx, alice)
			require.NoError(t, err)
			require.True(t, mr.Exists(aliceUnreadKey))

			tc.expect(repo)
			require.NoError(t, tc.run(svc))
			assert.False(t, mr.Exists(aliceUnreadKey))

			repo.On("CountUnread", ctx, int64(1)).Return(int64(1), nil).Once()
			count, err := svc.CountUnread(ctx, alice)
			require.NoError(t, err)
			assert.Equal(t, int64(1), count)
			repo.AssertExpectations(t)
		})
	}

	t.Run("Invalidation during a load is not overwritten", func(t *testing.T) {
		svc, repo, mr := newCachedService(t)

		// A notification lands between the count query and the cache fill.
		repo.On("CountUnread", ctx, int64(1)).Run(func(mock.Arguments) {
			svc.InvalidateUnread(ctx, 1)
		}).Return(int64(0), nil).Once()
		repo.On("CountUnread", ctx, int64(1)).Return(int64(1), nil).Once()

		stale, err := svc.CountUnread(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(0), stale)
		assert.False(t, mr.Exists(aliceUnreadKey))

		fresh, err := svc.CountUnread(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(1), fresh)

		cached, err := svc.CountUnread(ctx, alice)
		require.NoError(t, err)
		assert.Equal(t, int64(1), cached)
		repo.AssertNumberOfCalls(t, "CountUnread", 2)
	})

	t.Run("Page badge follows invalidation", func(t *testing.T) {
		svc, repo, _ := newCachedService(t)
		params := domain.NotificationPagination(1)

		repo.On("CountByUser", ctx, int64(1), false).Return(int64(2), nil)
		repo.On("ListByUser", ctx, int64(1), false, params).Return([]domain.Notification{}, nil)
		repo.On("CountUnread", ctx, int64(1)).Return(int64(2), nil).Once()

		page, err := svc.Page(ctx, alice, 1, domain.FilterAll)
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.UnreadCount)

		repo.On("MarkAllAsRead", ctx, int64(1)).Return(int64(2), nil).Once()
		require.NoError(t, svc.MarkRead(ctx, alice, nil))

		repo.On("CountUnread", ctx, int64(1)).Return(int64(0), nil).Once()
		page, err = svc.Page(ctx, alice, 1, domain.FilterAll)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.UnreadCount)
	})
}
