package notification_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"jobnexus/internal/domain"
	"jobnexus/internal/events"
	"jobnexus/internal/mocks"
	"jobnexus/internal/service/notification"
)

type recordingBroadcaster struct {
	pushed []domain.Notification
}

func (b *recordingBroadcaster) Push(_ int64, notif domain.Notification) {
	b.pushed = append(b.pushed, notif)
}

func int64Ptr(v int64) *int64 { return &v }

var (
	ctx   = context.Background()
	alice = &domain.Identity{UserID: 1, Role: domain.RoleSeeker}
)

func TestService_Create(t *testing.T) {
	link := "/seeker/calendar.php"

	t.Run("Success", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		bc := &recordingBroadcaster{}
		svc := notification.NewService(repo, nil, nil)
		svc.SetBroadcaster(bc)

		repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
			return n.UserID == 1 && n.Type == domain.NotifInterview && !n.IsRead && n.ReadAt == nil
		})).Run(func(args mock.Arguments) {
			n := args.Get(1).(*domain.Notification)
			n.ID = 99
			n.CreatedAt = time.Now()
		}).Return(nil).Once()

		ok := svc.Create(ctx, domain.CreateNotificationInput{
			UserID: 1, Type: domain.NotifInterview, Title: "Interview Scheduled", Message: "m", Link: &link,
		})

		assert.True(t, ok)
		require.Len(t, bc.pushed, 1)
		assert.Equal(t, int64(99), bc.pushed[0].ID)
		assert.False(t, bc.pushed[0].IsRead)
		repo.AssertExpectations(t)
	})

	t.Run("Storage failure reports false", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("Create", ctx, mock.Anything).Return(errors.New("connection refused")).Once()

		ok := svc.Create(ctx, domain.CreateNotificationInput{UserID: 1, Type: domain.NotifSystem, Title: "t"})

		assert.False(t, ok)
		repo.AssertExpectations(t)
	})

	t.Run("Missing recipient is rejected without storage", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)

		assert.False(t, svc.Create(ctx, domain.CreateNotificationInput{Title: "t"}))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestService_HandleRequested(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := notification.NewService(repo, nil, nil)

	repo.On("Create", ctx, mock.MatchedBy(func(n *domain.Notification) bool {
		return n.Type.String() == "custom_kind" && !n.Type.IsKnown()
	})).Return(nil).Once()

	err := svc.HandleRequested(ctx, events.NotificationRequested{UserID: 5, Type: "custom_kind", Title: "t"})
	assert.NoError(t, err)

	repo.On("Create", ctx, mock.Anything).Return(errors.New("down")).Once()
	err = svc.HandleRequested(ctx, events.NotificationRequested{UserID: 5, Type: "job", Title: "t"})
	assert.Error(t, err)
}

func TestService_List(t *testing.T) {
	t.Run("Unauthenticated never touches storage", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)

		_, err := svc.List(ctx, nil, domain.ListOptions{Limit: 10})

		assert.ErrorIs(t, err, domain.ErrUnauthenticated)
		repo.AssertExpectations(t)
	})

	t.Run("Limit is clamped", func(t *testing.T) {
		cases := map[int]int{100: 50, 0: 1, -4: 1, 10: 10}
		for in, want := range cases {
			repo := new(mocks.NotificationRepository)
			svc := notification.NewService(repo, nil, nil)
			repo.On("ListByUser", ctx, int64(1), true, domain.PaginationParams{Page: 1, PerPage: want}).
				Return([]domain.Notification{}, nil).Once()

			_, err := svc.List(ctx, alice, domain.ListOptions{Limit: in, UnreadOnly: true})

			assert.NoError(t, err)
			repo.AssertExpectations(t)
		}
	})

	t.Run("Missing table degrades to empty", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("ListByUser", ctx, int64(1), false, mock.Anything).
			Return(nil, &pq.Error{Code: "42P01", Message: `relation "notifications" does not exist`}).Once()

		items, err := svc.List(ctx, alice, domain.ListOptions{Limit: 10})

		assert.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("Other storage errors surface as ErrStorage", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("ListByUser", ctx, int64(1), false, mock.Anything).Return(nil, errors.New("timeout")).Once()

		_, err := svc.List(ctx, alice, domain.ListOptions{Limit: 10})

		assert.ErrorIs(t, err, domain.ErrStorage)
	})
}

func TestService_CountUnread(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := notification.NewService(repo, nil, nil)

	repo.On("CountUnread", ctx, int64(1)).Return(int64(3), nil).Once()
	count, err := svc.CountUnread(ctx, alice)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)

	repo.On("CountUnread", ctx, int64(1)).Return(int64(0), &pq.Error{Code: "42P01"}).Once()
	count, err = svc.CountUnread(ctx, alice)
	assert.NoError(t, err)
	assert.Zero(t, count)

	_, err = svc.CountUnread(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestService_MarkRead(t *testing.T) {
	t.Run("Single notification is scoped to owner", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("MarkAsRead", ctx, int64(1), int64(42)).Return(int64(0), nil).Once()

		err := svc.MarkRead(ctx, alice, int64Ptr(42))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Nil id marks all", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("MarkAllAsRead", ctx, int64(1)).Return(int64(4), nil).Once()

		assert.NoError(t, svc.MarkRead(ctx, alice, nil))
		repo.AssertExpectations(t)
	})

	t.Run("Storage error", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("MarkAllAsRead", ctx, int64(1)).Return(int64(0), errors.New("boom")).Once()

		assert.ErrorIs(t, svc.MarkRead(ctx, alice, nil), domain.ErrStorage)
	})
}

func TestService_Delete(t *testing.T) {
	repo := new(mocks.NotificationRepository)
	svc := notification.NewService(repo, nil, nil)

	assert.ErrorIs(t, svc.Delete(ctx, alice, nil), domain.ErrMissingNotificationID)
	assert.ErrorIs(t, svc.Delete(ctx, alice, int64Ptr(0)), domain.ErrMissingNotificationID)
	assert.ErrorIs(t, svc.Delete(ctx, nil, int64Ptr(5)), domain.ErrUnauthenticated)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "DeleteAllForUser", mock.Anything, mock.Anything)

	repo.On("Delete", ctx, int64(1), int64(5)).Return(int64(1), nil).Once()
	assert.NoError(t, svc.Delete(ctx, alice, int64Ptr(5)))

	repo.On("DeleteAllForUser", ctx, int64(1)).Return(int64(7), nil).Once()
	assert.NoError(t, svc.DeleteAll(ctx, alice))
	repo.AssertExpectations(t)
}

func TestService_Page(t *testing.T) {
	items := []domain.Notification{{ID: 3, UserID: 1}, {ID: 2, UserID: 1}}

	t.Run("All filter reports unread separately", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("CountByUser", ctx, int64(1), false).Return(int64(41), nil).Once()
		repo.On("ListByUser", ctx, int64(1), false, domain.PaginationParams{Page: 3, PerPage: 20}).Return(items, nil).Once()
		repo.On("CountUnread", ctx, int64(1)).Return(int64(5), nil).Once()

		page, err := svc.Page(ctx, alice, 3, domain.FilterAll)

		require.NoError(t, err)
		assert.Equal(t, int64(41), page.TotalItems)
		assert.Equal(t, 3, page.TotalPages)
		assert.Equal(t, int64(5), page.UnreadCount)
		assert.Equal(t, domain.FilterAll, page.Filter)
		assert.Len(t, page.Data, 2)
		assert.False(t, page.HasNext)
		repo.AssertExpectations(t)
	})

	t.Run("Unread filter reuses total", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("CountByUser", ctx, int64(1), true).Return(int64(2), nil).Once()
		repo.On("ListByUser", ctx, int64(1), true, domain.PaginationParams{Page: 1, PerPage: 20}).Return(items, nil).Once()

		page, err := svc.Page(ctx, alice, 0, domain.FilterUnread)

		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, int64(2), page.UnreadCount)
		assert.Equal(t, 1, page.TotalPages)
		repo.AssertExpectations(t)
	})

	t.Run("Missing table gives empty page", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("CountByUser", ctx, int64(1), false).Return(int64(0), &pq.Error{Code: "42P01"}).Once()

		page, err := svc.Page(ctx, alice, 1, domain.FilterAll)

		require.NoError(t, err)
		assert.Empty(t, page.Data)
		assert.Zero(t, page.TotalPages)
	})
}

func TestService_MarkReadAndResolveLink(t *testing.T) {
	link := "/seeker/applications.php?id=4"

	t.Run("Owned unread notification", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("GetOwned", ctx, int64(1), int64(8)).Return(&domain.Notification{ID: 8, UserID: 1, Link: &link}, nil).Once()
		repo.On("MarkAsRead", ctx, int64(1), int64(8)).Return(int64(1), nil).Once()

		got, err := svc.MarkReadAndResolveLink(ctx, alice, 8)

		assert.NoError(t, err)
		assert.Equal(t, link, got)
		repo.AssertExpectations(t)
	})

	t.Run("Already read does not update again", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("GetOwned", ctx, int64(1), int64(8)).Return(&domain.Notification{ID: 8, UserID: 1, IsRead: true}, nil).Once()

		got, err := svc.MarkReadAndResolveLink(ctx, alice, 8)

		assert.NoError(t, err)
		assert.Empty(t, got)
		repo.AssertNotCalled(t, "MarkAsRead", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Foreign notification resolves nothing", func(t *testing.T) {
		repo := new(mocks.NotificationRepository)
		svc := notification.NewService(repo, nil, nil)
		repo.On("GetOwned", ctx, int64(1), int64(9)).Return(nil, nil).Once()

		got, err := svc.MarkReadAndResolveLink(ctx, alice, 9)

		assert.NoError(t, err)
		assert.Empty(t, got)
		repo.AssertExpectations(t)
	})
}
