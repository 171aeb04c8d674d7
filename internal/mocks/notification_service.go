package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobnexus/internal/domain"
	"jobnexus/internal/events"
	"jobnexus/internal/service/notification"
)

type NotificationService struct {
	mock.Mock
}

func (m *NotificationService) Create(ctx context.Context, input domain.CreateNotificationInput) bool {
	args := m.Called(ctx, input)
	return args.Bool(0)
}

func (m *NotificationService) HandleRequested(ctx context.Context, ev events.NotificationRequested) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *NotificationService) List(ctx context.Context, identity *domain.Identity, opts domain.ListOptions) ([]domain.Notification, error) {
	args := m.Called(ctx, identity, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *NotificationService) CountUnread(ctx context.Context, identity *domain.Identity) (int64, error) {
	args := m.Called(ctx, identity)
	return args.Get(0).(int64), args.Error(1)
}

func (m *NotificationService) MarkRead(ctx context.Context, identity *domain.Identity, id *int64) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

func (m *NotificationService) Delete(ctx context.Context, identity *domain.Identity, id *int64) error {
	args := m.Called(ctx, identity, id)
	return args.Error(0)
}

func (m *NotificationService) DeleteAll(ctx context.Context, identity *domain.Identity) error {
	args := m.Called(ctx, identity)
	return args.Error(0)
}

func (m *NotificationService) Page(ctx context.Context, identity *domain.Identity, page int, filter domain.NotificationFilter) (*domain.NotificationPage, error) {
	args := m.Called(ctx, identity, page, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.NotificationPage), args.Error(1)
}

func (m *NotificationService) MarkReadAndResolveLink(ctx context.Context, identity *domain.Identity, id int64) (string, error) {
	args := m.Called(ctx, identity, id)
	return args.String(0), args.Error(1)
}

func (m *NotificationService) InvalidateUnread(ctx context.Context, userID int64) {
	m.Called(ctx, userID)
}

func (m *NotificationService) SetBroadcaster(b notification.Broadcaster) {
	m.Called(b)
}
