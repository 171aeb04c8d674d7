package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobnexus/internal/domain"
)

type EventRepository struct {
	mock.Mock
}

func (m *EventRepository) Create(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventRepository) GetByToken(ctx context.Context, token string) (*domain.Event, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Event), args.Error(1)
}

func (m *EventRepository) UpdateStatus(ctx context.Context, token string, hrUserID int64, status domain.MeetingStatus) (int64, error) {
	args := m.Called(ctx, token, hrUserID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EventRepository) Reschedule(ctx context.Context, token string, hrUserID int64, eventDate, eventTime string) (int64, error) {
	args := m.Called(ctx, token, hrUserID, eventDate, eventTime)
	return args.Get(0).(int64), args.Error(1)
}
