package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobnexus/internal/events"
)

type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishNotification(ctx context.Context, ev events.NotificationRequested) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

func (m *Publisher) Close() error {
	args := m.Called()
	return args.Error(0)
}
