package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MediaService struct {
	mock.Mock
}

func (m *MediaService) PublicURL(storagePath string) string {
	args := m.Called(storagePath)
	return args.String(0)
}

func (m *MediaService) Remove(ctx context.Context, storagePath string) error {
	args := m.Called(ctx, storagePath)
	return args.Error(0)
}
