package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobnexus/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendInterviewInvitation(ctx context.Context, data email.InterviewEmail) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *EmailService) SendInterviewCancelled(ctx context.Context, data email.InterviewEmail) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}
