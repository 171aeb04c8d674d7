package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"jobnexus/internal/domain"
)

type Notifier struct {
	mock.Mock
}

func (m *Notifier) ApplicationStatusChanged(ctx context.Context, seekerID int64, jobTitle string, status domain.ApplicationStatus, applicationID int64) {
	m.Called(ctx, seekerID, jobTitle, status, applicationID)
}

func (m *Notifier) NewApplication(ctx context.Context, hrUserID int64, seekerName, jobTitle string, applicationID int64) {
	m.Called(ctx, hrUserID, seekerName, jobTitle, applicationID)
}

func (m *Notifier) InterviewScheduled(ctx context.Context, userID int64, jobTitle, eventDate, eventTime string) {
	m.Called(ctx, userID, jobTitle, eventDate, eventTime)
}

func (m *Notifier) InterviewCancelled(ctx context.Context, userID int64, jobTitle, eventDate string) {
	m.Called(ctx, userID, jobTitle, eventDate)
}

func (m *Notifier) InterviewRescheduled(ctx context.Context, userID int64, jobTitle, eventDate, eventTime string) {
	m.Called(ctx, userID, jobTitle, eventDate, eventTime)
}

func (m *Notifier) NewJobMatch(ctx context.Context, seekerID int64, jobTitle, companyName string, jobID int64) {
	m.Called(ctx, seekerID, jobTitle, companyName, jobID)
}

func (m *Notifier) CompanyVerification(ctx context.Context, hrUserID int64, status, reason string) {
	m.Called(ctx, hrUserID, status, reason)
}

func (m *Notifier) ProfileViewed(ctx context.Context, seekerID int64, companyName string) {
	m.Called(ctx, seekerID, companyName)
}

func (m *Notifier) System(ctx context.Context, userID int64, title, message string, link *string) {
	m.Called(ctx, userID, title, message, link)
}
