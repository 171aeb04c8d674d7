package application

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"jobnexus/internal/domain"
	"jobnexus/internal/pkg/validate"
	"jobnexus/internal/repository"
	"jobnexus/internal/service/notify"
)

type Service interface {
	Apply(ctx context.Context, identity *domain.Identity, jobID int64) (*domain.Application, error)
	UpdateStatus(ctx context.Context, identity *domain.Identity, applicationID int64, input domain.UpdateApplicationStatusInput) (*domain.Application, error)
	UpdateRating(ctx context.Context, identity *domain.Identity, applicationID int64, input domain.UpdateRatingInput) error
}

type service struct {
	appRepo   repository.ApplicationRepository
	userRepo  repository.UserRepository
	notifier  notify.Service
	validator *validate.Validator
	logger    *zap.Logger
}

func NewService(appRepo repository.ApplicationRepository, userRepo repository.UserRepository, notifier notify.Service, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		appRepo:   appRepo,
		userRepo:  userRepo,
		notifier:  notifier,
		validator: validate.New(),
		logger:    logger,
	}
}

// Apply files the seeker's application to a job and tells the recruiter who
// posted it. Applying twice to the same job is a conflict.
func (s *service) Apply(ctx context.Context, identity *domain.Identity, jobID int64) (*domain.Application, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if identity.Role != domain.RoleSeeker {
		return nil, domain.ErrForbidden
	}

	job, err := s.appRepo.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	if job == nil {
		return nil, domain.ErrNotFound
	}

	app := &domain.Application{
		JobID:    job.ID,
		SeekerID: identity.UserID,
		JobTitle: job.Title,
		PostedBy: job.PostedBy,
	}
	created, err := s.appRepo.Create(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	if !created {
		return nil, domain.ErrConflict
	}

	if s.notifier != nil {
		s.notifier.NewApplication(ctx, job.PostedBy, s.seekerName(ctx, identity.UserID), job.Title, app.ID)
	}
	return app, nil
}

// seekerName falls back to a generic label when the profile has no name.
func (s *service) seekerName(ctx context.Context, seekerID int64) string {
	if s.userRepo != nil {
		name, err := s.userRepo.GetSeekerName(ctx, seekerID)
		if err != nil {
			s.logger.Warn("failed to load seeker name", zap.Int64("seeker_id", seekerID), zap.Error(err))
		}
		if name != "" {
			return name
		}
	}
	return "A candidate"
}

// UpdateStatus changes the status of an application on one of the caller's
// jobs and tells the seeker when the status actually changed.
func (s *service) UpdateStatus(ctx context.Context, identity *domain.Identity, applicationID int64, input domain.UpdateApplicationStatusInput) (*domain.Application, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	app, err := s.ownedApplication(ctx, identity, applicationID)
	if err != nil {
		return nil, err
	}

	previous := app.Status
	status := domain.ApplicationStatus(input.Status)
	var notes *string
	if trimmed := strings.TrimSpace(input.Notes); trimmed != "" {
		notes = &trimmed
	}

	if err := s.appRepo.UpdateStatus(ctx, app.ID, status, notes); err != nil {
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	app.Status = status
	app.StatusNotes = notes

	if previous != status && s.notifier != nil {
		s.notifier.ApplicationStatusChanged(ctx, app.SeekerID, app.JobTitle, status, app.ID)
	}
	return app, nil
}

func (s *service) UpdateRating(ctx context.Context, identity *domain.Identity, applicationID int64, input domain.UpdateRatingInput) error {
	if err := s.validator.Struct(input); err != nil {
		return err
	}

	app, err := s.ownedApplication(ctx, identity, applicationID)
	if err != nil {
		return err
	}

	if err := s.appRepo.UpdateRating(ctx, app.ID, input.Rating); err != nil {
		return fmt.Errorf("failed to update rating: %w", err)
	}
	return nil
}

func (s *service) ownedApplication(ctx context.Context, identity *domain.Identity, applicationID int64) (*domain.Application, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !identity.IsHR() {
		return nil, domain.ErrForbidden
	}

	app, err := s.appRepo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if app.PostedBy != identity.UserID {
		return nil, domain.ErrForbidden
	}
	return app, nil
}
