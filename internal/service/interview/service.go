package interview

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jobnexus/internal/domain"
	"jobnexus/internal/pkg/validate"
	"jobnexus/internal/repository"
	"jobnexus/internal/service/email"
	"jobnexus/internal/service/notify"
)

const defaultDurationMinutes = 60

// Service manages interview meetings on behalf of the owning HR user.
type Service interface {
	Schedule(ctx context.Context, identity *domain.Identity, input domain.ScheduleInterviewInput) (*domain.Event, error)
	Cancel(ctx context.Context, identity *domain.Identity, token string) error
	Reschedule(ctx context.Context, identity *domain.Identity, token string, input domain.RescheduleInterviewInput) error
	Complete(ctx context.Context, identity *domain.Identity, token string) error
}

type service struct {
	eventRepo repository.EventRepository
	appRepo   repository.ApplicationRepository
	notifier  notify.Service
	emailSvc  email.Service
	validator *validate.Validator
	baseURL   string
	logger    *zap.Logger
}

func NewService(
	eventRepo repository.EventRepository,
	appRepo repository.ApplicationRepository,
	notifier notify.Service,
	emailSvc email.Service,
	baseURL string,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		eventRepo: eventRepo,
		appRepo:   appRepo,
		notifier:  notifier,
		emailSvc:  emailSvc,
		validator: validate.New(),
		baseURL:   baseURL,
		logger:    logger,
	}
}

func (s *service) Schedule(ctx context.Context, identity *domain.Identity, input domain.ScheduleInterviewInput) (*domain.Event, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !identity.IsHR() {
		return nil, domain.ErrForbidden
	}
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	app, err := s.appRepo.GetByID(ctx, input.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	if app == nil {
		return nil, domain.ErrNotFound
	}
	if app.PostedBy != identity.UserID {
		return nil, domain.ErrForbidden
	}

	duration := input.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	applicationID := app.ID
	event := &domain.Event{
		MeetingToken:    uuid.New().String(),
		ApplicationID:   &applicationID,
		HRUserID:        identity.UserID,
		SeekerUserID:    app.SeekerID,
		Title:           "Interview: " + app.JobTitle,
		EventDate:       input.EventDate,
		EventTime:       input.EventTime,
		DurationMinutes: duration,
		Status:          domain.MeetingScheduled,
		JobTitle:        &app.JobTitle,
		CompanyName:     app.CompanyName,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create interview: %w", err)
	}

	s.notifier.InterviewScheduled(ctx, app.SeekerID, app.JobTitle, input.EventDate, input.EventTime)

	if s.emailSvc != nil && app.SeekerEmail != "" {
		err := s.emailSvc.SendInterviewInvitation(ctx, email.InterviewEmail{
			ToEmail:       app.SeekerEmail,
			CandidateName: candidateName(app),
			CompanyName:   event.InterviewerName(),
			Position:      app.JobTitle,
			Date:          displayDate(input.EventDate),
			Time:          input.EventTime,
			Duration:      duration,
			MeetingURL:    s.meetingURL(event.MeetingToken),
		})
		if err != nil {
			s.logger.Warn("failed to send interview invitation", zap.Int64("application_id", app.ID), zap.Error(err))
		}
	}

	return event, nil
}

func (s *service) Cancel(ctx context.Context, identity *domain.Identity, token string) error {
	event, err := s.ownedEvent(ctx, identity, token)
	if err != nil {
		return err
	}
	if event.Status.IsTerminal() {
		return fmt.Errorf("%w: interview is already %s", domain.ErrValidation, event.Status)
	}

	if _, err := s.eventRepo.UpdateStatus(ctx, token, identity.UserID, domain.MeetingCancelled); err != nil {
		return fmt.Errorf("failed to cancel interview: %w", err)
	}

	s.notifier.InterviewCancelled(ctx, event.SeekerUserID, event.PositionTitle(), event.EventDate)

	if s.emailSvc != nil && event.SeekerEmail != nil && *event.SeekerEmail != "" {
		err := s.emailSvc.SendInterviewCancelled(ctx, email.InterviewEmail{
			ToEmail:       *event.SeekerEmail,
			CandidateName: event.CandidateName(),
			CompanyName:   event.InterviewerName(),
			Position:      event.PositionTitle(),
			Date:          displayDate(event.EventDate),
		})
		if err != nil {
			s.logger.Warn("failed to send cancellation email", zap.String("token", token), zap.Error(err))
		}
	}
	return nil
}

func (s *service) Reschedule(ctx context.Context, identity *domain.Identity, token string, input domain.RescheduleInterviewInput) error {
	if err := s.validator.Struct(input); err != nil {
		return err
	}
	event, err := s.ownedEvent(ctx, identity, token)
	if err != nil {
		return err
	}
	if event.Status == domain.MeetingCompleted {
		return fmt.Errorf("%w: interview is already completed", domain.ErrValidation)
	}

	if _, err := s.eventRepo.Reschedule(ctx, token, identity.UserID, input.EventDate, input.EventTime); err != nil {
		return fmt.Errorf("failed to reschedule interview: %w", err)
	}

	s.notifier.InterviewRescheduled(ctx, event.SeekerUserID, event.PositionTitle(), input.EventDate, input.EventTime)
	return nil
}

func (s *service) Complete(ctx context.Context, identity *domain.Identity, token string) error {
	event, err := s.ownedEvent(ctx, identity, token)
	if err != nil {
		return err
	}
	if event.Status == domain.MeetingCancelled {
		return fmt.Errorf("%w: interview was cancelled", domain.ErrValidation)
	}

	if _, err := s.eventRepo.UpdateStatus(ctx, token, identity.UserID, domain.MeetingCompleted); err != nil {
		return fmt.Errorf("failed to complete interview: %w", err)
	}
	return nil
}

func (s *service) ownedEvent(ctx context.Context, identity *domain.Identity, token string) (*domain.Event, error) {
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}
	if token == "" {
		return nil, domain.ErrNotFound
	}

	event, err := s.eventRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to get interview: %w", err)
	}
	if event == nil {
		return nil, domain.ErrNotFound
	}
	if event.HRUserID != identity.UserID {
		return nil, domain.ErrForbidden
	}
	return event, nil
}

func (s *service) meetingURL(token string) string {
	return s.baseURL + "/meeting?id=" + url.QueryEscape(token)
}

func candidateName(app *domain.Application) string {
	if app.SeekerName != nil && *app.SeekerName != "" {
		return *app.SeekerName
	}
	return "Candidate"
}

func displayDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return value
	}
	return t.Format("Jan 2, 2006")
}
