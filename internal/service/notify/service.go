package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobnexus/internal/domain"
	"jobnexus/internal/events"
	"jobnexus/internal/pkg/i18n"
)

const (
	displayDate = "Jan 2, 2006"
	displayTime = "3:04 PM"
)

// Service formats collaborator notifications and publishes them. Nothing here
// returns an error: delivery is best-effort and never blocks the caller.
type Service interface {
	ApplicationStatusChanged(ctx context.Context, seekerID int64, jobTitle string, status domain.ApplicationStatus, applicationID int64)
	NewApplication(ctx context.Context, hrUserID int64, seekerName, jobTitle string, applicationID int64)
	InterviewScheduled(ctx context.Context, userID int64, jobTitle, eventDate, eventTime string)
	InterviewCancelled(ctx context.Context, userID int64, jobTitle, eventDate string)
	InterviewRescheduled(ctx context.Context, userID int64, jobTitle, eventDate, eventTime string)
	NewJobMatch(ctx context.Context, seekerID int64, jobTitle, companyName string, jobID int64)
	CompanyVerification(ctx context.Context, hrUserID int64, status, reason string)
	ProfileViewed(ctx context.Context, seekerID int64, companyName string)
	System(ctx context.Context, userID int64, title, message string, link *string)
}

type service struct {
	publisher events.Publisher
	locale    string
	logger    *zap.Logger
}

func NewService(publisher events.Publisher, locale string, logger *zap.Logger) Service {
	if locale == "" {
		locale = i18n.DefaultLocale
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{publisher: publisher, locale: locale, logger: logger}
}

func (s *service) ApplicationStatusChanged(ctx context.Context, seekerID int64, jobTitle string, status domain.ApplicationStatus, applicationID int64) {
	args := map[string]string{"job": jobTitle, "status": ucfirst(string(status))}

	titleKey := "application.status." + string(status)
	title := i18n.Format(s.locale, titleKey, args)
	if title == titleKey {
		title = i18n.Translate(s.locale, "application.status.default")
	}

	s.publish(ctx, seekerID, domain.NotifApplication, title,
		i18n.Format(s.locale, "application.status.message", args),
		fmt.Sprintf("/seeker/applications.php?id=%d", applicationID))
}

func (s *service) NewApplication(ctx context.Context, hrUserID int64, seekerName, jobTitle string, applicationID int64) {
	args := map[string]string{"seeker": seekerName, "job": jobTitle}
	s.publish(ctx, hrUserID, domain.NotifApplication,
		i18n.Translate(s.locale, "application.new.title"),
		i18n.Format(s.locale, "application.new.message", args),
		fmt.Sprintf("/hr/applications.php?id=%d", applicationID))
}

func (s *service) InterviewScheduled(ctx context.Context, userID int64, jobTitle, eventDate, eventTime string) {
	args := map[string]string{"job": jobTitle, "date": formatDate(eventDate), "time": formatTime(eventTime)}
	s.publish(ctx, userID, domain.NotifInterview,
		i18n.Translate(s.locale, "interview.scheduled.title"),
		i18n.Format(s.locale, "interview.scheduled.message", args),
		"/seeker/calendar.php")
}

func (s *service) InterviewCancelled(ctx context.Context, userID int64, jobTitle, eventDate string) {
	args := map[string]string{"job": jobTitle, "date": formatDate(eventDate)}
	s.publish(ctx, userID, domain.NotifInterview,
		i18n.Translate(s.locale, "interview.cancelled.title"),
		i18n.Format(s.locale, "interview.cancelled.message", args),
		"/seeker/calendar.php")
}

func (s *service) InterviewRescheduled(ctx context.Context, userID int64, jobTitle, eventDate, eventTime string) {
	args := map[string]string{"job": jobTitle, "date": formatDate(eventDate), "time": formatTime(eventTime)}
	s.publish(ctx, userID, domain.NotifInterview,
		i18n.Translate(s.locale, "interview.rescheduled.title"),
		i18n.Format(s.locale, "interview.rescheduled.message", args),
		"/seeker/calendar.php")
}

func (s *service) NewJobMatch(ctx context.Context, seekerID int64, jobTitle, companyName string, jobID int64) {
	args := map[string]string{"job": jobTitle, "company": companyName}
	s.publish(ctx, seekerID, domain.NotifJob,
		i18n.Translate(s.locale, "job.match.title"),
		i18n.Format(s.locale, "job.match.message", args),
		fmt.Sprintf("/jobs/view.php?id=%d", jobID))
}

func (s *service) CompanyVerification(ctx context.Context, hrUserID int64, status, reason string) {
	var title, message string
	if status == "verified" {
		title = i18n.Translate(s.locale, "company.verified.title")
		message = i18n.Translate(s.locale, "company.verified.message")
	} else {
		title = i18n.Translate(s.locale, "company.unverified.title")
		message = i18n.Format(s.locale, "company.unverified.message", map[string]string{"status": ucfirst(status)})
		if reason != "" {
			message += i18n.Format(s.locale, "company.unverified.reason", map[string]string{"reason": reason})
		}
	}
	s.publish(ctx, hrUserID, domain.NotifSystem, title, message, "/hr/company.php")
}

func (s *service) ProfileViewed(ctx context.Context, seekerID int64, companyName string) {
	s.publish(ctx, seekerID, domain.NotifSystem,
		i18n.Translate(s.locale, "profile.viewed.title"),
		i18n.Format(s.locale, "profile.viewed.message", map[string]string{"company": companyName}),
		"/seeker/profile.php")
}

func (s *service) System(ctx context.Context, userID int64, title, message string, link *string) {
	s.send(ctx, events.NotificationRequested{
		UserID:  userID,
		Type:    domain.NotifSystem.String(),
		Title:   title,
		Message: message,
		Link:    link,
	})
}

func (s *service) publish(ctx context.Context, userID int64, kind domain.NotificationType, title, message, link string) {
	s.send(ctx, events.NotificationRequested{
		UserID:  userID,
		Type:    kind.String(),
		Title:   title,
		Message: message,
		Link:    &link,
	})
}

func (s *service) send(ctx context.Context, ev events.NotificationRequested) {
	if s.publisher == nil {
		return
	}
	ev.RequestedAt = time.Now()
	if err := s.publisher.PublishNotification(ctx, ev); err != nil {
		s.logger.Warn("failed to publish notification",
			zap.Int64("user_id", ev.UserID),
			zap.String("type", ev.Type),
			zap.Error(err),
		)
	}
}

func ucfirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatDate(value string) string {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(value))
	if err != nil {
		return value
	}
	return t.Format(displayDate)
}

func formatTime(value string) string {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(displayTime)
		}
	}
	return value
}
