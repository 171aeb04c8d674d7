package email

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"jobnexus/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

// Sender is satisfied by the Emails service of a *resend.Client.
type Sender interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

type InterviewEmail struct {
	ToEmail       string
	CandidateName string
	CompanyName   string
	Position      string
	Date          string
	Time          string
	Duration      int
	MeetingURL    string
}

type Service interface {
	SendInterviewInvitation(ctx context.Context, data InterviewEmail) error
	SendInterviewCancelled(ctx context.Context, data InterviewEmail) error
}

type service struct {
	sender    Sender
	config    *config.Config
	templates *template.Template
}

func NewService(cfg *config.Config) Service {
	client := resend.NewClient(cfg.ResendAPIKey)
	return NewServiceWithSender(client.Emails, cfg)
}

func NewServiceWithSender(sender Sender, cfg *config.Config) Service {
	return &service{
		sender:    sender,
		config:    cfg,
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
	}
}

func (s *service) sendEmail(toEmail, subject, templateName string, data interface{}) error {
	tmpl, err := s.templates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone email templates: %w", err)
	}

	var body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("JobNexus <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err = s.sender.Send(params)
	return err
}

func (s *service) SendInterviewInvitation(ctx context.Context, data InterviewEmail) error {
	view := struct {
		Title string
		InterviewEmail
	}{
		Title:          "Interview Invitation",
		InterviewEmail: data,
	}
	return s.sendEmail(data.ToEmail, fmt.Sprintf("Interview invitation: %s", data.Position), "interview_invitation.html", view)
}

func (s *service) SendInterviewCancelled(ctx context.Context, data InterviewEmail) error {
	view := struct {
		Title string
		InterviewEmail
	}{
		Title:          "Interview Cancelled",
		InterviewEmail: data,
	}
	return s.sendEmail(data.ToEmail, fmt.Sprintf("Interview cancelled: %s", data.Position), "interview_cancelled.html", view)
}
