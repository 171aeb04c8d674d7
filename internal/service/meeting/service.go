package meeting

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"jobnexus/internal/domain"
	"jobnexus/internal/metrics"
	"jobnexus/internal/repository"
	"jobnexus/internal/service/media"
)

// View is what the meeting page renders for one request.
type View struct {
	Decision
	Token       string
	Meeting     *domain.Event
	Position    string
	CompanyName string
	Candidate   string
	LogoURL     string
	Duration    int
	LoginURL    string
}

type Service interface {
	Check(ctx context.Context, token string, identity *domain.Identity) (*View, error)
	// Room applies a step the participant's browser took in the meeting room.
	Room(ctx context.Context, token string, identity *domain.Identity, action RoomAction) (*RoomSnapshot, error)
}

type service struct {
	eventRepo repository.EventRepository
	mediaSvc  media.Service
	rooms     *Rooms
	clock     func() time.Time
	loc       *time.Location
	logger    *zap.Logger
}

// NewService builds the gate. A nil clock means time.Now.
func NewService(eventRepo repository.EventRepository, mediaSvc media.Service, loc *time.Location, clock func() time.Time, logger *zap.Logger) Service {
	if clock == nil {
		clock = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		eventRepo: eventRepo,
		mediaSvc:  mediaSvc,
		rooms:     NewRooms(clock),
		clock:     clock,
		loc:       loc,
		logger:    logger,
	}
}

func (s *service) load(ctx context.Context, token string) (*domain.Event, error) {
	if token == "" {
		return nil, nil
	}
	meeting, err := s.eventRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	return meeting, nil
}

func (s *service) Check(ctx context.Context, token string, identity *domain.Identity) (*View, error) {
	token = strings.TrimSpace(token)

	meeting, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}

	decision := Decide(meeting, identity, s.clock().In(s.loc))
	metrics.GateDecisions.WithLabelValues(string(decision.Outcome)).Inc()

	view := &View{Decision: decision, Token: token, Meeting: meeting}
	switch decision.Outcome {
	case OutcomeNotFound:
		view.Meeting = nil
		return view, nil
	case OutcomeLoginRequired:
		view.LoginURL = LoginURL(token)
		return view, nil
	case OutcomeAccessDenied:
		return view, nil
	}

	view.Position = meeting.PositionTitle()
	view.CompanyName = meeting.InterviewerName()
	view.Candidate = meeting.CandidateName()
	view.Duration = meeting.DurationMinutes
	if s.mediaSvc != nil && meeting.CompanyLogo != nil {
		view.LogoURL = s.mediaSvc.PublicURL(*meeting.CompanyLogo)
	}

	if decision.Admitted() {
		s.logger.Info("meeting admitted",
			zap.String("token", token),
			zap.Int64("user_id", identity.UserID),
			zap.String("role", string(decision.Role)),
		)
	}
	return view, nil
}

// Room re-runs the gate for every step. Admitted participants may do
// anything. Once the window closes or the meeting is called off they may
// still read the room state and leave it.
func (s *service) Room(ctx context.Context, token string, identity *domain.Identity, action RoomAction) (*RoomSnapshot, error) {
	token = strings.TrimSpace(token)

	meeting, err := s.load(ctx, token)
	if err != nil {
		return nil, err
	}
	if meeting == nil {
		return nil, domain.ErrNotFound
	}
	if identity == nil {
		return nil, domain.ErrUnauthenticated
	}

	var displayName string
	switch identity.UserID {
	case meeting.HRUserID:
		displayName = meeting.InterviewerName()
	case meeting.SeekerUserID:
		displayName = meeting.CandidateName()
	default:
		return nil, domain.ErrForbidden
	}

	decision := Decide(meeting, identity, s.clock().In(s.loc))
	if !decision.Admitted() && !action.exitAction() {
		return nil, domain.ErrForbidden
	}

	snap, err := s.rooms.Apply(ctx, token, identity.UserID, displayName, action)
	metrics.OpenRooms.Set(float64(s.rooms.Len()))
	if err != nil && !errors.Is(err, ErrDeviceUnavailable) {
		return nil, err
	}
	if err != nil {
		s.logger.Info("meeting device unavailable",
			zap.String("token", token),
			zap.Int64("user_id", identity.UserID),
			zap.String("action", action.Action),
			zap.Error(err),
		)
	}
	return &snap, nil
}

// LoginURL returns the login page address that comes back to this meeting.
func LoginURL(token string) string {
	back := "/meeting?id=" + url.QueryEscape(token)
	return "/auth/login?redirect=" + url.QueryEscape(back)
}
