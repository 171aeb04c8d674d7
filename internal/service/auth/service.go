package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"jobnexus/internal/config"
	"jobnexus/internal/domain"
	"jobnexus/internal/pkg/validate"
	"jobnexus/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// ClientInfo is recorded on the session row.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}

// Session is what the HTTP layer needs to set the cookie.
type Session struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type Service interface {
	Login(ctx context.Context, input domain.LoginInput, client ClientInfo) (*Session, error)
	ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error)
	Logout(ctx context.Context, token string) error
}

type Claims struct {
	SessionID string          `json:"sid"`
	Role      domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type service struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	validator   *validate.Validator
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, cfg *config.Config, logger *zap.Logger) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		cfg:         cfg,
		validator:   validate.New(),
		now:         time.Now,
		logger:      logger,
	}
}

func (s *service) Login(ctx context.Context, input domain.LoginInput, client ClientInfo) (*Session, error) {
	if err := s.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(input.Email)))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	now := s.now()
	row := &repository.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		UserAgent: optional(client.UserAgent),
		IPAddress: optional(client.IPAddress),
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, row); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	token, err := s.sign(row, user.Role, now)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return &Session{Token: token, ExpiresAt: row.ExpiresAt, User: user}, nil
}

// ResolveIdentity turns a cookie value into an identity. Any failure, from a
// bad signature to a revoked row, yields ErrInvalidToken.
func (s *service) ResolveIdentity(ctx context.Context, token string) (*domain.Identity, error) {
	claims, sessionID, err := s.parse(token)
	if err != nil {
		return nil, err
	}

	row, err := s.sessionRepo.GetActive(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if row == nil {
		return nil, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID != row.UserID {
		return nil, ErrInvalidToken
	}

	return &domain.Identity{UserID: row.UserID, Role: claims.Role}, nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	_, sessionID, err := s.parse(token)
	if err != nil {
		return nil
	}
	return s.sessionRepo.Revoke(ctx, sessionID)
}

func (s *service) sign(row *repository.Session, role domain.UserRole, now time.Time) (string, error) {
	claims := &Claims{
		SessionID: row.ID.String(),
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(row.UserID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(row.ExpiresAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.SessionSecret))
}

func (s *service) parse(token string) (*Claims, uuid.UUID, error) {
	if token == "" {
		return nil, uuid.Nil, ErrInvalidToken
	}

	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SessionSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, uuid.Nil, ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, uuid.Nil, ErrInvalidToken
	}

	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, uuid.Nil, ErrInvalidToken
	}
	return claims, sessionID, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
