package account

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"jobnexus/internal/domain"
	"jobnexus/internal/pkg/validate"
	"jobnexus/internal/repository"
	"jobnexus/internal/service/media"
	"jobnexus/internal/service/notification"
)

type Service interface {
	Delete(ctx context.Context, identity *domain.Identity, input domain.DeleteAccountInput) error
}

type service struct {
	userRepo    repository.UserRepository
	accountRepo repository.AccountRepository
	notifSvc    notification.Service
	mediaSvc    media.Service
	validator   *validate.Validator
	logger      *zap.Logger
}

func NewService(
	userRepo repository.UserRepository,
	accountRepo repository.AccountRepository,
	notifSvc notification.Service,
	mediaSvc media.Service,
	logger *zap.Logger,
) Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &service{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		notifSvc:    notifSvc,
		mediaSvc:    mediaSvc,
		validator:   validate.New(),
		logger:      logger,
	}
}

// Delete removes the account, its sessions and everything it owns after the
// password and the literal confirmation text have been checked.
func (s *service) Delete(ctx context.Context, identity *domain.Identity, input domain.DeleteAccountInput) error {
	if identity == nil {
		return domain.ErrUnauthenticated
	}
	if err := s.validator.Struct(input); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, identity.UserID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return domain.ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.ConfirmPassword)); err != nil {
		return domain.ErrInvalidPassword
	}
	if input.ConfirmText != domain.DeleteAccountConfirmText {
		return domain.ErrConfirmationMismatch
	}

	var logo string
	if user.Role == domain.RoleHR {
		company, err := s.userRepo.GetCompanyByHRUser(ctx, user.ID)
		if err != nil {
			return fmt.Errorf("failed to get company: %w", err)
		}
		if company != nil && company.Logo != nil {
			logo = *company.Logo
		}
	}

	if err := s.accountRepo.DeleteCascade(ctx, user.ID, user.Role); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	if logo != "" && s.mediaSvc != nil {
		if err := s.mediaSvc.Remove(ctx, logo); err != nil {
			s.logger.Warn("failed to remove company logo", zap.Int64("user_id", user.ID), zap.Error(err))
		}
	}
	if s.notifSvc != nil {
		s.notifSvc.InvalidateUnread(ctx, user.ID)
	}

	s.logger.Info("account deleted", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return nil
}
