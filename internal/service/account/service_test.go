package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"jobnexus/internal/domain"
	"jobnexus/internal/mocks"
	"jobnexus/internal/service/account"
)

var ctx = context.Background()

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

type fixture struct {
	users    *mocks.UserRepository
	accounts *mocks.AccountRepository
	notifs   *mocks.NotificationService
	media    *mocks.MediaService
	svc      account.Service
}

func newFixture() *fixture {
	f := &fixture{
		users:    new(mocks.UserRepository),
		accounts: new(mocks.AccountRepository),
		notifs:   new(mocks.NotificationService),
		media:    new(mocks.MediaService),
	}
	f.svc = account.NewService(f.users, f.accounts, f.notifs, f.media, nil)
	return f
}

func TestService_Delete(t *testing.T) {
	identity := &domain.Identity{UserID: 10, Role: domain.RoleHR}
	input := domain.DeleteAccountInput{ConfirmPassword: "secret", ConfirmText: "DELETE"}

	t.Run("HR account cascades and removes logo", func(t *testing.T) {
		f := newFixture()
		logo := "logos/acme.png"
		f.users.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10, Role: domain.RoleHR, PasswordHash: hashed(t, "secret")}, nil).Once()
		f.users.On("GetCompanyByHRUser", ctx, int64(10)).Return(&domain.Company{ID: 3, HRUserID: 10, Logo: &logo}, nil).Once()
		f.accounts.On("DeleteCascade", ctx, int64(10), domain.RoleHR).Return(nil).Once()
		f.media.On("Remove", ctx, logo).Return(errors.New("bucket gone")).Once()
		f.notifs.On("InvalidateUnread", ctx, int64(10)).Once()

		require.NoError(t, f.svc.Delete(ctx, identity, input))
		f.users.AssertExpectations(t)
		f.accounts.AssertExpectations(t)
		f.media.AssertExpectations(t)
		f.notifs.AssertExpectations(t)
	})

	t.Run("Wrong password", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10, Role: domain.RoleHR, PasswordHash: hashed(t, "other")}, nil).Once()

		assert.ErrorIs(t, f.svc.Delete(ctx, identity, input), domain.ErrInvalidPassword)
		f.accounts.AssertNotCalled(t, "DeleteCascade", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Confirmation text must be exact", func(t *testing.T) {
		f := newFixture()
		f.users.On("GetByID", ctx, int64(10)).Return(&domain.User{ID: 10, Role: domain.RoleHR, PasswordHash: hashed(t, "secret")}, nil).Once()

		err := f.svc.Delete(ctx, identity, domain.DeleteAccountInput{ConfirmPassword: "secret", ConfirmText: "delete"})
		assert.ErrorIs(t, err, domain.ErrConfirmationMismatch)
	})

	t.Run("Missing fields", func(t *testing.T) {
		f := newFixture()
		assert.ErrorIs(t, f.svc.Delete(ctx, identity, domain.DeleteAccountInput{}), domain.ErrValidation)
	})

	t.Run("Seeker account", func(t *testing.T) {
		f := newFixture()
		seeker := &domain.Identity{UserID: 20, Role: domain.RoleSeeker}
		f.users.On("GetByID", ctx, int64(20)).Return(&domain.User{ID: 20, Role: domain.RoleSeeker, PasswordHash: hashed(t, "secret")}, nil).Once()
		f.accounts.On("DeleteCascade", ctx, int64(20), domain.RoleSeeker).Return(nil).Once()
		f.notifs.On("InvalidateUnread", ctx, int64(20)).Once()

		require.NoError(t, f.svc.Delete(ctx, seeker, input))
		f.users.AssertNotCalled(t, "GetCompanyByHRUser", mock.Anything, mock.Anything)
		f.media.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		f := newFixture()
		assert.ErrorIs(t, f.svc.Delete(ctx, nil, input), domain.ErrUnauthenticated)
	})
}
