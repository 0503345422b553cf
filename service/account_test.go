package service_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stockfolio/models"
	"stockfolio/repository"
	"stockfolio/repository/mocks"
	"stockfolio/service"
)

const strongPassword = "Sup3r-Secret-Pw"

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAccountService(t *testing.T, users *mocks.UserRepository, refresh repository.RefreshTokenRepository) (*service.AccountService, *service.TokenService) {
	t.Helper()
	tokens, err := service.NewTokenService("test-secret", "stockfolio", "stockfolio", time.Hour)
	require.NoError(t, err)
	return service.NewAccountService(users, refresh, tokens, time.Hour, quietLogger()), tokens
}

func hashed(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestAccountService_Register_Success(t *testing.T) {
	users := new(mocks.UserRepository)
	svc, tokens := newAccountService(t, users, nil)
	ctx := context.Background()

	users.On("CreateWithRole", ctx, mock.MatchedBy(func(u *models.User) bool {
		assert.Equal(t, "newbie", u.UserName)
		assert.Equal(t, "newbie@example.com", u.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(strongPassword)))
		return true
	}), models.RoleUser).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*models.User)
			u.ID = 5
			u.Roles = []models.Role{{Name: models.RoleUser}}
		}).
		Return(nil).Once()

	result, err := svc.Register(ctx, "newbie", "newbie@example.com", strongPassword)
	require.NoError(t, err)
	assert.Equal(t, uint(5), result.UserID)
	assert.Equal(t, "newbie", result.UserName)
	assert.Equal(t, "newbie@example.com", result.Email)
	assert.Empty(t, result.RefreshToken, "no refresh store configured")

	claims, err := tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "newbie", claims.GivenName)
	assert.Equal(t, []string{models.RoleUser}, claims.Roles)

	users.AssertExpectations(t)
}

func TestAccountService_Register_WeakPassword(t *testing.T) {
	users := new(mocks.UserRepository)
	svc, _ := newAccountService(t, users, nil)

	_, err := svc.Register(context.Background(), "newbie", "newbie@example.com", "weak")

	var policyErr *service.PasswordPolicyError
	require.True(t, errors.As(err, &policyErr))
	assert.NotEmpty(t, policyErr.Problems)
	users.AssertNotCalled(t, "CreateWithRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestAccountService_Register_DuplicateUsername(t *testing.T) {
	users := new(mocks.UserRepository)
	svc, _ := newAccountService(t, users, nil)
	ctx := context.Background()

	users.On("CreateWithRole", ctx, mock.AnythingOfType("*models.User"), models.RoleUser).
		Return(repository.ErrDuplicateEntry).Once()

	_, err := svc.Register(ctx, "taken", "taken@example.com", strongPassword)
	assert.ErrorIs(t, err, service.ErrUsernameTaken)
	assert.ErrorIs(t, err, service.ErrRegistrationFailed)
	users.AssertExpectations(t)
}

func TestAccountService_Register_StorageFailure(t *testing.T) {
	users := new(mocks.UserRepository)
	svc, _ := newAccountService(t, users, nil)
	ctx := context.Background()

	users.On("CreateWithRole", ctx, mock.AnythingOfType("*models.User"), models.RoleUser).
		Return(errors.New("connection reset")).Once()

	_, err := svc.Register(ctx, "newbie", "newbie@example.com", strongPassword)
	assert.ErrorIs(t, err, service.ErrInternalServer)
	assert.NotErrorIs(t, err, service.ErrRegistrationFailed)
}

func TestAccountService_Login(t *testing.T) {
	stored := &models.User{ID: 3, UserName: "alice", Email: "alice@example.com", PasswordHash: hashed(t, strongPassword)}

	tests := []struct {
		name     string
		setup    func(users *mocks.UserRepository)
		password string
		wantErr  error
	}{
		{
			name: "valid credentials",
			setup: func(users *mocks.UserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(stored, nil).Once()
			},
			password: strongPassword,
		},
		{
			name: "wrong password",
			setup: func(users *mocks.UserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(stored, nil).Once()
			},
			password: "Wrong-Password-1",
			wantErr:  service.ErrAuthenticationFailed,
		},
		{
			name: "unknown user",
			setup: func(users *mocks.UserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(nil, repository.ErrNotFound).Once()
			},
			password: strongPassword,
			wantErr:  service.ErrAuthenticationFailed,
		},
		{
			name: "storage failure",
			setup: func(users *mocks.UserRepository) {
				users.On("FindByUsername", mock.Anything, "alice").Return(nil, errors.New("timeout")).Once()
			},
			password: strongPassword,
			wantErr:  service.ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(mocks.UserRepository)
			tt.setup(users)
			svc, _ := newAccountService(t, users, nil)

			result, err := svc.Login(context.Background(), "alice", tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "alice", result.UserName)
				assert.Equal(t, "alice@example.com", result.Email)
				assert.NotEmpty(t, result.Token)
			}
			users.AssertExpectations(t)
		})
	}
}

func TestAccountService_Login_IssuesRefreshToken(t *testing.T) {
	users := new(mocks.UserRepository)
	refresh := new(mocks.RefreshTokenRepository)
	svc, _ := newAccountService(t, users, refresh)
	ctx := context.Background()

	stored := &models.User{ID: 3, UserName: "alice", PasswordHash: hashed(t, strongPassword)}
	users.On("FindByUsername", ctx, "alice").Return(stored, nil).Once()
	refresh.On("Save", ctx, mock.AnythingOfType("string"), uint(3), time.Hour).Return(nil).Once()

	result, err := svc.Login(ctx, "alice", strongPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, result.RefreshToken)

	refresh.AssertExpectations(t)
}

func TestAccountService_Refresh_Rotates(t *testing.T) {
	users := new(mocks.UserRepository)
	refresh := new(mocks.RefreshTokenRepository)
	svc, _ := newAccountService(t, users, refresh)
	ctx := context.Background()

	refresh.On("Consume", ctx, "old-token").Return(uint(3), nil).Once()
	users.On("FindByID", ctx, uint(3)).Return(&models.User{ID: 3, UserName: "alice"}, nil).Once()
	refresh.On("Save", ctx, mock.MatchedBy(func(tok string) bool { return tok != "old-token" }), uint(3), time.Hour).
		Return(nil).Once()

	result, err := svc.Refresh(ctx, "old-token")
	require.NoError(t, err)
	assert.Equal(t, "alice", result.UserName)
	assert.NotEqual(t, "old-token", result.RefreshToken)

	users.AssertExpectations(t)
	refresh.AssertExpectations(t)
}

func TestAccountService_Refresh_UnknownToken(t *testing.T) {
	users := new(mocks.UserRepository)
	refresh := new(mocks.RefreshTokenRepository)
	svc, _ := newAccountService(t, users, refresh)
	ctx := context.Background()

	refresh.On("Consume", ctx, "stale").Return(uint(0), repository.ErrNotFound).Once()

	_, err := svc.Refresh(ctx, "stale")
	assert.ErrorIs(t, err, service.ErrInvalidRefreshToken)
	users.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestAccountService_Refresh_Disabled(t *testing.T) {
	svc, _ := newAccountService(t, new(mocks.UserRepository), nil)

	assert.False(t, svc.RefreshEnabled())
	_, err := svc.Refresh(context.Background(), "anything")
	assert.ErrorIs(t, err, service.ErrRefreshUnavailable)
}

func TestAccountService_ResolveUser(t *testing.T) {
	users := new(mocks.UserRepository)
	svc, _ := newAccountService(t, users, nil)
	ctx := context.Background()

	users.On("FindByUsername", ctx, "alice").Return(&models.User{ID: 9, UserName: "alice"}, nil).Once()
	users.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrNotFound).Once()

	user, err := svc.ResolveUser(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, uint(9), user.ID)

	_, err = svc.ResolveUser(ctx, "ghost")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
