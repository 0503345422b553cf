// Package service holds the account logic: password policy, hashing, access
// tokens and refresh-token rotation.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"stockfolio/models"
	"stockfolio/repository"
)

// AuthResult is what a successful login, registration or refresh returns.
// RefreshToken is empty when refresh tokens are disabled.
type AuthResult struct {
	UserID       uint
	UserName     string
	Email        string
	Token        string
	RefreshToken string
}

type AccountService struct {
	users      repository.UserRepository
	refresh    repository.RefreshTokenRepository
	tokens     *TokenService
	refreshTTL time.Duration
	log        logrus.FieldLogger
}

// NewAccountService wires the account service. refresh may be nil, in which
// case no refresh tokens are issued and Refresh fails with
// ErrRefreshUnavailable.
func NewAccountService(users repository.UserRepository, refresh repository.RefreshTokenRepository,
	tokens *TokenService, refreshTTL time.Duration, log logrus.FieldLogger) *AccountService {
	if users == nil {
		panic("UserRepository cannot be nil for AccountService")
	}
	if tokens == nil {
		panic("TokenService cannot be nil for AccountService")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	if refreshTTL <= 0 {
		refreshTTL = 30 * 24 * time.Hour
	}
	return &AccountService{users: users, refresh: refresh, tokens: tokens, refreshTTL: refreshTTL, log: log}
}

// RefreshEnabled reports whether refresh tokens are issued.
func (s *AccountService) RefreshEnabled() bool {
	return s.refresh != nil
}

// Register creates a user with the "User" role and signs it in.
func (s *AccountService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	logCtx := s.log.WithFields(logrus.Fields{"username": username, "email": email})

	if err := CheckPasswordPolicy(password); err != nil {
		logCtx.Info("Registration rejected: password policy")
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &models.User{UserName: username, Email: email, PasswordHash: string(hash)}
	if err := s.users.CreateWithRole(ctx, user, models.RoleUser); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Registration failed: username already exists")
			return nil, ErrUsernameTaken
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered successfully")
	return s.issue(ctx, user)
}

// Login checks the credentials. An unknown user and a wrong password are
// indistinguishable to the caller.
func (s *AccountService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	logCtx := s.log.WithField("username", username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			logCtx.Warn("Login attempt failed: user not found")
			return nil, ErrAuthenticationFailed
		}
		logCtx.WithError(err).Error("Login attempt failed: error finding user")
		return nil, ErrInternalServer
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logCtx.Warn("Login attempt failed: invalid password")
		return nil, ErrAuthenticationFailed
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in successfully")
	return s.issue(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair. The old refresh
// token stops working.
func (s *AccountService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	if s.refresh == nil {
		return nil, ErrRefreshUnavailable
	}

	userID, err := s.refresh.Consume(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		s.log.WithError(err).Error("Failed to consume refresh token")
		return nil, ErrInternalServer
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		s.log.WithError(err).WithField("user_id", userID).Error("Failed to load user for refresh")
		return nil, ErrInternalServer
	}
	return s.issue(ctx, user)
}

// ResolveUser maps the username carried by an access token to its user.
func (s *AccountService) ResolveUser(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user '%s': %w", username, err)
	}
	return user, nil
}

func (s *AccountService) issue(ctx context.Context, user *models.User) (*AuthResult, error) {
	token, err := s.tokens.Create(user)
	if err != nil {
		s.log.WithError(err).WithField("user_id", user.ID).Error("Failed to generate JWT token")
		return nil, ErrInternalServer
	}

	result := &AuthResult{UserID: user.ID, UserName: user.UserName, Email: user.Email, Token: token}
	if s.refresh != nil {
		result.RefreshToken = uuid.NewString()
		if err := s.refresh.Save(ctx, result.RefreshToken, user.ID, s.refreshTTL); err != nil {
			s.log.WithError(err).WithField("user_id", user.ID).Error("Failed to store refresh token")
			return nil, ErrInternalServer
		}
	}
	return result, nil
}
