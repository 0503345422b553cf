package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrAuthenticationFailed = errors.New("username not found and/or password incorrect")
	ErrRegistrationFailed   = errors.New("registration failed")
	ErrUsernameTaken        = fmt.Errorf("%w: username is already taken", ErrRegistrationFailed)
	ErrInvalidRefreshToken  = errors.New("refresh token is invalid or expired")
	ErrRefreshUnavailable   = errors.New("refresh tokens are not enabled")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidToken         = errors.New("invalid token")
	ErrInternalServer       = errors.New("internal server error")
)

// PasswordPolicyError lists every rule a rejected password broke.
type PasswordPolicyError struct {
	Problems []string
}

func (e *PasswordPolicyError) Error() string {
	return "password does not meet policy: " + strings.Join(e.Problems, " ")
}

func (e *PasswordPolicyError) Unwrap() error {
	return ErrRegistrationFailed
}
