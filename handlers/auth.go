package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/metrics"
	"stockfolio/service"
)

// AccountService is what the account endpoints need from the service layer.
type AccountService interface {
	Register(ctx context.Context, username, email, password string) (*service.AuthResult, error)
	Login(ctx context.Context, username, password string) (*service.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*service.AuthResult, error)
}

type AccountHandler struct {
	accounts AccountService
	metrics  *metrics.Metrics
	log      logrus.FieldLogger
}

func NewAccountHandler(accounts AccountService, m *metrics.Metrics, log logrus.FieldLogger) *AccountHandler {
	return &AccountHandler{accounts: accounts, metrics: m, log: log}
}

type LoginRequest struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type NewUserDto struct {
	UserName     string `json:"userName"`
	Email        string `json:"email"`
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

func toNewUserDto(r *service.AuthResult) NewUserDto {
	return NewUserDto{UserName: r.UserName, Email: r.Email, Token: r.Token, RefreshToken: r.RefreshToken}
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.accounts.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			h.metrics.IncrementLoginFailures()
			ErrorResponse(c, http.StatusUnauthorized, "Username not found and/or password incorrect", nil)
			return
		}
		internalError(c, h.log, "Login", err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Login", toNewUserDto(result))
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		var policyErr *service.PasswordPolicyError
		switch {
		case errors.As(err, &policyErr):
			ErrorResponse(c, http.StatusBadRequest, "User not created", map[string][]string{"password": policyErr.Problems})
		case errors.Is(err, service.ErrUsernameTaken):
			ErrorResponse(c, http.StatusBadRequest, "User not created",
				map[string][]string{"username": {"Username '" + req.Username + "' is already taken."}})
		default:
			internalError(c, h.log, "Register", err)
		}
		return
	}

	h.metrics.IncrementUsersRegistered()
	SuccessResponse(c, http.StatusOK, "User created", toNewUserDto(result))
}

// Refresh trades a refresh token for a new token pair.
func (h *AccountHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	result, err := h.accounts.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRefreshToken):
			ErrorResponse(c, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
		case errors.Is(err, service.ErrRefreshUnavailable):
			ErrorResponse(c, http.StatusNotFound, "Refresh tokens are not enabled", nil)
		default:
			internalError(c, h.log, "Refresh", err)
		}
		return
	}

	SuccessResponse(c, http.StatusOK, "Token refreshed", toNewUserDto(result))
}
