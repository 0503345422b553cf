package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/middleware"
	"stockfolio/models"
	"stockfolio/service"
)

// UserResolver maps the username from an access token to the stored user.
type UserResolver interface {
	ResolveUser(ctx context.Context, username string) (*models.User, error)
}

// currentUser resolves the caller. It writes the error response itself and
// reports false when the request cannot continue.
func currentUser(c *gin.Context, users UserResolver, log logrus.FieldLogger) (*models.User, bool) {
	username, ok := middleware.Username(c)
	if !ok {
		ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
		return nil, false
	}

	user, err := users.ResolveUser(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			ErrorResponse(c, http.StatusUnauthorized, "User not authenticated", nil)
			return nil, false
		}
		internalError(c, log, "ResolveUser", err)
		return nil, false
	}
	return user, true
}
