package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"stockfolio/service"
)

// Context keys set by JWTAuth.
const (
	ContextUserID   = "user_id"
	ContextUsername = "username"
)

var ErrMissingAuthHeader = errors.New("missing Authorization header")

// TokenParser verifies an access token and returns its claims.
type TokenParser interface {
	Parse(token string) (*service.Claims, error)
}

// JWTAuth rejects requests without a valid bearer token and stores the
// caller's user id and username in the context.
func JWTAuth(tokens TokenParser, log logrus.FieldLogger) gin.HandlerFunc {
	if tokens == nil {
		panic("TokenParser cannot be nil for JWTAuth middleware")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return func(c *gin.Context) {
		tokenString, err := extractToken(c)
		if err != nil {
			log.WithError(err).Warn("Auth middleware: no usable bearer token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header is required"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			log.WithError(err).Warn("Auth middleware: invalid token")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		userID, err := claims.UserID()
		if err != nil || claims.GivenName == "" {
			log.WithError(err).Warn("Auth middleware: token carries no user")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextUsername, claims.GivenName)
		c.Next()
	}
}

// UserID returns the authenticated user's id, if any.
func UserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// Username returns the authenticated user's name, if any.
func Username(c *gin.Context) (string, bool) {
	v, ok := c.Get(ContextUsername)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok && name != ""
}

func extractToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", ErrMissingAuthHeader
	}
	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header is not a bearer token")
	}
	return parts[1], nil
}
