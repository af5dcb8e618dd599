package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Kaidothouse/expense-tracker/internal/config"
	"github.com/Kaidothouse/expense-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

const userIDKey = "userID"

var errUnauthorized = errors.New("unauthorized")

// CallerResolver extracts the caller's user id from a request. The rest
// of the system only ever sees the resolved id; how it was carried is a
// transport concern.
type CallerResolver func(c *gin.Context) (uint, error)

// HeaderResolver reads a numeric user id from the given header. This is
// the development stand-in for real authentication: absent or
// non-numeric values are rejected outright.
func HeaderResolver(header string) CallerResolver {
	return func(c *gin.Context) (uint, error) {
		raw := c.GetHeader(header)
		if raw == "" {
			return 0, errUnauthorized
		}
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return 0, errUnauthorized
		}
		return uint(id), nil
	}
}

// TokenResolver reads the user id from a bearer JWT's user_id claim.
func TokenResolver(secret string) CallerResolver {
	return func(c *gin.Context) (uint, error) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			return 0, errUnauthorized
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return 0, errUnauthorized
		}
		claims, err := util.ParseToken(secret, parts[1])
		if err != nil || claims.ExpiresAt == nil || claims.ExpiresAt.Before(time.Now()) {
			return 0, errUnauthorized
		}
		if claims.UserID == 0 {
			return 0, errUnauthorized
		}
		return claims.UserID, nil
	}
}

// ResolverFromConfig picks the caller resolver for the configured auth
// mode.
func ResolverFromConfig(cfg config.AuthConfig) CallerResolver {
	if cfg.Mode == "token" {
		return TokenResolver(cfg.JWTSecret)
	}
	header := cfg.Header
	if header == "" {
		header = "x-user-id"
	}
	return HeaderResolver(header)
}

// Auth rejects requests whose caller cannot be resolved, before any
// handler logic runs, and stashes the resolved id in the context.
func Auth(resolve CallerResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := resolve(c)
		if err != nil {
			util.Message(c, http.StatusUnauthorized, "Unauthorized")
			c.Abort()
			return
		}
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CallerID returns the resolved user id set by Auth.
func CallerID(c *gin.Context) uint {
	return c.GetUint(userIDKey)
}
