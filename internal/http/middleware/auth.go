package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/speechcoach-backend/internal/http/response"
	"github.com/yungbote/speechcoach-backend/internal/platform/ctxutil"
	"github.com/yungbote/speechcoach-backend/internal/platform/logger"
	"github.com/yungbote/speechcoach-backend/internal/session"
)

// SessionResolver turns a session token into a live session.
type SessionResolver interface {
	SessionFromToken(token string) (string, error)
	Session(ctx context.Context, id string) (*session.State, error)
}

type AuthMiddleware struct {
	log      *logger.Logger
	resolver SessionResolver
}

func NewAuthMiddleware(log *logger.Logger, resolver SessionResolver) *AuthMiddleware {
	return &AuthMiddleware{log: log.With("Middleware", "AuthMiddleware"), resolver: resolver}
}

// RequireSession accepts the token from an Authorization bearer header or a token query parameter.
func (am *AuthMiddleware) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractTokenFromAll(c)
		if tokenString == "" {
			response.AbortUnauthorized(c, "missing or invalid token")
			return
		}
		id, err := am.resolver.SessionFromToken(tokenString)
		if err != nil {
			am.log.Debug("Session token rejected", "error", err)
			response.AbortUnauthorized(c, "missing or invalid token")
			return
		}
		ctx := ctxutil.WithSessionID(c.Request.Context(), id)
		if _, err := am.resolver.Session(ctx, id); err != nil {
			am.log.Debug("Session lookup failed", "session_id", id, "error", err)
			response.AbortUnauthorized(c, "session expired, please log in again")
			return
		}
		c.Request = c.Request.WithContext(ctx)
		c.Set("session_id", id)
		c.Next()
	}
}

func extractTokenFromAll(c *gin.Context) string {
	if qToken := c.Query("token"); qToken != "" {
		return qToken
	}
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
