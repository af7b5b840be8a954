package middleware

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// sessionCtxKey is the key used to store the caller's session in the request context.
const sessionCtxKey = contextKey("session")

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session domain.Session) context.Context {
	return context.WithValue(ctx, sessionCtxKey, session)
}

// GetSessionFromContext retrieves the authenticated session from the Gin request context.
// It returns the session and a boolean indicating if it was found.
func GetSessionFromContext(c *gin.Context) (domain.Session, bool) {
	session, ok := c.Request.Context().Value(sessionCtxKey).(domain.Session)
	if !ok || session.UserID == "" {
		return domain.Session{}, false
	}
	return session, true
}
