package middleware

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/utils"
	"github.com/gin-gonic/gin"
)

// paymentServiceUserID identifies the payment collaborator in logs and ledger audit fields.
const paymentServiceUserID = "payment-service"

// ServiceKeyAuth authenticates trusted collaborators with an x-api-key header checked
// against a bcrypt hash. An empty hash disables the routes it guards.
func ServiceKeyAuth(keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())
		if keyHash == "" {
			logger.Warn("Service key not configured, rejecting collaborator request")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Service authentication not configured"})
			return
		}

		apiKey := c.GetHeader("x-api-key")
		if apiKey == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "x-api-key header required"})
			return
		}

		if !utils.CheckServiceKey(apiKey, keyHash) {
			logger.Warn("Invalid service key")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid service key"})
			return
		}

		session := domain.Session{UserID: paymentServiceUserID, Role: domain.RoleService}
		ctx := WithSession(c.Request.Context(), session)
		ctx = WithLogger(ctx, logger.With(slog.String("caller", paymentServiceUserID)))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
