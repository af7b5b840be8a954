package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/middleware"
	"github.com/SscSPs/print_quota_service/internal/utils/printing"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes the HTTP status and body for a service error. Unexpected errors
// are logged and replaced by fallback so internals never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var (
		insufficient *apperrors.InsufficientBalanceError
		capability   *apperrors.CapabilityMismatchError
		validation   *apperrors.ValidationError
	)
	switch {
	case errors.As(err, &insufficient):
		logger.Info("Insufficient balance", slog.Int64("balance", insufficient.Balance), slog.Int64("required", insufficient.Required))
		c.JSON(http.StatusPaymentRequired, gin.H{
			"error":    err.Error(),
			"balance":  insufficient.Balance,
			"required": insufficient.Required,
		})
	case errors.As(err, &capability):
		logger.Info("Printer capability mismatch", slog.String("error", err.Error()))
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":        err.Error(),
			"requestIndex": capability.RequestIndex,
			"printerID":    capability.PrinterID,
			"feature":      capability.Feature,
		})
	case errors.As(err, &validation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": validation.Field})
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation error", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrConflict), errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// requireSession fetches the caller's session or aborts with 401.
func requireSession(c *gin.Context) (domain.Session, bool) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Session{}, false
	}
	return session, true
}

// bindError reports a request that failed gin binding or validator tags. Page ranges
// rejected by the pagerange tag are reported with the offending token.
func bindError(c *gin.Context, err error, what string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Warn("Failed to bind request for "+what, slog.String("error", err.Error()))

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			if fe.Tag() != "pagerange" {
				continue
			}
			value, _ := fe.Value().(string)
			var rangeErr *apperrors.ValidationError
			if errors.As(printing.ValidatePageRangeSyntax(value), &rangeErr) {
				field := lowerFirst(fe.Field())
				c.JSON(http.StatusBadRequest, gin.H{
					"error": apperrors.NewValidationError(field, rangeErr.Value, rangeErr.Reason).Error(),
					"field": field,
				})
				return
			}
		}
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
