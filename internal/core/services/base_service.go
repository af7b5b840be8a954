package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	// Clock returns the current time. Tests replace it to control expiry.
	Clock func() time.Time
}

// Option is a functional option applied to every service's BaseService.
type Option func(*BaseService)

// WithClock replaces the wall clock used for timestamps and expiry checks.
func WithClock(clock func() time.Time) Option {
	return func(s *BaseService) {
		s.Clock = clock
	}
}

func (s *BaseService) apply(options []Option) {
	for _, option := range options {
		option(s)
	}
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+2)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// Now returns the service clock's current time in UTC.
func (s *BaseService) Now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock().UTC()
}

// requireSession rejects calls that arrive without an authenticated user.
func requireSession(session domain.Session) error {
	if session.UserID == "" {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// requireOwner hides resources owned by someone else behind a NotFoundError so that
// IDs cannot be probed. Administrators see everything.
func requireOwner(session domain.Session, ownerID, resource, id string) error {
	if session.UserID == ownerID || session.IsAdmin() {
		return nil
	}
	return apperrors.NewNotFoundError(resource, id)
}
