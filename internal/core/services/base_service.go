package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/SscSPs/teller_ledger_app/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
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
	logger := s.GetLogger(ctx)
	logger.Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	logger.Debug(msg, keyvals...)
}

// AuthorizeActor checks that the actor's role grants the capability.
func (s *BaseService) AuthorizeActor(ctx context.Context, actor domain.Actor, required domain.Capability) error {
	if actor.Role.Can(required) {
		return nil
	}
	err := fmt.Errorf("%w: role %q lacks %s", apperrors.ErrForbidden, actor.Role, required)
	s.LogInfo(ctx, "Actor not authorized",
		slog.Int64("user_id", actor.UserID),
		slog.String("role", string(actor.Role)),
		slog.String("capability", string(required)))
	return err
}
