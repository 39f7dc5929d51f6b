package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/SscSPs/teller_ledger_app/internal/apperrors"
	"github.com/SscSPs/teller_ledger_app/internal/core/domain"
	"github.com/SscSPs/teller_ledger_app/internal/dto"
	"github.com/SscSPs/teller_ledger_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statusForKind maps a stable error kind to its HTTP status.
func statusForKind(kind string) int {
	switch kind {
	case apperrors.KindValidation, apperrors.KindSameAccount:
		return http.StatusBadRequest
	case apperrors.KindForbidden:
		return http.StatusForbidden
	case apperrors.KindNotFound:
		return http.StatusNotFound
	case apperrors.KindDuplicateEmail:
		return http.StatusConflict
	case apperrors.KindInactiveAccount, apperrors.KindInsufficientFunds, apperrors.KindCreditLimitExceeded:
		return http.StatusUnprocessableEntity
	case apperrors.KindStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondWithError writes the error body for err. Store and internal failures
// hide their cause from the client.
func respondWithError(c *gin.Context, err error, msg string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	kind := apperrors.KindOf(err)
	status := statusForKind(kind)

	body := dto.ErrorResponse{Kind: kind, Error: err.Error()}
	switch kind {
	case apperrors.KindStore, apperrors.KindInternal:
		logger.Error(msg, slog.String("error", err.Error()), slog.String("kind", kind))
		body.Error = msg
	case apperrors.KindOutcomeUncertain:
		logger.Error(msg, slog.String("error", err.Error()), slog.String("kind", kind))
		body.Error = msg + ": outcome unknown, check the account before retrying"
	default:
		logger.Warn(msg, slog.String("error", err.Error()), slog.String("kind", kind))
	}
	c.JSON(status, body)
}

// bindError reports a malformed request body.
func bindError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: apperrors.KindValidation, Error: "Invalid request format: " + err.Error()})
}

// idParam parses a positive int64 path parameter. It writes the 400 response itself.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Kind: apperrors.KindValidation, Error: name + " must be a positive integer"})
		return 0, false
	}
	return id, true
}

// actorFrom returns the authenticated actor. It writes the 401 response itself.
func actorFrom(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Actor not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return domain.Actor{}, false
	}
	return actor, true
}
