package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/routeai/admin-console/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Passes upstream rejection statuses through so the console front end
//     sees the user service's own verdict.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Upstream user-service failures keep their message; transport faults
	// surface as a bad gateway with the generic fallback.
	if re, ok := domain.AsRemoteError(err); ok {
		if re.Kind == domain.RemoteTransport {
			return http.StatusBadGateway, re.UserMessage()
		}
		code := re.StatusCode
		if code < 400 || code > 599 {
			code = http.StatusBadGateway
		}
		return code, re.UserMessage()
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrAccessDenied):
		return http.StatusForbidden, "admin access required"
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, domain.ErrRosterNotLoaded):
		return http.StatusConflict, "roster not loaded"
	case errors.Is(err, domain.ErrNoWorkflow),
		errors.Is(err, domain.ErrWorkflowUserMismatch),
		errors.Is(err, domain.ErrConfirmationRequired),
		errors.Is(err, domain.ErrConfirmTokenMismatch),
		errors.Is(err, domain.ErrSubmitInFlight):
		return http.StatusConflict, err.Error()
	case errors.Is(err, domain.ErrRoleUnknown),
		errors.Is(err, domain.ErrSameRole),
		errors.Is(err, domain.ErrOwnAdminRole),
		errors.Is(err, domain.ErrAmountNotInteger),
		errors.Is(err, domain.ErrAmountZero),
		errors.Is(err, domain.ErrReasonRequired):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, domain.ErrDuplicateSubmit):
		return http.StatusTooManyRequests, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
