package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/routeai/admin-console/internal/core/domain"
	"github.com/routeai/admin-console/internal/core/service"
)

// AdminOnly is the access gate at the transport edge: every console route
// requires the session to resolve to an admin. Denial is terminal for the
// page; there is no retry short of re-authentication.
func AdminOnly() echo.MiddlewareFunc {
	gate := service.NewAccessGate()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session := sessionFrom(c)
			switch gate.Evaluate(session) {
			case domain.AccessGranted:
				return next(c)
			case domain.AccessPending:
				return echo.NewHTTPError(http.StatusUnauthorized, "session not resolved")
			default:
				return c.JSON(http.StatusForbidden, map[string]string{"error": "admin access required"})
			}
		}
	}
}

// sessionFrom builds the explicit session from the claims the Auth middleware
// injected. Nil means the session has not resolved.
func sessionFrom(c echo.Context) *domain.Session {
	operatorID, _ := c.Get("operator_id").(string)
	if operatorID == "" {
		return nil
	}
	email, _ := c.Get("email").(string)
	role, _ := c.Get("role").(string)
	return &domain.Session{
		OperatorID: operatorID,
		Email:      email,
		Role:       domain.Role(role),
	}
}
