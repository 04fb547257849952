package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/routeai/admin-console/internal/core/domain"
)

// ctxSession rebuilds the operator session from the claims injected by the
// Auth middleware. Presence of operator_id and role proves the middleware
// ran; a token without them is structurally valid but operationally unusable.
func ctxSession(c echo.Context) (domain.Session, error) {
	operatorID, _ := c.Get("operator_id").(string)
	role, _ := c.Get("role").(string)
	if operatorID == "" || role == "" {
		return domain.Session{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	email, _ := c.Get("email").(string)
	return domain.Session{
		OperatorID: operatorID,
		Email:      email,
		Role:       domain.Role(role),
	}, nil
}
