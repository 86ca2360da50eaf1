package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ecom-api/internal/api/handler"
)

// RequirePermission lets the request through only when the session user's
// role is active and grants permission. An empty permission disables the check.
// It must run after Session.
func RequirePermission(permission string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if permission == "" {
			return next
		}
		return func(c echo.Context) error {
			user := handler.CurrentUser(c)
			if user == nil || !user.Role.Allows(permission) {
				return echo.NewHTTPError(http.StatusForbidden, "Access forbidden")
			}
			return next(c)
		}
	}
}
