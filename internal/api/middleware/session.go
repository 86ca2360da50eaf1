package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ecom-api/internal/api/handler"
	"github.com/99minutos/ecom-api/internal/core/domain"
)

// SessionResolver turns an access token into the user it belongs to.
type SessionResolver interface {
	ResolveSession(ctx context.Context, accessToken string) (*domain.User, error)
}

// Session reads the access token cookie, resolves it and attaches the user
// to the request. A valid token for a deleted account continues with no user.
func Session(resolver SessionResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ck, err := c.Cookie(handler.AccessCookieName)
			if err != nil || ck.Value == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Unauthorized")
			}

			user, err := resolver.ResolveSession(c.Request().Context(), ck.Value)
			if err != nil {
				switch {
				case errors.Is(err, domain.ErrUnauthorized):
					return echo.NewHTTPError(http.StatusBadRequest, "Unauthorized")
				case errors.Is(err, domain.ErrInvalidToken):
					return echo.NewHTTPError(http.StatusBadRequest, "Invalid Token")
				}
				return err
			}

			handler.SetCurrentUser(c, user)
			if user != nil {
				req := c.Request()
				c.SetRequest(req.WithContext(domain.WithActor(req.Context(), user.Email)))
			}

			return next(c)
		}
	}
}
