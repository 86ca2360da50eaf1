package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

const currentUserKey = "me"

// SetCurrentUser stores the identity resolved by the session middleware.
// u may be nil when the token is valid but the account is gone.
func SetCurrentUser(c echo.Context, u *domain.User) {
	c.Set(currentUserKey, u)
}

// CurrentUser returns the identity attached by the session middleware, or nil.
func CurrentUser(c echo.Context) *domain.User {
	u, _ := c.Get(currentUserKey).(*domain.User)
	return u
}
