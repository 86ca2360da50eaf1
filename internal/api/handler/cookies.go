package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

const (
	AccessCookieName  = "accessToken"
	RefreshCookieName = "refreshToken"

	refreshCookiePath = "/auth"
)

// CookieConfig controls the session cookies written on login and refresh.
type CookieConfig struct {
	// Secure is false only in development.
	Secure        bool
	AccessMaxAge  time.Duration
	RefreshMaxAge time.Duration
}

func (cc CookieConfig) setAccess(c echo.Context, token string) {
	c.SetCookie(cc.cookie(AccessCookieName, token, "/", cc.AccessMaxAge))
}

func (cc CookieConfig) setRefresh(c echo.Context, token string) {
	c.SetCookie(cc.cookie(RefreshCookieName, token, refreshCookiePath, cc.RefreshMaxAge))
}

func (cc CookieConfig) clear(c echo.Context) {
	access := cc.cookie(AccessCookieName, "", "/", 0)
	access.MaxAge = -1
	access.Expires = time.Unix(0, 0)
	c.SetCookie(access)

	refresh := cc.cookie(RefreshCookieName, "", refreshCookiePath, 0)
	refresh.MaxAge = -1
	refresh.Expires = time.Unix(0, 0)
	c.SetCookie(refresh)
}

func (cc CookieConfig) cookie(name, value, path string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   cc.Secure,
		SameSite: http.SameSiteStrictMode,
	}
}

func cookieValue(c echo.Context, name string) string {
	ck, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return ck.Value
}
