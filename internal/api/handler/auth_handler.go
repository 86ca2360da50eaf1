package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ecom-api/internal/api/metrics"
	"github.com/99minutos/ecom-api/internal/core/domain"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
	cookies     CookieConfig
}

func NewAuthHandler(authService ports.AuthService, cookies CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookies: cookies}
}

// Login authenticates a user, sets the session cookies and returns the access token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, domain.ErrMissingFields)
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(loginOutcome(err)).Inc()
		return respondError(c, err)
	}
	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	h.cookies.setAccess(c, res.AccessToken)
	h.cookies.setRefresh(c, res.RefreshToken)

	return c.JSON(http.StatusOK, loginResponse{Token: res.AccessToken, User: toUserResponse(res.User)})
}

// Register creates a new user account. It does not log the user in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return respondError(c, domain.ErrMissingFields)
	}

	user, err := h.authService.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		outcome := "error"
		if errors.Is(err, domain.ErrUserExists) {
			outcome = "duplicate"
		}
		metrics.RegistrationsTotal.WithLabelValues(outcome).Inc()
		return respondError(c, err)
	}
	metrics.RegistrationsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusCreated, registerResponse{
		User:    toUserResponse(user),
		Message: "User created successfully",
	})
}

// Logout revokes whatever session cookies the client still holds and clears them.
// It always succeeds.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	h.authService.Logout(
		c.Request().Context(),
		cookieValue(c, AccessCookieName),
		cookieValue(c, RefreshCookieName),
	)
	h.cookies.clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logout successfully"})
}

// Hash returns the bcrypt hash of the supplied password.
//
// @Summary      Hash a password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      hashRequest  true  "Password to hash"
// @Success      200   {object}  hashResponse
// @Failure      400   {object}  messageResponse
// @Router       /auth/hash [post]
func (h *AuthHandler) Hash(c echo.Context) error {
	var req hashRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, messageResponse{Message: "Invalid payload"})
	}

	hash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, hashResponse{HashPass: hash})
}

// Me returns the user attached by the session middleware, or null.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  userResponse
// @Failure      400  {object}  messageResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserResponse(CurrentUser(c)))
}

// Refresh mints a new access token from the refresh cookie.
//
// @Summary      Refresh the access token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  tokenResponse
// @Failure      400  {object}  messageResponse
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	token, err := h.authService.Refresh(c.Request().Context(), cookieValue(c, RefreshCookieName))
	if err != nil {
		return respondError(c, err)
	}

	h.cookies.setAccess(c, token)
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func loginOutcome(err error) string {
	switch {
	case errors.Is(err, domain.ErrUnknownEmail):
		return "invalid_email"
	case errors.Is(err, domain.ErrWrongPassword):
		return "wrong_password"
	case errors.Is(err, domain.ErrValidation):
		return "invalid_request"
	default:
		return "error"
	}
}
