package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// Order matters: the credential sentinels wrap ErrInvalidCredentials.
var errorTable = []errorMapping{
	{domain.ErrUnknownEmail, http.StatusBadRequest, "Invalid Email"},
	{domain.ErrWrongPassword, http.StatusBadRequest, "Wrong password"},
	{domain.ErrInvalidCredentials, http.StatusBadRequest, "Invalid credentials"},
	{domain.ErrUserExists, http.StatusBadRequest, "Email already exists"},
	{domain.ErrRoleExists, http.StatusBadRequest, "Role already exists"},
	{domain.ErrRoleNotFound, http.StatusNotFound, "Role data not found"},
	{domain.ErrUnauthorized, http.StatusBadRequest, "Unauthorized"},
	{domain.ErrInvalidToken, http.StatusBadRequest, "Invalid Token"},
	{domain.ErrForbidden, http.StatusForbidden, "Access forbidden"},
}

// ResolveError maps a domain error to its HTTP status and client message.
// ok is false for errors the API does not know about.
func ResolveError(err error) (status int, message string, ok bool) {
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Message, true
	}
	for _, m := range errorTable {
		if errors.Is(err, m.err) {
			return m.status, m.message, true
		}
	}
	if errors.Is(err, domain.ErrValidation) {
		return http.StatusBadRequest, err.Error(), true
	}
	return 0, "", false
}

// respondError renders known errors and hands the rest to the central error handler.
func respondError(c echo.Context, err error) error {
	status, msg, ok := ResolveError(err)
	if !ok {
		return err
	}
	return c.JSON(status, messageResponse{Message: msg})
}
