package ports

import (
	"context"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	// Logout revokes whichever of the given tokens still verify. It never fails.
	Logout(ctx context.Context, accessToken, refreshToken string)
	// Refresh exchanges a refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (string, error)
	// ResolveSession verifies an access token and loads its user. A valid
	// token whose account no longer exists yields (nil, nil).
	ResolveSession(ctx context.Context, accessToken string) (*domain.User, error)
	HashPassword(password string) (string, error)
}
