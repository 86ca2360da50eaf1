package ports

import (
	"context"
	"time"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

// PasswordHasher hashes and verifies plaintext passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns domain.ErrWrongPassword on mismatch.
	Compare(hash, password string) error
}

// TokenManager mints and verifies signed session tokens. Access and refresh
// tokens use independent secrets and lifetimes.
type TokenManager interface {
	IssueAccess(email string) (string, error)
	IssueRefresh(email string) (string, error)
	// VerifyAccess and VerifyRefresh return an error wrapping domain.ErrInvalidToken
	// for bad signatures, malformed input and expired tokens.
	VerifyAccess(token string) (*domain.SessionClaims, error)
	VerifyRefresh(token string) (*domain.SessionClaims, error)
}

// TokenDenylist remembers tokens revoked before their natural expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, until time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
