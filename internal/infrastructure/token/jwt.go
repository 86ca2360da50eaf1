// Package token issues and verifies the HS256 session tokens handed to clients.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

// Config holds the signing material. It is read once at startup.
type Config struct {
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
}

// sessionClaims serialises to {"email": ..., "exp": ...} and nothing else.
type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type signer struct {
	secret []byte
	ttl    time.Duration
}

// Manager implements ports.TokenManager.
type Manager struct {
	access  signer
	refresh signer
	now     func() time.Time
}

// Option customises a Manager.
type Option func(*Manager)

// WithClock replaces time.Now for issuing and validating tokens.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(cfg Config, opts ...Option) (*Manager, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, errors.New("token: access and refresh secrets are required")
	}
	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, errors.New("token: lifetimes must be positive")
	}

	m := &Manager{
		access:  signer{secret: []byte(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: signer{secret: []byte(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

func (m *Manager) IssueAccess(email string) (string, error) {
	return m.issue(m.access, email)
}

func (m *Manager) IssueRefresh(email string) (string, error) {
	return m.issue(m.refresh, email)
}

func (m *Manager) VerifyAccess(token string) (*domain.SessionClaims, error) {
	return m.verify(m.access, token)
}

func (m *Manager) VerifyRefresh(token string) (*domain.SessionClaims, error) {
	return m.verify(m.refresh, token)
}

func (m *Manager) issue(s signer, email string) (string, error) {
	claims := sessionClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(m.now().Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *Manager) verify(s signer, token string) (*domain.SessionClaims, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (interface{}, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidToken, err)
	}
	if claims.Email == "" {
		return nil, fmt.Errorf("%w: missing email claim", domain.ErrInvalidToken)
	}

	return &domain.SessionClaims{
		Email:     claims.Email,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
