package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/ecom-api/internal/core/domain"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

// AuthService implements login, registration and session handling.
type AuthService struct {
	users    ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenManager
	denylist ports.TokenDenylist
	audit    ports.AuditRecorder
	log      zerolog.Logger
}

// NewAuthService wires the auth use cases. denylist and audit may be nil.
func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenManager,
	denylist ports.TokenDenylist,
	audit ports.AuditRecorder,
	log zerolog.Logger,
) *AuthService {
	if audit == nil {
		audit = nopRecorder{}
	}
	return &AuthService{
		users:    users,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		audit:    audit,
		log:      log,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.record(ctx, domain.AuditLoginFailed, email)
			return nil, domain.ErrUnknownEmail
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		if errors.Is(err, domain.ErrWrongPassword) {
			s.record(ctx, domain.AuditLoginFailed, email)
			return nil, domain.ErrWrongPassword
		}
		return nil, fmt.Errorf("login: compare password: %w", err)
	}

	access, err := s.tokens.IssueAccess(user.Email)
	if err != nil {
		return nil, fmt.Errorf("login: issue access token: %w", err)
	}
	refresh, err := s.tokens.IssueRefresh(user.Email)
	if err != nil {
		return nil, fmt.Errorf("login: issue refresh token: %w", err)
	}

	s.record(ctx, domain.AuditLogin, user.Email)
	s.log.Info().Str("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{AccessToken: access, RefreshToken: refresh, User: user}, nil
}

// Register hashes the password and creates the user. Email uniqueness is
// enforced by the store; there is no existence probe.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, domain.ErrMissingFields
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.record(ctx, domain.AuditRegister, created.Email)
	s.log.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *AuthService) Logout(ctx context.Context, accessToken, refreshToken string) {
	var subject string
	if claims := s.revoke(ctx, accessToken, s.tokens.VerifyAccess); claims != nil {
		subject = claims.Email
	}
	if claims := s.revoke(ctx, refreshToken, s.tokens.VerifyRefresh); claims != nil && subject == "" {
		subject = claims.Email
	}
	if subject != "" {
		s.record(ctx, domain.AuditLogout, subject)
	}
}

// revoke denylists token until its expiry when it still verifies.
func (s *AuthService) revoke(ctx context.Context, token string, verify func(string) (*domain.SessionClaims, error)) *domain.SessionClaims {
	if token == "" {
		return nil
	}
	claims, err := verify(token)
	if err != nil {
		return nil
	}
	if s.denylist != nil {
		if err := s.denylist.Revoke(ctx, token, claims.ExpiresAt); err != nil {
			s.log.Warn().Err(err).Msg("failed to revoke token")
		}
	}
	return claims
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domain.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyRefresh(refreshToken)
	if err != nil {
		return "", err
	}
	if s.isRevoked(ctx, refreshToken) {
		return "", domain.ErrInvalidToken
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrInvalidToken
		}
		return "", fmt.Errorf("refresh: %w", err)
	}

	access, err := s.tokens.IssueAccess(user.Email)
	if err != nil {
		return "", fmt.Errorf("refresh: issue access token: %w", err)
	}

	s.record(ctx, domain.AuditTokenRefresh, user.Email)
	return access, nil
}

func (s *AuthService) ResolveSession(ctx context.Context, accessToken string) (*domain.User, error) {
	if accessToken == "" {
		return nil, domain.ErrUnauthorized
	}

	claims, err := s.tokens.VerifyAccess(accessToken)
	if err != nil {
		return nil, err
	}
	if s.isRevoked(ctx, accessToken) {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.users.FindByEmail(ctx, claims.Email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("email", claims.Email).Msg("valid token for missing account")
			return nil, nil
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return user, nil
}

func (s *AuthService) HashPassword(password string) (string, error) {
	return s.hasher.Hash(password)
}

// isRevoked fails open: a denylist outage must not lock every user out.
func (s *AuthService) isRevoked(ctx context.Context, token string) bool {
	if s.denylist == nil {
		return false
	}
	revoked, err := s.denylist.IsRevoked(ctx, token)
	if err != nil {
		s.log.Warn().Err(err).Msg("denylist check failed, accepting token")
		return false
	}
	return revoked
}

func (s *AuthService) record(ctx context.Context, action domain.AuditAction, subject string) {
	s.audit.Record(domain.AuditEvent{
		Action:    action,
		Actor:     domain.ActorFrom(ctx),
		Subject:   subject,
		Timestamp: time.Now().UTC(),
	})
}

type nopRecorder struct{}

func (nopRecorder) Record(domain.AuditEvent) {}
