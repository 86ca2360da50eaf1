package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/ecom-api/internal/core/domain"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

type RoleService struct {
	repo  ports.RoleRepository
	audit ports.AuditRecorder
	log   zerolog.Logger
}

func NewRoleService(repo ports.RoleRepository, audit ports.AuditRecorder, log zerolog.Logger) *RoleService {
	if audit == nil {
		audit = nopRecorder{}
	}
	return &RoleService{repo: repo, audit: audit, log: log}
}

// List always returns a non-nil slice so an empty collection renders as [].
func (s *RoleService) List(ctx context.Context) ([]*domain.Role, error) {
	roles, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if roles == nil {
		roles = []*domain.Role{}
	}
	return roles, nil
}

func (s *RoleService) Get(ctx context.Context, id string) (*domain.Role, error) {
	return s.repo.FindByID(ctx, id)
}

// Create stores a new active role. Name uniqueness is left to the store.
func (s *RoleService) Create(ctx context.Context, input ports.RoleInput) (*domain.Role, error) {
	if input.Name == "" {
		return nil, domain.ErrRoleNameRequired
	}

	now := time.Now().UTC()
	role, err := s.repo.Create(ctx, &domain.Role{
		Name:        input.Name,
		Slug:        domain.CreateSlug(input.Name),
		Permissions: normalizePermissions(input.Permissions),
		Status:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("role_id", role.ID).Str("slug", role.Slug).Msg("role created")
	s.record(ctx, domain.AuditRoleCreated, role.ID)
	return role, nil
}

// Update re-derives the slug and replaces the permission set.
func (s *RoleService) Update(ctx context.Context, id string, input ports.RoleInput) (*domain.Role, error) {
	if input.Name == "" {
		return nil, domain.ErrRoleNameRequired
	}

	role, err := s.repo.Update(ctx, id, ports.RoleChanges{
		Name:        input.Name,
		Slug:        domain.CreateSlug(input.Name),
		Permissions: normalizePermissions(input.Permissions),
	})
	if err != nil {
		return missingAsNil(err)
	}

	s.record(ctx, domain.AuditRoleUpdated, role.ID)
	return role, nil
}

// ToggleStatus writes !current. It does not read the stored value, so a
// caller passing a stale status will not flip the role.
func (s *RoleService) ToggleStatus(ctx context.Context, id string, current bool) (*domain.Role, error) {
	role, err := s.repo.SetStatus(ctx, id, !current)
	if err != nil {
		return missingAsNil(err)
	}

	s.record(ctx, domain.AuditRoleStatusSet, role.ID)
	return role, nil
}

func (s *RoleService) Delete(ctx context.Context, id string) (*domain.Role, error) {
	role, err := s.repo.Delete(ctx, id)
	if err != nil {
		return missingAsNil(err)
	}

	s.log.Info().Str("role_id", role.ID).Msg("role deleted")
	s.record(ctx, domain.AuditRoleDeleted, role.ID)
	return role, nil
}

func (s *RoleService) record(ctx context.Context, action domain.AuditAction, roleID string) {
	s.audit.Record(domain.AuditEvent{
		Action:    action,
		Actor:     domain.ActorFrom(ctx),
		Subject:   roleID,
		Timestamp: time.Now().UTC(),
	})
}

func missingAsNil(err error) (*domain.Role, error) {
	if errors.Is(err, domain.ErrRoleNotFound) {
		return nil, nil
	}
	return nil, err
}

func normalizePermissions(perms []string) []string {
	if perms == nil {
		return []string{}
	}
	return perms
}
