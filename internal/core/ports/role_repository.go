package ports

import (
	"context"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

// RoleRepository persists roles. Lookups by an unknown or malformed id
// return domain.ErrRoleNotFound; name collisions return domain.ErrRoleExists.
type RoleRepository interface {
	List(ctx context.Context) ([]*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, role *domain.Role) (*domain.Role, error)
	Update(ctx context.Context, id string, changes RoleChanges) (*domain.Role, error)
	SetStatus(ctx context.Context, id string, status bool) (*domain.Role, error)
	Delete(ctx context.Context, id string) (*domain.Role, error)
}

// RoleChanges replaces name, slug and permissions of a role wholesale.
type RoleChanges struct {
	Name        string
	Slug        string
	Permissions []string
}
