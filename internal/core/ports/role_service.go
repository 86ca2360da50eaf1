package ports

import (
	"context"

	"github.com/99minutos/ecom-api/internal/core/domain"
)

// RoleInput carries the editable fields of a role.
type RoleInput struct {
	Name        string
	Permissions []string
}

// RoleService defines role management use cases. Update, ToggleStatus and
// Delete return a nil role without error when the id matches nothing.
type RoleService interface {
	List(ctx context.Context) ([]*domain.Role, error)
	Get(ctx context.Context, id string) (*domain.Role, error)
	Create(ctx context.Context, input RoleInput) (*domain.Role, error)
	Update(ctx context.Context, id string, input RoleInput) (*domain.Role, error)
	// ToggleStatus stores the negation of current, the value the caller believes is stored.
	ToggleStatus(ctx context.Context, id string, current bool) (*domain.Role, error)
	Delete(ctx context.Context, id string) (*domain.Role, error)
}
