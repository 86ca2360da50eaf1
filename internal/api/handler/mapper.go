package handler

import (
	"github.com/99minutos/ecom-api/internal/core/domain"
	"github.com/99minutos/ecom-api/internal/core/ports"
)

// --- Request → Service input ---

func toRoleInput(req roleRequest) ports.RoleInput {
	return ports.RoleInput{
		Name:        req.Name,
		Permissions: req.Permissions,
	}
}

// --- Domain → Response ---

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      toRoleResponse(u.Role),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func toRoleResponse(r *domain.Role) *roleResponse {
	if r == nil {
		return nil
	}
	perms := r.Permissions
	if perms == nil {
		perms = []string{}
	}
	return &roleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Permissions: perms,
		Status:      r.Status,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func toRoleResponses(roles []*domain.Role) []*roleResponse {
	out := make([]*roleResponse, 0, len(roles))
	for _, r := range roles {
		out = append(out, toRoleResponse(r))
	}
	return out
}
