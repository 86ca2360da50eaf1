package domain

import "time"

// Role is an authorization record assigned to users.
type Role struct {
	ID          string
	Name        string
	Slug        string
	Permissions []string
	Status      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Allows reports whether an active role grants permission.
func (r *Role) Allows(permission string) bool {
	if r == nil || !r.Status {
		return false
	}
	for _, p := range r.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
