package domain

import "time"

// User models an account that can sign in. PasswordHash never leaves the
// service layer; transport code maps users through an explicit view.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	// RoleID references the assigned role; Role is populated on reads that join it.
	RoleID    string
	Role      *Role
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SessionClaims is the identity carried by access and refresh tokens.
type SessionClaims struct {
	Email     string
	ExpiresAt time.Time
}
