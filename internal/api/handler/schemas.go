package handler

import "time"

// messageResponse is the envelope for errors and plain acknowledgements.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type hashRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	Token string        `json:"token"`
	User  *userResponse `json:"user"`
}

type registerResponse struct {
	User    *userResponse `json:"user"`
	Message string        `json:"message"`
}

type hashResponse struct {
	HashPass string `json:"hashPass"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// userResponse is the only user shape that leaves the API. It never carries
// the password hash.
type userResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	Role      *roleResponse `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// --- Roles ---

type roleRequest struct {
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type roleStatusRequest struct {
	Status bool `json:"status"`
}

type roleResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Permissions []string  `json:"permissions"`
	Status      bool      `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type roleMutationResponse struct {
	Role    *roleResponse `json:"role"`
	Message string        `json:"message"`
}
