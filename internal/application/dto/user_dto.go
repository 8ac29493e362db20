package dto

import "time"

// RegisterRequest alta de cuenta (sin empresa).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserResponse salida de una cuenta (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token JWT + cuenta. El token solo identifica al actor; los roles se
// resuelven por empresa en cada petición.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
