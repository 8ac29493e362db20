package entity

import "time"

// User cuenta autenticable. Las empresas y roles viven en Membership.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserSession puntero a la empresa activa de un usuario (conveniencia de UI).
type UserSession struct {
	UserID          string
	ActiveCompanyID string
	LastActivity    time.Time
}
