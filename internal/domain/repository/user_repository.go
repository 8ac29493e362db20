package repository

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para cuentas (User).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	UpdateName(ctx context.Context, id, name string) error
}

// SessionRepository puntero de empresa activa por usuario.
type SessionRepository interface {
	Get(ctx context.Context, userID string) (*entity.UserSession, error)
	Upsert(ctx context.Context, s *entity.UserSession) error
}
