package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

var (
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.SessionRepository = (*SessionRepo)(nil)
)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// GetByEmail obtiene un usuario por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepo) findOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	query := `SELECT id, email, password_hash, name, created_at, updated_at FROM users ` + where
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// UpdateName replica el nombre del cliente en la cuenta.
func (r *UserRepo) UpdateName(ctx context.Context, id, name string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE users SET name = $2, updated_at = now() WHERE id = $1`, id, name)
	if err != nil {
		return fmt.Errorf("update user name: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SessionRepo empresa activa por usuario.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Get devuelve la sesión del usuario o nil.
func (r *SessionRepo) Get(ctx context.Context, userID string) (*entity.UserSession, error) {
	query := `
		SELECT user_id, COALESCE(active_company_id::text, ''), last_activity
		FROM user_sessions WHERE user_id = $1`
	var s entity.UserSession
	err := r.q.QueryRow(ctx, query, userID).Scan(&s.UserID, &s.ActiveCompanyID, &s.LastActivity)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// Upsert crea o reemplaza el puntero de empresa activa.
func (r *SessionRepo) Upsert(ctx context.Context, s *entity.UserSession) error {
	query := `
		INSERT INTO user_sessions (user_id, active_company_id, last_activity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO UPDATE
		   SET active_company_id = EXCLUDED.active_company_id,
		       last_activity     = EXCLUDED.last_activity`
	if _, err := r.q.Exec(ctx, query, s.UserID, nullString(s.ActiveCompanyID), s.LastActivity); err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}
