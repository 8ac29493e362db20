package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
	"github.com/jhoicas/vistorias-api/pkg/jwt"
)

const minPasswordLen = 8

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y provisión de cuentas.
// Implementa ports.AccountProvisioner para el registro de clientes.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	cost     int
	now      func() time.Time
}

var _ ports.AccountProvisioner = (*AuthUseCase)(nil)

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg, cost: bcrypt.DefaultCost, now: time.Now}
}

// WithBcryptCost ajusta el costo de bcrypt (tests usan bcrypt.MinCost).
func (uc *AuthUseCase) WithBcryptCost(cost int) *AuthUseCase {
	uc.cost = cost
	return uc
}

// RegisterUser crea una cuenta sin empresa. Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	email := normalizeEmail(in.Email)
	if err := validateCredentials(email, in.Password); err != nil {
		return nil, err
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	user, err := uc.newUser(email, in.Password, in.Name)
	if err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// CreateAccount crea la cuenta o devuelve la existente con ese email, sin tocar su contraseña.
func (uc *AuthUseCase) CreateAccount(ctx context.Context, cred ports.Credentials, profile ports.Profile) (ports.Account, error) {
	email := normalizeEmail(cred.Email)
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return ports.Account{}, err
	}
	if existing != nil {
		return ports.Account{UserID: existing.ID}, nil
	}
	if err := validateCredentials(email, cred.Password); err != nil {
		return ports.Account{}, err
	}
	user, err := uc.newUser(email, cred.Password, profile.Name)
	if err != nil {
		return ports.Account{}, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Carrera con otro alta del mismo email: se reutiliza la cuenta ganadora.
		if domain.KindOf(err) == domain.KindConflict {
			if u, gerr := uc.userRepo.GetByEmail(ctx, email); gerr == nil && u != nil {
				return ports.Account{UserID: u.ID}, nil
			}
		}
		return ports.Account{}, err
	}
	return ports.Account{UserID: user.ID, Created: true}, nil
}

// Login verifica email/password, genera JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) newUser(email, password, name string) (*entity.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), uc.cost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	name = strings.TrimSpace(name)
	if name == "" {
		name = email
	}
	return &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func validateCredentials(email, password string) error {
	if email == "" || !strings.Contains(email, "@") {
		return domain.New(domain.KindInvalidInput, "email inválido")
	}
	if len(password) < minPasswordLen {
		return domain.New(domain.KindInvalidInput, "la contraseña debe tener al menos 8 caracteres")
	}
	return nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		CreatedAt: u.CreatedAt,
	}
}
