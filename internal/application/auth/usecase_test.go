package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
	"github.com/jhoicas/vistorias-api/pkg/jwt"
)

const secret = "secreto-de-prueba"

func newAuth() *auth.AuthUseCase {
	store := memory.NewStore()
	return auth.NewAuthUseCase(store.Repos().Users, auth.JWTConfig{
		Secret: secret, ExpMinutes: 30, Issuer: "vistorias-api-test",
	}).WithBcryptCost(bcrypt.MinCost)
}

func TestRegisterUser_YLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Ana@Eagle.com ", Password: "segura123", Name: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@eagle.com", u.Email)
	assert.Equal(t, "Ana", u.Name)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@eagle.com", Password: "segura123"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	sub, err := jwt.Parse(secret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, sub)
}

func TestRegisterUser_Errores(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@eagle.com", Password: "segura123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@eagle.com", Password: "otra12345"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "sin-arroba", Password: "segura123"})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "bia@eagle.com", Password: "corta"})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}

func TestRegisterUser_NombrePorDefecto(t *testing.T) {
	u, err := newAuth().RegisterUser(context.Background(), dto.RegisterRequest{Email: "ana@eagle.com", Password: "segura123"})
	require.NoError(t, err)
	assert.Equal(t, "ana@eagle.com", u.Name)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "ana@eagle.com", Password: "segura123"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@eagle.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@eagle.com", Password: "segura123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCreateAccount_Idempotente(t *testing.T) {
	ctx := context.Background()
	uc := newAuth()

	first, err := uc.CreateAccount(ctx, ports.Credentials{Email: "joao@cliente.com", Password: "segura123"}, ports.Profile{Name: "João"})
	require.NoError(t, err)
	assert.True(t, first.Created)

	// Un email existente devuelve la misma cuenta sin validar ni aplicar la contraseña.
	again, err := uc.CreateAccount(ctx, ports.Credentials{Email: "JOAO@cliente.com", Password: "x"}, ports.Profile{Name: "Outro"})
	require.NoError(t, err)
	assert.Equal(t, first.UserID, again.UserID)
	assert.False(t, again.Created)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "joao@cliente.com", Password: "segura123"})
	assert.NoError(t, err, "la contraseña original sigue vigente")

	_, err = uc.CreateAccount(ctx, ports.Credentials{Email: "nuevo@cliente.com", Password: "x"}, ports.Profile{})
	assert.Equal(t, domain.KindInvalidInput, domain.KindOf(err))
}
