package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/bootstrap"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
)

type env struct {
	ctx   context.Context
	store *memory.Store
	c     *bootstrap.Container
	now   time.Time
}

func newEnv(t *testing.T) *env {
	t.Helper()
	node, err := snowflake.NewNode(2)
	require.NoError(t, err)
	e := &env{
		ctx:   context.Background(),
		store: memory.NewStore(),
		now:   time.Date(2026, 5, 4, 9, 30, 0, 0, time.UTC),
	}
	e.c = bootstrap.Build(bootstrap.Backend{
		Repos:   e.store.Repos(),
		Billing: e.store.Billing(),
		Tx:      e.store.TxRunner(),
	}, bootstrap.Options{
		JWT:        auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "vistorias-api-test"},
		Node:       node,
		Logger:     zerolog.Nop(),
		BcryptCost: bcrypt.MinCost,
	})
	clock := func() time.Time { return e.now }
	e.c.Companies.WithClock(clock)
	e.c.Clients.WithClock(clock)
	e.c.Orders.WithClock(clock)
	return e
}

func (e *env) account(t *testing.T, email string) string {
	t.Helper()
	acc, err := e.c.Auth.CreateAccount(e.ctx,
		ports.Credentials{Email: email, Password: "segura123"},
		ports.Profile{Email: email, Name: email})
	require.NoError(t, err)
	return acc.UserID
}

// companyWithAdmin crea una cuenta admin y su empresa.
func (e *env) companyWithAdmin(t *testing.T, email, name string) (adminID, companyID string) {
	t.Helper()
	adminID = e.account(t, email)
	c, err := e.c.Companies.CreateCompany(e.ctx, adminID, dto.CreateCompanyRequest{Name: name})
	require.NoError(t, err)
	return adminID, c.ID
}

func (e *env) member(t *testing.T, adminID, companyID, email string, role entity.Role) string {
	t.Helper()
	id := e.account(t, email)
	_, err := e.c.Companies.UpsertMembership(e.ctx, adminID, companyID, dto.UpsertMembershipRequest{Email: email, Role: role})
	require.NoError(t, err)
	return id
}

func (e *env) actions() []string {
	entries := e.store.AuditEntries()
	out := make([]string, 0, len(entries))
	for _, a := range entries {
		out = append(out, a.Action)
	}
	return out
}

func ptr[T any](v T) *T { return &v }
