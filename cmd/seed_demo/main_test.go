package main

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/bootstrap"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
)

func TestSeed_Memoria(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	node, err := snowflake.NewNode(3)
	require.NoError(t, err)
	c := bootstrap.Build(bootstrap.Backend{
		Repos: store.Repos(), Billing: store.Billing(), Tx: store.TxRunner(),
	}, bootstrap.Options{
		JWT:        auth.JWTConfig{Secret: "s", ExpMinutes: 5, Issuer: "seed-test"},
		Node:       node,
		Logger:     zerolog.Nop(),
		BcryptCost: bcrypt.MinCost,
	})

	res, err := seed(ctx, c, "admin@eagle.com", demoPassword, zerolog.Nop())
	require.NoError(t, err)
	assert.Len(t, res.ClientIDs, 3)
	assert.Equal(t, []string{"OS-000001", "OS-000002", "OS-000003"}, res.Orders)

	board, err := c.Orders.GetOrdersByStatus(ctx, res.AdminID, res.CompanyID)
	require.NoError(t, err)
	require.Len(t, board[entity.StatusAberta], 3)
	priorities := map[entity.Priority]bool{}
	for _, o := range board[entity.StatusAberta] {
		priorities[o.Priority] = true
		assert.Equal(t, entity.ServiceVistoria, o.ServiceType)
	}
	assert.Len(t, priorities, 3)

	// Los clientes demo pueden entrar con la misma contraseña.
	_, err = c.Auth.Login(ctx, dto.LoginRequest{Email: "maria@email.com", Password: demoPassword})
	require.NoError(t, err)

	// 1 empresa + 3 clientes + 3 órdenes, todo auditado.
	assert.Len(t, store.AuditEntries(), 7)
}
