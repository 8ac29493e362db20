package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/vistorias-api/internal/domain"
)

func TestErrorsIs_PorKind(t *testing.T) {
	wrapped := fmt.Errorf("crear orden: %w", domain.ErrClientNotFound)

	assert.True(t, errors.Is(wrapped, domain.ErrNotFound), "un not_found específico cumple la sentinela genérica")
	assert.True(t, errors.Is(wrapped, domain.ErrClientNotFound))
	assert.False(t, errors.Is(wrapped, domain.ErrOrderNotFound), "otro not_found específico no debe coincidir")
	assert.False(t, errors.Is(wrapped, domain.ErrConflict))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, domain.KindConflict, domain.KindOf(fmt.Errorf("x: %w", domain.ErrClientAlreadyExists)))
	assert.Equal(t, domain.KindInternal, domain.KindOf(errors.New("db caída")))
	assert.Equal(t, domain.KindInternal, domain.KindOf(nil))
}

func TestWrap_ConservaCausa(t *testing.T) {
	cause := errors.New("unique_violation")
	err := domain.Wrap(domain.KindConflict, "número de orden duplicado", cause)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Contains(t, err.Error(), "unique_violation")
}
