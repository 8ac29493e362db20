package postgres

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "service_orders_company_number_key"}
	wrapped := fmt.Errorf("insert: %w", pgErr)

	assert.True(t, isUniqueViolation(wrapped, ""))
	assert.True(t, isUniqueViolation(wrapped, "service_orders_company_number_key"))
	assert.False(t, isUniqueViolation(wrapped, "users_email_key"))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}, ""))
	assert.False(t, isUniqueViolation(errors.New("timeout"), ""))
}

func TestIsNoRows(t *testing.T) {
	assert.True(t, isNoRows(fmt.Errorf("get: %w", pgx.ErrNoRows)))
	assert.False(t, isNoRows(errors.New("otro")))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, nullJSON(nil))
	assert.Equal(t, `{"status":"aberta"}`, nullJSON(json.RawMessage(`{"status":"aberta"}`)))
	assert.Nil(t, nullString(""))
	assert.Equal(t, "abc", nullString("abc"))
}
