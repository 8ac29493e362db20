package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/domain"
)

func TestWriteError_MapeaKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrUnauthenticated, 401, "UNAUTHENTICATED"},
		{domain.ErrAccessDenied, 403, "ACCESS_DENIED"},
		{domain.ErrInsufficientPermissions, 403, "INSUFFICIENT_PERMISSIONS"},
		{domain.ErrOrderNotFound, 404, "NOT_FOUND"},
		{domain.ErrClientAlreadyExists, 409, "CONFLICT"},
		{domain.New(domain.KindInvalidInput, "address es requerido"), 400, "INVALID_INPUT"},
		{domain.ErrInvalidTransition, 409, "INVALID_TRANSITION"},
		{fmt.Errorf("repo: %w", domain.ErrCompanyNotFound), 404, "NOT_FOUND"},
		{errors.New("conexión perdida"), 500, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return writeError(c, tc.err) })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			if tc.status == 500 {
				assert.Equal(t, "error interno", body.Message, "no se filtra el detalle")
			}
		})
	}
}
