package handlers

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vapor/internal/repositories"
	"vapor/internal/services"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

func TestFailWith(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{"not found", fmt.Errorf("order 1: %w", repositories.ErrNotFound), http.StatusNotFound, "order 1"},
		{"validation", fmt.Errorf("%w: game 2 does not exist", services.ErrValidation), http.StatusBadRequest, "game 2 does not exist"},
		{"conflict", fmt.Errorf("%w: username taken", services.ErrConflict), http.StatusConflict, "username taken"},
		{"credentials", services.ErrInvalidCredentials, http.StatusUnauthorized, "Unauthorized"},
		{"unexpected", errors.New("CHECK constraint failed: cart_id <> ''"), http.StatusInternalServerError, "Could not create order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return failWith(c, tt.err, "create order")
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			defer resp.Body.Close()
			body, err := io.ReadAll(resp.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, string(body), tt.wantMessage)
			assert.Contains(t, string(body), `"Success":false`)
			if tt.wantStatus == http.StatusInternalServerError {
				assert.NotContains(t, string(body), "CHECK")
			}
		})
	}
}

func TestFrontendHandler(t *testing.T) {
	dir := t.TempDir()
	for _, file := range pages {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte("<h1>"+file+"</h1>"), 0o644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('vapor')"), 0o644))

	app := fiber.New()
	NewFrontendHandler(dir).RegisterRoutes(app)

	get := func(path string) (int, string) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		return resp.StatusCode, string(body)
	}

	for route, file := range pages {
		status, body := get(route)
		assert.Equal(t, http.StatusOK, status, route)
		assert.True(t, strings.Contains(body, file), "%s served %q", route, body)
	}

	status, body := get("/static/app.js")
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "vapor")

	status, _ = get("/missing")
	assert.Equal(t, http.StatusNotFound, status)
}
