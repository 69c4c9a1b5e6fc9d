package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"liga/models"
	"liga/services"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubTokens accepts tokens named after a plan; "admin" yields an admin.
type stubTokens struct{}

func (stubTokens) ParseToken(token string) (*services.Claims, error) {
	switch token {
	case "admin":
		return &services.Claims{UserID: 1, Plano: models.PlanPremium, Admin: true}, nil
	case string(models.PlanBasico), string(models.PlanPadrao), string(models.PlanPremium):
		return &services.Claims{UserID: 2, Plano: models.Plan(token)}, nil
	}
	return nil, errors.New("bad token")
}

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Use(NewAuth(stubTokens{}).Optional())
	ok := func(c *fiber.Ctx) error { return c.SendString("ok") }

	app.Get("/public", func(c *fiber.Ctx) error {
		if CurrentUser(c) == nil {
			return c.SendString("anonymous")
		}
		return c.SendString(string(CurrentUser(c).Plano))
	})
	app.Get("/user", RequireUser, ok)
	app.Get("/padrao", RequirePlan(models.PlanPadrao), ok)
	app.Get("/admin", RequireAdmin, ok)
	return app
}

func call(t *testing.T, app *fiber.App, path, authHeader string) int {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestOptionalAuth(t *testing.T) {
	app := newAuthApp()

	assert.Equal(t, http.StatusOK, call(t, app, "/public", ""))
	assert.Equal(t, http.StatusOK, call(t, app, "/public", "Bearer BASICO"))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/public", "Bearer forged"))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/public", "Token BASICO"))
	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/public", "Bearer"))
}

func TestRequireUser(t *testing.T) {
	app := newAuthApp()

	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/user", ""))
	assert.Equal(t, http.StatusOK, call(t, app, "/user", "Bearer BASICO"))
}

func TestRequirePlan(t *testing.T) {
	app := newAuthApp()

	tests := []struct {
		header string
		want   int
	}{
		{"", http.StatusUnauthorized},
		{"Bearer BASICO", http.StatusForbidden},
		{"Bearer PADRAO", http.StatusOK},
		{"Bearer PREMIUM", http.StatusOK},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, call(t, app, "/padrao", tt.header), tt.header)
	}
}

func TestRequireAdmin(t *testing.T) {
	app := newAuthApp()

	assert.Equal(t, http.StatusUnauthorized, call(t, app, "/admin", ""))
	assert.Equal(t, http.StatusForbidden, call(t, app, "/admin", "Bearer PREMIUM"))
	assert.Equal(t, http.StatusOK, call(t, app, "/admin", "Bearer admin"))
}
