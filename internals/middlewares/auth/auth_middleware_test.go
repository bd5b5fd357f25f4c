package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"chilume_backend/internals/constants"
	"chilume_backend/internals/docstore/memory"
	adminModel "chilume_backend/internals/features/users/admins/model"
	"chilume_backend/internals/features/users/auth/identity"
)

type fixture struct {
	app      *fiber.App
	store    *memory.Store
	provider *identity.LocalProvider
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	store := memory.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("open-sesame"), bcrypt.MinCost)
	require.NoError(t, err)
	for _, a := range []adminModel.AdminModel{
		{AdminName: "Organizer", AdminEmail: "admin@chilume.fest", AdminRole: constants.RoleAdmin, AdminPasswordHash: string(hash), AdminIsActive: true},
		{AdminName: "Volunteer", AdminEmail: "volunteer@chilume.fest", AdminRole: "volunteer", AdminPasswordHash: string(hash), AdminIsActive: true},
	} {
		a := a
		require.NoError(t, store.UpsertAdmin(context.Background(), &a))
	}
	provider := identity.NewLocalProvider(store, "secret", time.Hour)

	app := fiber.New()
	admin := app.Group("/api/a",
		AuthMiddleware(provider, store),
		OnlyRolesSlice(constants.RoleErrorAdmin("the dashboard"), constants.AdminRoles),
	)
	admin.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"email": CurrentAdmin(c).AdminEmail, "session": CurrentSession(c).AdminID})
	})
	return fixture{app: app, store: store, provider: provider}
}

func (f fixture) token(t *testing.T, email string) string {
	t.Helper()
	s, err := f.provider.SignIn(context.Background(), email, "open-sesame")
	require.NoError(t, err)
	return s.Token
}

func call(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	return resp.StatusCode, body
}

func TestAuthMiddleware(t *testing.T) {
	f := newFixture(t)

	t.Run("no token", func(t *testing.T) {
		status, body := call(t, f.app, httptest.NewRequest("GET", "/api/a/whoami", nil))
		assert.Equal(t, 401, status)
		assert.Equal(t, "MISSING_TOKEN", body["error_code"])
	})

	t.Run("bad scheme", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/a/whoami", nil)
		req.Header.Set("Authorization", "Token abc")
		status, _ := call(t, f.app, req)
		assert.Equal(t, 401, status)
	})

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/a/whoami", nil)
		req.Header.Set("Authorization", "bearer  "+f.token(t, "admin@chilume.fest"))
		status, body := call(t, f.app, req)
		assert.Equal(t, 200, status)
		assert.Equal(t, "admin@chilume.fest", body["email"])
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/a/whoami", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: f.token(t, "admin@chilume.fest")})
		status, _ := call(t, f.app, req)
		assert.Equal(t, 200, status)
	})

	t.Run("revoked", func(t *testing.T) {
		tok := f.token(t, "admin@chilume.fest")
		require.NoError(t, f.provider.SignOut(context.Background(), tok))
		req := httptest.NewRequest("GET", "/api/a/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		status, body := call(t, f.app, req)
		assert.Equal(t, 401, status)
		assert.Equal(t, "TOKEN_REVOKED", body["error_code"])
	})

	t.Run("role not allowed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/a/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+f.token(t, "volunteer@chilume.fest"))
		status, body := call(t, f.app, req)
		assert.Equal(t, 403, status)
		assert.Equal(t, "Only organizers can access the dashboard.", body["message"])
	})

	t.Run("deactivated after sign-in", func(t *testing.T) {
		tok := f.token(t, "admin@chilume.fest")
		a, err := f.store.FindAdminByEmail(context.Background(), "admin@chilume.fest")
		require.NoError(t, err)
		a.AdminIsActive = false
		require.NoError(t, f.store.UpsertAdmin(context.Background(), a))

		req := httptest.NewRequest("GET", "/api/a/whoami", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		status, body := call(t, f.app, req)
		assert.Equal(t, 403, status)
		assert.Equal(t, "USER_DISABLED", body["error_code"])
	})
}

func TestExtractBearerTokenTrimsQuotes(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		tok, err := ExtractBearerToken(c)
		if err != nil {
			return c.SendString("err")
		}
		return c.SendString(tok)
	})
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Authorization", `Bearer "abc.def"`)
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "abc.def", string(raw))
}
