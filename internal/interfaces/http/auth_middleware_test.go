package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
	apphttp "github.com/hamagardy/mandoubi-api/internal/interfaces/http"
	pkgjwt "github.com/hamagardy/mandoubi-api/pkg/jwt"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "mandoubi-test"
	testExpMin    = 60
)

// buildTestApp wires AuthMiddleware plus RequireRole in front of a dummy
// handler that echoes the locals.
func buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"userId": apphttp.GetUserID(c),
				"role":   apphttp.GetRole(c),
			})
		},
	)
	return app
}

func tokenForRole(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) (*http.Response, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var payload map[string]any
	if len(body) > 0 {
		_ = json.Unmarshal(body, &payload)
	}
	return resp, payload
}

func TestAuthMiddlewareMissingToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleMember)

	resp, _ := doRequest(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleMember)

	for _, header := range []string{"token-without-scheme", "Basic abc123", "Bearer "} {
		resp, _ := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}
}

func TestAuthMiddlewareInvalidToken(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleMember)

	// Signed with a different secret.
	tok, err := pkgjwt.Generate("other-secret", testUserID, entity.RoleMember, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, _ := doRequest(t, app, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddlewareValidTokenSetsLocals(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin, entity.RoleMember)

	resp, payload := doRequest(t, app, tokenForRole(t, entity.RoleMember))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, testUserID, payload["userId"])
	assert.Equal(t, entity.RoleMember, payload["role"])
}

func TestRequireRoleRejectsOtherRoles(t *testing.T) {
	app := buildTestApp(entity.RoleAdmin)

	resp, _ := doRequest(t, app, tokenForRole(t, entity.RoleMember))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = doRequest(t, app, tokenForRole(t, entity.RoleAdmin))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
