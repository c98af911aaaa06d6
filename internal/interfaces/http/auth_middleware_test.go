package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	apphttp "github.com/jhoicas/commodities-cms/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/commodities-cms/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "commodities-cms-test"
	testExpMin    = 60
)

// fakeSessions resuelve ids de sesión contra un mapa fijo.
type fakeSessions struct {
	byID map[string]entity.Identity
	err  error
}

func (f fakeSessions) Resolve(_ context.Context, sid string) (entity.Identity, bool, error) {
	if f.err != nil {
		return entity.Identity{}, false, f.err
	}
	id, ok := f.byID[sid]
	return id, ok, nil
}

var testSessions = fakeSessions{byID: map[string]entity.Identity{
	"sid-manager":     {ID: 1, Email: "manager@demo.com", Role: entity.RoleManager, Name: "John Store Manager"},
	"sid-storekeeper": {ID: 2, Email: "storekeeper@demo.com", Role: entity.RoleStoreKeeper, Name: "Jane Store Keeper"},
	"sid-sin-rol":     {ID: 3, Email: "legacy@demo.com", Name: "Legacy"},
}}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y resolver la sesión
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(sessions apphttp.SessionResolver, allowedRoles ...entity.Role) *fiber.App {
	app := fiber.New(fiber.Config{
		// Silenciar errores internos en los tests
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	// Ruta protegida: JWT + sesión + RBAC
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, sessions),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetRole(c),
			})
		},
	)
	return app
}

// tokenFor genera un JWT para el id de sesión indicado.
func tokenFor(t *testing.T, userID int64, sid string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: userID, SessionID: sid}, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func bodyString(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: El usuario tiene el rol requerido → debe pasar (HTTP 200).
func TestRequireRole_ManagerAccedeRutaManager(t *testing.T) {
	app := buildTestApp(testSessions, entity.RoleManager)
	resp := doRequest(t, app, tokenFor(t, 1, "sid-manager"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"manager debe poder acceder a ruta restringida a manager")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "manager", body["role"])
}

// Caso 1b: multi-rol → HTTP 200.
func TestRequireRole_StoreKeeperAccedeRutaCompartida(t *testing.T) {
	app := buildTestApp(testSessions, entity.RoleManager, entity.RoleStoreKeeper)
	resp := doRequest(t, app, tokenFor(t, 2, "sid-storekeeper"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Caso 2: rol distinto al requerido → HTTP 403.
func TestRequireRole_StoreKeeperBloqueadoEnRutaManager(t *testing.T) {
	app := buildTestApp(testSessions, entity.RoleManager)
	resp := doRequest(t, app, tokenFor(t, 2, "sid-storekeeper"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "FORBIDDEN")
}

// Caso 3: sesión sin rol → HTTP 401 MISSING_ROLE.
func TestRequireRole_SesionSinRol_Retorna401(t *testing.T) {
	app := buildTestApp(testSessions, entity.RoleManager)
	resp := doRequest(t, app, tokenFor(t, 3, "sid-sin-rol"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, bodyString(t, resp), "MISSING_ROLE")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_Rechazos(t *testing.T) {
	cases := []struct {
		name     string
		header   string
		sessions apphttp.SessionResolver
		status   int
		code     string
	}{
		{"sin header", "", testSessions, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"sin Bearer", "Token abc", testSessions, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"Bearer vacío", "Bearer   ", testSessions, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"Bearer solo", "Bearer", testSessions, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"solo espacios", "   ", testSessions, http.StatusUnauthorized, "MISSING_TOKEN"},
		{"token malformado", "Bearer token.invalido.aqui", testSessions, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"token sin sesión", tokenFor(t, 1, ""), testSessions, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"sesión cerrada", tokenFor(t, 1, "sid-revocada"), testSessions, http.StatusUnauthorized, "SESSION_EXPIRED"},
		{"sesión de otro usuario", tokenFor(t, 2, "sid-manager"), testSessions, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"store caído", tokenFor(t, 1, "sid-manager"), fakeSessions{err: errors.New("redis down")}, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := buildTestApp(tc.sessions, entity.RoleManager)
			resp := doRequest(t, app, tc.header)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Contains(t, bodyString(t, resp), tc.code)
		})
	}
}

func TestAuthMiddleware_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: 1, SessionID: "sid-manager"}, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, buildTestApp(testSessions, entity.RoleManager), "Bearer "+tok)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// La identidad que llega al handler es la de la sesión guardada, no la del token.
func TestAuthMiddleware_IdentidadDesdeLaSesion(t *testing.T) {
	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(testJWTSecret, testSessions), func(c *fiber.Ctx) error {
		id := apphttp.GetIdentity(c)
		return c.JSON(fiber.Map{
			"user_id":    apphttp.GetUserID(c),
			"session_id": apphttp.GetSessionID(c),
			"role":       apphttp.GetRole(c),
			"email":      id.Email,
		})
	})

	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{
		UserID: 1, Email: "otro@demo.com", Role: "storekeeper", SessionID: "sid-manager",
	}, testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, float64(1), body["user_id"])
	assert.Equal(t, "sid-manager", body["session_id"])
	assert.Equal(t, "manager", body["role"])
	assert.Equal(t, "manager@demo.com", body["email"])
}

func TestQueryTokenMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/feed", apphttp.QueryTokenMiddleware(testJWTSecret, testSessions), func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetRole(c))
	})

	tok, err := pkgjwt.Generate(testJWTSecret, pkgjwt.Subject{UserID: 2, SessionID: "sid-storekeeper"}, testIssuer, testExpMin)
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/feed?token="+tok, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "storekeeper", bodyString(t, resp))

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/feed", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
