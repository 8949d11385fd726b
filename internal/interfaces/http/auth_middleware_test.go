package http_test

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

	"github.com/shelfmind/shelfmind-api/internal/domain/entity"
	"github.com/shelfmind/shelfmind-api/internal/domain/repository"
	apphttp "github.com/shelfmind/shelfmind-api/internal/interfaces/http"
	pkgjwt "github.com/shelfmind/shelfmind-api/pkg/jwt"
	"github.com/shelfmind/shelfmind-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "shelfmind-test"
	testEmail     = "a@x.com"
	testUserID    = "associate-1a2b3c4d"
)

// memUserRepo repositorio en memoria para los tests del middleware.
type memUserRepo struct {
	users map[string]*entity.User // por id
}

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	m := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		m.users[u.ID] = u
	}
	return m
}

func (m *memUserRepo) Create(_ context.Context, u *entity.User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return m.users[id], nil
}

func (m *memUserRepo) Update(_ context.Context, id string, p repository.UpdateUserParams) (bool, error) {
	u, ok := m.users[id]
	if !ok {
		return false, nil
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	return true, nil
}

func (m *memUserRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := m.users[id]; !ok {
		return false, nil
	}
	delete(m.users, id)
	return true, nil
}

func (m *memUserRepo) ListByStore(_ context.Context, storeID string) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range m.users {
		if u.StoreID == storeID {
			out = append(out, u)
		}
	}
	return out, nil
}

func testCodec(t *testing.T) *pkgjwt.Codec {
	t.Helper()
	codec, err := pkgjwt.NewCodec(testJWTSecret, testIssuer, time.Hour)
	require.NoError(t, err)
	return codec
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func associateAnn() *entity.User {
	now := time.Now().UTC()
	return &entity.User{
		ID:        testUserID,
		Email:     testEmail,
		Name:      "Ann Lee",
		Role:      entity.RoleAssociate,
		StoreID:   "S1",
		StoreName: "Store One",
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// buildProtectedApp construye una app Fiber mínima con AuthMiddleware (y
// opcionalmente RequireRole) delante de un handler dummy.
func buildProtectedApp(t *testing.T, repo repository.UserRepository, roles ...string) *fiber.App {
	t.Helper()
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testCodec(t), repo, testLogger())}
	if len(roles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(roles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":      true,
			"user_id": apphttp.GetUserID(c),
			"role":    apphttp.GetRole(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := testCodec(t).Issue(u.Email, u.ID, u.Role)
	require.NoError(t, err)
	return "Bearer " + tok
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoResuelveUsuario(t *testing.T) {
	ann := associateAnn()
	app := buildProtectedApp(t, newMemUserRepo(ann))

	resp := doProtected(t, app, tokenFor(t, ann))
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "associate", body["role"])
}

func TestAuthMiddleware_SinHeader_Retorna401(t *testing.T) {
	app := buildProtectedApp(t, newMemUserRepo(associateAnn()))

	resp := doProtected(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_HeaderMalformado_Retorna401(t *testing.T) {
	ann := associateAnn()
	app := buildProtectedApp(t, newMemUserRepo(ann))

	for _, header := range []string{"Basic abc", "Bearer", "Bearer ", "solo-el-token"} {
		resp := doProtected(t, app, header)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			"header %q debe rechazarse", header)
	}
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildProtectedApp(t, newMemUserRepo(associateAnn()))

	resp := doProtected(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	ann := associateAnn()
	app := buildProtectedApp(t, newMemUserRepo(ann))

	tok, err := testCodec(t).IssueWithTTL(ann.Email, ann.ID, ann.Role, -time.Minute)
	require.NoError(t, err)

	resp := doProtected(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// Misma señal externa que cualquier otra falla de token.
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAUTHORIZED")
	assert.NotContains(t, string(body), "expir",
		"la causa concreta no debe filtrarse al cliente")
}

func TestAuthMiddleware_UsuarioEliminado_Retorna401(t *testing.T) {
	ann := associateAnn()
	// El repo no conoce al usuario: token válido de cuenta borrada.
	app := buildProtectedApp(t, newMemUserRepo())

	resp := doProtected(t, app, tokenFor(t, ann))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_CuentaDesactivada_Retorna401ConCodigoPropio(t *testing.T) {
	ann := associateAnn()
	repo := newMemUserRepo(ann)
	app := buildProtectedApp(t, repo)

	// Token emitido mientras la cuenta estaba activa...
	header := tokenFor(t, ann)

	// ...y la cuenta se desactiva después.
	inactive := false
	_, err := repo.Update(context.Background(), ann.ID, repository.UpdateUserParams{IsActive: &inactive})
	require.NoError(t, err)

	resp := doProtected(t, app, header)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "ACCOUNT_DISABLED")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_ManagerAccedeRutaManager(t *testing.T) {
	manager := associateAnn()
	manager.ID = "manager-5e6f7a8b"
	manager.Email = "boss@x.com"
	manager.Role = entity.RoleManager
	app := buildProtectedApp(t, newMemUserRepo(manager), entity.RoleManager)

	resp := doProtected(t, app, tokenFor(t, manager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"manager debe poder acceder a ruta restringida a manager")
}

func TestRequireRole_AssociateBloqueadoEnRutaManager(t *testing.T) {
	ann := associateAnn()
	app := buildProtectedApp(t, newMemUserRepo(ann), entity.RoleManager)

	resp := doProtected(t, app, tokenFor(t, ann))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"associate no debe poder acceder a ruta restringida a manager")

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_MultiRol(t *testing.T) {
	ann := associateAnn()
	app := buildProtectedApp(t, newMemUserRepo(ann), entity.RoleManager, entity.RoleAssociate)

	resp := doProtected(t, app, tokenFor(t, ann))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"associate debe poder acceder a ruta que permite manager o associate")
}
