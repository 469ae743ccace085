package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/contable-pro/internal/application/usecase"
	"github.com/tu-usuario/contable-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/contable-pro/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakePermRepo struct {
	users   map[string]*entity.UserPermission
	clients map[string]*entity.ClientPermission
	failGet error
}

func newFakePermRepo() *fakePermRepo {
	return &fakePermRepo{
		users:   make(map[string]*entity.UserPermission),
		clients: make(map[string]*entity.ClientPermission),
	}
}

func (f *fakePermRepo) GetUserOverrides(_ context.Context, userID string) (*entity.UserPermission, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.users[userID], nil
}

func (f *fakePermRepo) SaveUserOverrides(_ context.Context, perm *entity.UserPermission) error {
	f.users[perm.UserID] = perm
	return nil
}

func (f *fakePermRepo) GetClientPermission(_ context.Context, clientID string) (*entity.ClientPermission, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	return f.clients[clientID], nil
}

func (f *fakePermRepo) SaveClientPermission(_ context.Context, perm *entity.ClientPermission) error {
	f.clients[perm.ClientID] = perm
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	f := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		f.users[u.ID] = u
	}
	return f
}

func (f *fakeUserRepo) Create(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return f.users[id], nil
}
func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) GetByEmailAndClient(email, clientID string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email && u.ClientID == clientID {
			return u, nil
		}
	}
	return nil, nil
}
func (f *fakeUserRepo) Update(u *entity.User) error { f.users[u.ID] = u; return nil }
func (f *fakeUserRepo) ListByClient(clientID string, limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		if u.ClientID == clientID {
			out = append(out, u)
		}
	}
	return out, nil
}
func (f *fakeUserRepo) Delete(id string) error { delete(f.users, id); return nil }

// buildPermissionApp arma la app con las rutas de permisos sin middleware de auth.
func buildPermissionApp(permRepo *fakePermRepo, userRepo *fakeUserRepo) *fiber.App {
	uc := usecase.NewPermissionUseCase(permRepo, userRepo)
	h := apphttp.NewPermissionHandler(uc)

	app := fiber.New()
	app.Get("/user-permissions/:userId", h.GetUserOverrides)
	app.Patch("/user-permissions/:userId", h.SaveUserOverrides)
	app.Get("/user-permissions/:userId/effective", h.GetEffective)
	app.Get("/client-permissions/:clientId", h.GetClientPermission)
	return app
}

func jsonRequest(t *testing.T, app *fiber.App, method, url string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, url, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeMap(t *testing.T, resp *http.Response) map[string]bool {
	t.Helper()
	defer resp.Body.Close()
	var m map[string]bool
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	return m
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /user-permissions/:userId
// ──────────────────────────────────────────────────────────────────────────────

func TestGetUserOverrides_SinRegistroRetorna404(t *testing.T) {
	app := buildPermissionApp(newFakePermRepo(), newFakeUserRepo())

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/u1", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"sin registro de overrides el servidor responde 404; la app lo trata como todo-denegado")
}

func TestGetUserOverrides_Retorna14Claves(t *testing.T) {
	permRepo := newFakePermRepo()
	s := entity.NewOverrideSet()
	s[entity.CapShowInventory] = true
	permRepo.users["u1"] = &entity.UserPermission{UserID: "u1", Overrides: s}
	app := buildPermissionApp(permRepo, newFakeUserRepo(&entity.User{ID: "u1", ClientID: "acc-1", Role: "user"}))

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeMap(t, resp)
	assert.Len(t, m, 14, "las 14 claves siempre viajan en la respuesta")
	assert.True(t, m["canShowInventory"])
	assert.False(t, m["canCreateSaleEntries"])
}

// ──────────────────────────────────────────────────────────────────────────────
// PATCH /user-permissions/:userId — sanitización en el guardado
// ──────────────────────────────────────────────────────────────────────────────

func TestSaveUserOverrides_FuerzaOcultasYDescartaDesconocidas(t *testing.T) {
	permRepo := newFakePermRepo()
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", ClientID: "acc-1", Role: "user"})
	app := buildPermissionApp(permRepo, userRepo)

	body := map[string]bool{
		"canCreateSaleEntries":   true,
		"canSendInvoiceEmail":    true, // oculta: debe forzarse a false
		"canSendInvoiceWhatsapp": true, // oculta: debe forzarse a false
		"canHackTheServer":       true, // desconocida: debe descartarse
	}
	resp := jsonRequest(t, app, http.MethodPatch, "/user-permissions/u1", body)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeMap(t, resp)
	assert.Len(t, m, 14)
	assert.True(t, m["canCreateSaleEntries"])
	assert.False(t, m["canSendInvoiceEmail"], "las ocultas nunca se otorgan por esta vía")
	assert.False(t, m["canSendInvoiceWhatsapp"])
	_, ok := m["canHackTheServer"]
	assert.False(t, ok, "la clave desconocida no entra al conjunto")

	// El registro persistido también quedó sanitizado
	saved := permRepo.users["u1"]
	require.NotNil(t, saved)
	assert.False(t, saved.Overrides[entity.CapSendInvoiceEmail])
	assert.False(t, saved.Overrides[entity.CapSendInvoiceWhatsapp])
}

func TestSaveUserOverrides_UsuarioInexistenteRetorna404(t *testing.T) {
	app := buildPermissionApp(newFakePermRepo(), newFakeUserRepo())

	resp := jsonRequest(t, app, http.MethodPatch, "/user-permissions/fantasma", map[string]bool{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /user-permissions/:userId/effective — bypass por rol
// ──────────────────────────────────────────────────────────────────────────────

func TestGetEffective_RolRestringidoSinRegistroTodoFalse(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Role: "user"})
	app := buildPermissionApp(newFakePermRepo(), userRepo)

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/u1/effective", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeMap(t, resp)
	require.Len(t, m, 14)
	for k, v := range m {
		assert.False(t, v, "sin overrides el rol user no tiene %s", k)
	}
}

func TestGetEffective_MasterTodoTrueSinConsultarOverrides(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "m1", Role: "master"})
	permRepo := newFakePermRepo()
	permRepo.failGet = errors.New("db caída") // el bypass ni siquiera toca el repo
	app := buildPermissionApp(permRepo, userRepo)

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/m1/effective", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeMap(t, resp)
	require.Len(t, m, 14)
	for k, v := range m {
		assert.True(t, v, "master tiene bypass en %s", k)
	}
}

func TestGetEffective_RolDesconocidoTieneBypass(t *testing.T) {
	// Un rol fuera de {user, admin, manager} no está sujeto a overrides.
	userRepo := newFakeUserRepo(&entity.User{ID: "x1", Role: "contador-externo"})
	app := buildPermissionApp(newFakePermRepo(), userRepo)

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/x1/effective", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeMap(t, resp)
	for k, v := range m {
		assert.True(t, v, "rol no restringido tiene bypass en %s", k)
	}
}

func TestGetEffective_MeResuelveAlUsuarioDelToken(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "u1", Role: "user"})
	permRepo := newFakePermRepo()
	s := entity.NewOverrideSet()
	s[entity.CapShowCustomers] = true
	permRepo.users["u1"] = &entity.UserPermission{UserID: "u1", Overrides: s}

	uc := usecase.NewPermissionUseCase(permRepo, userRepo)
	h := apphttp.NewPermissionHandler(uc)
	app := fiber.New()
	// Simula AuthMiddleware cargando el usuario del token.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, "u1")
		return c.Next()
	})
	app.Get("/user-permissions/:userId/effective", h.GetEffective)

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/me/effective", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeMap(t, resp)
	assert.True(t, m["canShowCustomers"], "me debe resolver a los overrides del usuario del token")
	assert.False(t, m["canCreateSaleEntries"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Middleware RequirePermission
// ──────────────────────────────────────────────────────────────────────────────

func buildGuardedApp(permRepo *fakePermRepo, userRepo *fakeUserRepo, role string) *fiber.App {
	uc := usecase.NewPermissionUseCase(permRepo, userRepo)
	app := fiber.New()
	// Simula AuthMiddleware cargando los locals del token.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, "u1")
		c.Locals(apphttp.LocalClientID, "acc-1")
		c.Locals(apphttp.LocalRole, role)
		return c.Next()
	})
	app.Get("/inventario",
		apphttp.RequirePermission(entity.CapShowInventory, uc),
		func(c *fiber.Ctx) error { return c.SendStatus(http.StatusOK) },
	)
	return app
}

func TestRequirePermission_DenegadoRetorna403(t *testing.T) {
	app := buildGuardedApp(newFakePermRepo(), newFakeUserRepo(), "user")

	resp := jsonRequest(t, app, http.MethodGet, "/inventario", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"rol user sin overrides no puede ver inventario")
}

func TestRequirePermission_OtorgadoRetorna200(t *testing.T) {
	permRepo := newFakePermRepo()
	s := entity.NewOverrideSet()
	s[entity.CapShowInventory] = true
	permRepo.users["u1"] = &entity.UserPermission{UserID: "u1", Overrides: s}
	app := buildGuardedApp(permRepo, newFakeUserRepo(), "user")

	resp := jsonRequest(t, app, http.MethodGet, "/inventario", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequirePermission_BypassDeRolNoTocaLaDB(t *testing.T) {
	permRepo := newFakePermRepo()
	permRepo.failGet = errors.New("db caída")
	app := buildGuardedApp(permRepo, newFakeUserRepo(), "customer")

	resp := jsonRequest(t, app, http.MethodGet, "/inventario", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el bypass por rol se resuelve sin consultar overrides")
}

func TestRequirePermission_ErrorDeInfraRetorna503(t *testing.T) {
	permRepo := newFakePermRepo()
	permRepo.failGet = errors.New("db caída")
	app := buildGuardedApp(permRepo, newFakeUserRepo(), "user")

	resp := jsonRequest(t, app, http.MethodGet, "/inventario", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode,
		"un fallo de DB no es una denegación de permiso")
}

// ──────────────────────────────────────────────────────────────────────────────
// Aislamiento por tenant — el sujeto debe pertenecer al account del token
// ──────────────────────────────────────────────────────────────────────────────

// buildScopedPermissionApp simula AuthMiddleware con el rol y account dados.
func buildScopedPermissionApp(permRepo *fakePermRepo, userRepo *fakeUserRepo, role, clientID string) *fiber.App {
	uc := usecase.NewPermissionUseCase(permRepo, userRepo)
	h := apphttp.NewPermissionHandler(uc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, "caller")
		c.Locals(apphttp.LocalClientID, clientID)
		c.Locals(apphttp.LocalRole, role)
		return c.Next()
	})
	app.Get("/user-permissions/:userId", h.GetUserOverrides)
	app.Patch("/user-permissions/:userId", h.SaveUserOverrides)
	app.Get("/user-permissions/:userId/effective", h.GetEffective)
	app.Get("/client-permissions/:clientId", h.GetClientPermission)
	return app
}

func TestSaveUserOverrides_OtroTenantRetorna403(t *testing.T) {
	// admin del tenant-a intenta otorgar capabilities a un usuario del tenant-b.
	permRepo := newFakePermRepo()
	userRepo := newFakeUserRepo(&entity.User{ID: "victim", ClientID: "tenant-b", Role: "user"})
	app := buildScopedPermissionApp(permRepo, userRepo, "admin", "tenant-a")

	resp := jsonRequest(t, app, http.MethodPatch, "/user-permissions/victim",
		map[string]bool{"canCreateSaleEntries": true})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"un admin no puede tocar usuarios de otro account")
	assert.Nil(t, permRepo.users["victim"], "el grant cruzado no debe persistirse")
}

func TestGetUserOverrides_OtroTenantRetorna403(t *testing.T) {
	permRepo := newFakePermRepo()
	s := entity.NewOverrideSet()
	s[entity.CapShowInventory] = true
	permRepo.users["victim"] = &entity.UserPermission{UserID: "victim", Overrides: s}
	userRepo := newFakeUserRepo(&entity.User{ID: "victim", ClientID: "tenant-b", Role: "user"})
	app := buildScopedPermissionApp(permRepo, userRepo, "admin", "tenant-a")

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/victim", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestGetEffective_OtroTenantRetorna403(t *testing.T) {
	userRepo := newFakeUserRepo(&entity.User{ID: "victim", ClientID: "tenant-b", Role: "user"})
	app := buildScopedPermissionApp(newFakePermRepo(), userRepo, "manager", "tenant-a")

	resp := jsonRequest(t, app, http.MethodGet, "/user-permissions/victim/effective", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestSaveUserOverrides_MasterCruzaTenants(t *testing.T) {
	// master opera la plataforma: puede administrar usuarios de cualquier account.
	permRepo := newFakePermRepo()
	userRepo := newFakeUserRepo(&entity.User{ID: "victim", ClientID: "tenant-b", Role: "user"})
	app := buildScopedPermissionApp(permRepo, userRepo, "master", "tenant-a")

	resp := jsonRequest(t, app, http.MethodPatch, "/user-permissions/victim",
		map[string]bool{"canShowEntries": true})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m := decodeMap(t, resp)
	assert.True(t, m["canShowEntries"])
	require.NotNil(t, permRepo.users["victim"])
}

func TestGetClientPermission_OtroTenantRetorna403(t *testing.T) {
	app := buildScopedPermissionApp(newFakePermRepo(), newFakeUserRepo(), "admin", "tenant-a")

	resp := jsonRequest(t, app, http.MethodGet, "/client-permissions/tenant-b", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"solo master lee permisos de un account ajeno")
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /client-permissions/:clientId
// ──────────────────────────────────────────────────────────────────────────────

func TestGetClientPermission_SinRegistroRetorna404(t *testing.T) {
	app := buildPermissionApp(newFakePermRepo(), newFakeUserRepo())

	resp := jsonRequest(t, app, http.MethodGet, "/client-permissions/acc-1", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode,
		"sin registro la app cae a los límites del plan que viajan en el Client")
}

func TestGetClientPermission_IncluyeLimites(t *testing.T) {
	permRepo := newFakePermRepo()
	permRepo.clients["acc-1"] = &entity.ClientPermission{
		ClientID:       "acc-1",
		Overrides:      entity.NewOverrideSet(),
		MaxCompanies:   2,
		MaxUsers:       10,
		MaxInventories: 500,
		UpdatedAt:      time.Now(),
	}
	app := buildPermissionApp(permRepo, newFakeUserRepo())

	resp := jsonRequest(t, app, http.MethodGet, "/client-permissions/acc-1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	defer resp.Body.Close()

	var body struct {
		ClientID       string          `json:"client_id"`
		Permissions    map[string]bool `json:"permissions"`
		MaxCompanies   int             `json:"maxCompanies"`
		MaxUsers       int             `json:"maxUsers"`
		MaxInventories int             `json:"maxInventories"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "acc-1", body.ClientID)
	assert.Len(t, body.Permissions, 14)
	assert.Equal(t, 2, body.MaxCompanies)
	assert.Equal(t, 10, body.MaxUsers)
	assert.Equal(t, 500, body.MaxInventories)
}
