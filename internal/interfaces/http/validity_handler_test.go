package http_test

import (
	"context"
	"encoding/json"
	"net/http"
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

type fakeValidityRepo struct {
	records map[string]*entity.AccountValidity
}

func newFakeValidityRepo() *fakeValidityRepo {
	return &fakeValidityRepo{records: make(map[string]*entity.AccountValidity)}
}

func (f *fakeValidityRepo) Get(_ context.Context, clientID string) (*entity.AccountValidity, error) {
	return f.records[clientID], nil
}

func (f *fakeValidityRepo) Save(_ context.Context, v *entity.AccountValidity) error {
	cp := *v
	f.records[v.ClientID] = &cp
	return nil
}

type fakeClientRepo struct {
	clients map[string]*entity.Client
}

func newFakeClientRepo(clients ...*entity.Client) *fakeClientRepo {
	f := &fakeClientRepo{clients: make(map[string]*entity.Client)}
	for _, c := range clients {
		f.clients[c.ID] = c
	}
	return f
}

func (f *fakeClientRepo) Create(c *entity.Client) error { f.clients[c.ID] = c; return nil }
func (f *fakeClientRepo) GetByID(id string) (*entity.Client, error) {
	return f.clients[id], nil
}
func (f *fakeClientRepo) GetByTaxID(taxID string) (*entity.Client, error) {
	for _, c := range f.clients {
		if c.TaxID == taxID {
			return c, nil
		}
	}
	return nil, nil
}
func (f *fakeClientRepo) Update(c *entity.Client) error { f.clients[c.ID] = c; return nil }
func (f *fakeClientRepo) List(limit, offset int) ([]*entity.Client, error) {
	var out []*entity.Client
	for _, c := range f.clients {
		out = append(out, c)
	}
	return out, nil
}
func (f *fakeClientRepo) Delete(id string) error { delete(f.clients, id); return nil }

// "Hoy" fijo para que los derivados (daysLeft, expired) sean deterministas.
var testNow = time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)

func buildValidityApp(validityRepo *fakeValidityRepo, clientRepo *fakeClientRepo) *fiber.App {
	uc := usecase.NewValidityUseCase(validityRepo, clientRepo).
		WithClock(func() time.Time { return testNow })
	h := apphttp.NewValidityHandler(uc)

	app := fiber.New()
	app.Get("/account/:clientId/validity", h.Get)
	app.Put("/account/:clientId/validity", h.Extend)
	app.Put("/account/:clientId/validity/expiry", h.SetExpiry)
	app.Patch("/account/:clientId/validity/disable", h.Disable)
	return app
}

// validityBody decodifica la envoltura { "validity": {...} }.
type validityBody struct {
	Validity struct {
		ClientID  string     `json:"client_id"`
		Status    string     `json:"status"`
		StartAt   *time.Time `json:"startAt"`
		ExpiresAt *time.Time `json:"expiresAt"`
		IsActive  bool       `json:"isActive"`
		DaysLeft  *int       `json:"daysLeft"`
		Expired   bool       `json:"expired"`
	} `json:"validity"`
}

func decodeValidity(t *testing.T, resp *http.Response) validityBody {
	t.Helper()
	defer resp.Body.Close()
	var body validityBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /account/:clientId/validity
// ──────────────────────────────────────────────────────────────────────────────

func TestValidityGet_SinRegistroRetorna404(t *testing.T) {
	app := buildValidityApp(newFakeValidityRepo(), newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodGet, "/account/acc-1/validity", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidityGet_DerivadosCalculados(t *testing.T) {
	repo := newFakeValidityRepo()
	exp := testNow.AddDate(0, 0, 10)
	repo.records["acc-1"] = &entity.AccountValidity{
		ClientID:  "acc-1",
		Status:    entity.StatusActive,
		ExpiresAt: &exp,
	}
	app := buildValidityApp(repo, newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodGet, "/account/acc-1/validity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	assert.Equal(t, "active", body.Validity.Status)
	assert.True(t, body.Validity.IsActive)
	assert.False(t, body.Validity.Expired)
	require.NotNil(t, body.Validity.DaysLeft)
	assert.Equal(t, 10, *body.Validity.DaysLeft)
}

func TestValidityGet_UnlimitedSinDaysLeft(t *testing.T) {
	repo := newFakeValidityRepo()
	repo.records["acc-1"] = &entity.AccountValidity{
		ClientID: "acc-1",
		Status:   entity.StatusUnlimited,
	}
	app := buildValidityApp(repo, newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodGet, "/account/acc-1/validity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	assert.True(t, body.Validity.IsActive)
	assert.Nil(t, body.Validity.DaysLeft, "unlimited no reporta días restantes")
	assert.False(t, body.Validity.Expired)
}

// buildScopedValidityApp simula AuthMiddleware con el rol y account dados.
func buildScopedValidityApp(repo *fakeValidityRepo, clientRepo *fakeClientRepo, role, clientID string) *fiber.App {
	uc := usecase.NewValidityUseCase(repo, clientRepo).
		WithClock(func() time.Time { return testNow })
	h := apphttp.NewValidityHandler(uc)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, "caller")
		c.Locals(apphttp.LocalClientID, clientID)
		c.Locals(apphttp.LocalRole, role)
		return c.Next()
	})
	app.Get("/account/:clientId/validity", h.Get)
	return app
}

func TestValidityGet_OtroTenantRetorna403(t *testing.T) {
	repo := newFakeValidityRepo()
	repo.records["tenant-b"] = &entity.AccountValidity{ClientID: "tenant-b", Status: entity.StatusActive}
	app := buildScopedValidityApp(repo, newFakeClientRepo(), "admin", "tenant-a")

	resp := jsonRequest(t, app, http.MethodGet, "/account/tenant-b/validity", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"solo master consulta la validez de un account ajeno")
}

func TestValidityGet_MasterCruzaTenants(t *testing.T) {
	repo := newFakeValidityRepo()
	repo.records["tenant-b"] = &entity.AccountValidity{ClientID: "tenant-b", Status: entity.StatusActive}
	app := buildScopedValidityApp(repo, newFakeClientRepo(), "master", "tenant-a")

	resp := jsonRequest(t, app, http.MethodGet, "/account/tenant-b/validity", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	assert.Equal(t, "active", body.Validity.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /account/:clientId/validity — extensión por duración
// ──────────────────────────────────────────────────────────────────────────────

func TestValidityExtend_OtorgaVentanaYReactiva(t *testing.T) {
	repo := newFakeValidityRepo()
	repo.records["acc-1"] = &entity.AccountValidity{
		ClientID: "acc-1",
		Status:   entity.StatusExpired,
	}
	app := buildValidityApp(repo, newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodPut, "/account/acc-1/validity",
		map[string]int{"years": 1})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	assert.Equal(t, "active", body.Validity.Status, "extend reactiva el account")
	require.NotNil(t, body.Validity.ExpiresAt)
	assert.Equal(t, testNow.AddDate(1, 0, 0), body.Validity.ExpiresAt.UTC())

	// Persistido
	saved := repo.records["acc-1"]
	assert.Equal(t, entity.StatusActive, saved.Status)
}

func TestValidityExtend_DuracionCeroRetorna400(t *testing.T) {
	repo := newFakeValidityRepo()
	repo.records["acc-1"] = &entity.AccountValidity{ClientID: "acc-1", Status: entity.StatusActive}
	app := buildValidityApp(repo, newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodPut, "/account/acc-1/validity",
		map[string]int{"years": 0, "months": 0, "days": 0})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestValidityExtend_AccountInexistenteRetorna404(t *testing.T) {
	app := buildValidityApp(newFakeValidityRepo(), newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodPut, "/account/fantasma/validity",
		map[string]int{"days": 30})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestValidityExtend_AprovisionaSiElAccountExiste(t *testing.T) {
	// Account real sin registro de validez: extend lo crea.
	clientRepo := newFakeClientRepo(&entity.Client{ID: "acc-1", Name: "ACME"})
	repo := newFakeValidityRepo()
	app := buildValidityApp(repo, clientRepo)

	resp := jsonRequest(t, app, http.MethodPut, "/account/acc-1/validity",
		map[string]int{"days": 30})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	assert.Equal(t, "active", body.Validity.Status)
	require.NotNil(t, body.Validity.DaysLeft)
	assert.Equal(t, 30, *body.Validity.DaysLeft)
}

// ──────────────────────────────────────────────────────────────────────────────
// PUT /account/:clientId/validity/expiry — fecha absoluta con piso de 1 día
// ──────────────────────────────────────────────────────────────────────────────

func TestValiditySetExpiry_TraduceADuracion(t *testing.T) {
	repo := newFakeValidityRepo()
	repo.records["acc-1"] = &entity.AccountValidity{ClientID: "acc-1", Status: entity.StatusActive}
	app := buildValidityApp(repo, newFakeClientRepo())

	target := testNow.AddDate(0, 0, 15)
	resp := jsonRequest(t, app, http.MethodPut, "/account/acc-1/validity/expiry",
		map[string]string{"expiresAt": target.Format(time.RFC3339)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	require.NotNil(t, body.Validity.ExpiresAt)
	assert.Equal(t, target, body.Validity.ExpiresAt.UTC(), "15 días exactos desde now")
}

func TestValiditySetExpiry_FechaPasadaOtorgaUnDia(t *testing.T) {
	repo := newFakeValidityRepo()
	repo.records["acc-1"] = &entity.AccountValidity{ClientID: "acc-1", Status: entity.StatusExpired}
	app := buildValidityApp(repo, newFakeClientRepo())

	past := testNow.AddDate(0, 0, -10)
	resp := jsonRequest(t, app, http.MethodPut, "/account/acc-1/validity/expiry",
		map[string]string{"expiresAt": past.Format(time.RFC3339)})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	require.NotNil(t, body.Validity.ExpiresAt)
	assert.Equal(t, testNow.AddDate(0, 0, 1), body.Validity.ExpiresAt.UTC(),
		"una fecha pasada nunca produce una ventana degenerada: mínimo 1 día")
	assert.Equal(t, "active", body.Validity.Status)
}

func TestValiditySetExpiry_SinFechaRetorna400(t *testing.T) {
	app := buildValidityApp(newFakeValidityRepo(), newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodPut, "/account/acc-1/validity/expiry",
		map[string]string{})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// PATCH /account/:clientId/validity/disable
// ──────────────────────────────────────────────────────────────────────────────

func TestValidityDisable_SoloCambiaElStatus(t *testing.T) {
	repo := newFakeValidityRepo()
	start := testNow.AddDate(0, -6, 0)
	exp := testNow.AddDate(0, 6, 0)
	repo.records["acc-1"] = &entity.AccountValidity{
		ClientID:  "acc-1",
		Status:    entity.StatusActive,
		StartAt:   &start,
		ExpiresAt: &exp,
	}
	app := buildValidityApp(repo, newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodPatch, "/account/acc-1/validity/disable", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeValidity(t, resp)
	assert.Equal(t, "disabled", body.Validity.Status)
	assert.False(t, body.Validity.IsActive)
	require.NotNil(t, body.Validity.StartAt, "disable preserva startAt")
	require.NotNil(t, body.Validity.ExpiresAt, "disable preserva expiresAt")
	assert.Equal(t, exp, body.Validity.ExpiresAt.UTC())

	saved := repo.records["acc-1"]
	assert.Equal(t, entity.StatusDisabled, saved.Status)
	assert.Equal(t, exp, *saved.ExpiresAt)
}

func TestValidityDisable_SinRegistroRetorna404(t *testing.T) {
	app := buildValidityApp(newFakeValidityRepo(), newFakeClientRepo())

	resp := jsonRequest(t, app, http.MethodPatch, "/account/acc-1/validity/disable", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
