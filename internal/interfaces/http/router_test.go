package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
	"golang.org/x/crypto/bcrypt"

	"github.com/fruteria-olga/panel/docs"
	"github.com/fruteria-olga/panel/internal/application/analytics"
	"github.com/fruteria-olga/panel/internal/application/cache"
	"github.com/fruteria-olga/panel/internal/application/dto"
	"github.com/fruteria-olga/panel/internal/application/store"
	"github.com/fruteria-olga/panel/internal/domain/entity"
	"github.com/fruteria-olga/panel/internal/domain/repository"
	"github.com/fruteria-olga/panel/internal/infrastructure/memkv"
	"github.com/fruteria-olga/panel/internal/infrastructure/pdf"
	apphttp "github.com/fruteria-olga/panel/internal/interfaces/http"
	"github.com/fruteria-olga/panel/pkg/logger"
)

// newTestApp arma el panel completo sin base remota: todo queda en memoria y en el caché local.
func newTestApp(t *testing.T) (*fiber.App, *store.Store) {
	t.Helper()
	c := cache.New(memkv.New(0), 20000, logger.Nop())
	s := store.New(store.Deps{
		Gateway: repository.UnavailableGateway(),
		Cache:   c,
		Logger:  logger.Nop(),
		Defaults: entity.Preferences{
			Theme: entity.ThemeLight, Currency: entity.CurrencyPEN, ExchangeRate: decimal.RequireFromString("3.75"),
		},
		BcryptCost: bcrypt.MinCost,
	})
	s.Bootstrap(context.Background())
	t.Cleanup(s.Wait)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Store:       s,
		DashboardUC: analytics.NewDashboardUseCase(s),
		PDF:         pdf.NewMarotoPDFGenerator(),
		Tokens:      apphttp.TokenConfig{Secret: testJWTSecret, Issuer: "fruteria-olga", ExpirationMinutes: 30},
	})
	return app, s
}

// call envía la petición; token vacío = sin cabecera Authorization.
func call(t *testing.T, app *fiber.App, token, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App, username, password string) string {
	t.Helper()
	resp := call(t, app, "", http.MethodPost, "/api/session/login", dto.LoginRequest{Username: username, Password: password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sess := decode[dto.SessionResponse](t, resp)
	require.NotEmpty(t, sess.Token)
	return sess.Token
}

func loginMaster(t *testing.T, app *fiber.App) string {
	t.Helper()
	return login(t, app, "FO-ALEJANDRO", "123456")
}

func TestRouter_RutaProtegidaSinSesion(t *testing.T) {
	app, _ := newTestApp(t)

	resp := call(t, app, "", http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, "", http.MethodGet, "/api/status", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	st := decode[dto.StatusResponse](t, resp)
	assert.False(t, st.Connected)
	assert.False(t, st.Tables["products"])
}

func TestRouter_LoginFallidoMismoMensaje(t *testing.T) {
	app, _ := newTestApp(t)

	wrongPass := call(t, app, "", http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "FO-ALEJANDRO", Password: "x"})
	unknown := call(t, app, "", http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "nadie", Password: "x"})

	assert.Equal(t, http.StatusUnauthorized, wrongPass.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, unknown.StatusCode)
	assert.Equal(t, decode[dto.ErrorResponse](t, wrongPass), decode[dto.ErrorResponse](t, unknown))
}

func TestRouter_LoginYEstado(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sess := decode[dto.SessionResponse](t, resp)
	assert.Equal(t, entity.MasterUserID, sess.User.ID)

	resp = call(t, app, tok, http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "123456", "el estado no debe exponer contraseñas")

	resp = call(t, app, tok, http.MethodDelete, "/api/session", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = call(t, app, tok, http.MethodGet, "/api/state", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "el token revocado ya no sirve")
}

func TestRouter_VentaDescuentaStock(t *testing.T) {
	app, s := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodPost, "/api/products", entity.Product{
		Name: "Plátano", Category: "Frutas", Unit: entity.UnitKilos, Price: decimal.NewFromInt(3), Stock: 10, Active: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	product := decode[entity.Product](t, resp)
	require.False(t, product.ID.IsZero())

	resp = call(t, app, tok, http.MethodPost, "/api/sales", entity.Sale{
		Date:  "2025-03-05",
		Items: []entity.SaleItem{{ProductID: product.ID, ProductName: product.Name, Quantity: 4, UnitPrice: decimal.NewFromInt(3)}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sale := decode[entity.Sale](t, resp)
	assert.True(t, decimal.NewFromInt(12).Equal(sale.Total))
	assert.Equal(t, 6, s.Products()[0].Stock)

	resp = call(t, app, tok, http.MethodPost, "/api/sales/"+sale.ID.String()+"/cancel", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.SaleStatusAnulado, decode[entity.Sale](t, resp).SaleStatus)
	assert.Equal(t, 6, s.Products()[0].Stock, "anular no repone stock")
}

func TestRouter_Validaciones(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodPost, "/api/products", entity.Product{Name: "Uva", Unit: "Saco"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, tok, http.MethodPost, "/api/sales", entity.Sale{Date: "2025-01-01"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, tok, http.MethodPut, "/api/clients/no-existe", entity.Client{Name: "X"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, tok, http.MethodPut, "/api/preferences/currency", dto.CurrencyRequest{Currency: "EUR"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_Preferencias(t *testing.T) {
	app, s := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodPut, "/api/preferences/theme", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.ThemeDark, s.Preferences().Theme)

	resp = call(t, app, tok, http.MethodPut, "/api/preferences/currency", dto.CurrencyRequest{Currency: "usd"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.CurrencyUSD, s.Preferences().Currency)
}

func TestRouter_UsuariosSoloAdministrador(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodPost, "/api/users", dto.UserRequest{
		Name: "Rosa", Username: "rosa", Password: "clave", Role: entity.RoleVendedor, Active: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = call(t, app, tok, http.MethodPost, "/api/users", dto.UserRequest{
		Name: "Otra Rosa", Username: "rosa", Password: "clave", Role: entity.RoleVendedor, Active: true,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "username repetido")

	resp = call(t, app, tok, http.MethodDelete, "/api/users/"+entity.MasterUserID.String(), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "PROTECTED_USER", decode[dto.ErrorResponse](t, resp).Code)

	call(t, app, tok, http.MethodDelete, "/api/session", nil)
	rosa := login(t, app, "rosa", "clave")

	resp = call(t, app, rosa, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = call(t, app, rosa, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRouter_TareasYCalendario(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodPost, "/api/tasks", entity.OperationalTask{
		Date: "2025-01-10", Type: entity.TaskCrearBoletas, Frequency: entity.FrequencyConstante,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[entity.OperationalTask](t, resp)

	resp = call(t, app, tok, http.MethodPost, "/api/tasks/"+task.ID.String()+"/toggle?date=2025-02-10", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"2025-02-10"}, decode[entity.OperationalTask](t, resp).CompletedDates)

	resp = call(t, app, tok, http.MethodGet, "/api/tasks/pending?year=2025&month=2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp = call(t, app, tok, http.MethodGet, "/api/tasks/pending?year=2025&month=3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = call(t, app, tok, http.MethodGet, "/api/tasks/calendar?year=2025&month=13", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_ReportePDF(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodGet, "/api/sales/report.pdf?from=2025-1-1&to=2025-1-31", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte-ventas-2025-01-01-2025-01-31.pdf")
}

func TestRouter_Dashboard(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodGet, "/api/dashboard?year=2025", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.DashboardSummaryDTO](t, resp)
	assert.Equal(t, 2025, out.Year)
	assert.Len(t, out.Monthly, 12)
}

func TestRouter_SesionNoSeComparteEntreLlamadores(t *testing.T) {
	app, s := newTestApp(t)
	loginMaster(t, app)

	resp := call(t, app, "", http.MethodGet, "/api/users/", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "sin token no se hereda la sesión del administrador")
	assert.Equal(t, "NO_SESSION", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, "", http.MethodDelete, "/api/session", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_, open := s.CurrentUser()
	assert.True(t, open, "un llamador anónimo no cierra la sesión ajena")

	resp = call(t, app, "no-es-un-token", http.MethodGet, "/api/state", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_TokenDeUsuarioDesactivado(t *testing.T) {
	app, _ := newTestApp(t)
	admin := loginMaster(t, app)

	resp := call(t, app, admin, http.MethodPost, "/api/users", dto.UserRequest{
		Name: "Rosa", Username: "rosa", Password: "clave", Role: entity.RoleVendedor, Active: true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)
	rosa := login(t, app, "rosa", "clave")

	resp = call(t, app, rosa, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "rosa", decode[dto.SessionResponse](t, resp).User.Username)

	resp = call(t, app, admin, http.MethodPut, "/api/users/"+created.ID.String(), dto.UserRequest{
		Name: "Rosa", Username: "rosa", Role: entity.RoleVendedor, Active: false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = call(t, app, rosa, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = call(t, app, admin, http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "la sesión del administrador sigue vigente")
}

func TestRouter_LoginNoRecortaUsuario(t *testing.T) {
	app, _ := newTestApp(t)

	resp := call(t, app, "", http.MethodPost, "/api/session/login", dto.LoginRequest{Username: " FO-ALEJANDRO", Password: "123456"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", decode[dto.ErrorResponse](t, resp).Code)

	resp = call(t, app, "", http.MethodPost, "/api/session/login", dto.LoginRequest{Username: "FO-ALEJANDRO ", Password: "123456"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRouter_TareaActualizadaYToggleInvalido(t *testing.T) {
	app, _ := newTestApp(t)
	tok := loginMaster(t, app)

	resp := call(t, app, tok, http.MethodPost, "/api/tasks", entity.OperationalTask{
		Date: "2025-01-10", Type: entity.TaskCrearBoletas, Frequency: entity.FrequencyConstante,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	task := decode[entity.OperationalTask](t, resp)

	resp = call(t, app, tok, http.MethodPut, "/api/tasks/"+task.ID.String(), entity.OperationalTask{
		Date: "2025-1-12", Type: entity.TaskCrearBoletas, Frequency: entity.FrequencyConstante,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[entity.OperationalTask](t, resp)
	assert.Equal(t, "2025-01-12", updated.Date, "la respuesta es el registro guardado")
	assert.Equal(t, entity.TaskStatusPendiente, updated.Status)

	resp = call(t, app, tok, http.MethodPost, "/api/tasks/"+task.ID.String()+"/toggle?date=12-01-2025", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestRouter_TodasLasRutasDocumentadas(t *testing.T) {
	app, _ := newTestApp(t)

	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)
	var spec struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &spec))

	params := regexp.MustCompile(`:(\w+)`)
	checked := 0
	for _, r := range app.GetRoutes(true) {
		if !strings.HasPrefix(r.Path, "/api") || r.Method == http.MethodHead {
			continue
		}
		path := params.ReplaceAllString(strings.TrimSuffix(r.Path, "/"), "{$1}")
		ops, ok := spec.Paths[path]
		if assert.Truef(t, ok, "ruta sin documentar: %s", path) {
			assert.Containsf(t, ops, strings.ToLower(r.Method), "método sin documentar: %s %s", r.Method, path)
		}
		checked++
	}
	assert.Equal(t, 46, checked)
}
