//go:build integration

package router_test

// Pruebas de integración contra Postgres y Redis reales vía testcontainers.
// Ejecutar con: go test -tags integration ./internal/router/... -v
//
// Cubren el flujo completo del restaurante:
//   - catálogo → receta → inventario → pedido → consumo → alertas
//   - rechazo de salidas que dejarían stock negativo
//   - consulta de precios con caché Redis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CoronelSam/ezdd-proyect-sub000/internal/config"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/dto"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/infra"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/repository"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/router"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/service"
	"github.com/CoronelSam/ezdd-proyect-sub000/internal/worker"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Setup ────────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string // JWT de administrador
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("restaurante_test"),
		tcPostgres.WithUsername("restaurante"),
		tcPostgres.WithPassword("restaurante"),
		testcontainers.WithWaitStrategy(
			tcPostgres.BasicWaitStrategies()...,
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:               8000,
		Env:                "test",
		JWTSecret:          "test-secret-key",
		JWTExpirationHours: 8,
		JWTRefreshHours:    24,
		DatabaseURL:        pgURL,
		RedisURL:           rdURL,
		WorkerPoolSize:     1,
		PDFStoragePath:     t.TempDir(),
		PrecioCacheTTL:     60,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Usuario administrador sembrado por el propio servicio de auth.
	authSvc := service.NewAuthService(repository.NewUsuarioRepository(db), cfg)
	_, err = authSvc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "admin@test.local",
		Nombre:   "Admin Integración",
		Password: "restaurante2026",
		Rol:      "administrador",
	})
	require.NoError(t, err)

	notifyCB := infra.NewCircuitBreaker(infra.DefaultCBConfig())
	dispatcher := worker.NewDispatcher(rdb)

	r := router.New(cfg, db, rdb, notifyCB, dispatcher)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin@test.local", "password": "restaurante2026"}), "")
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, token: loginBody.AccessToken}
}

func crearJSON(t *testing.T, env *testEnv, path string, body map[string]any, dest any) {
	t.Helper()
	resp := do(t, env.server, "POST", path, jsonBody(t, body), env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "POST %s", path)
	decodeJSON(t, resp, dest)
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Flujo completo: catálogo → receta → stock → pedido → consumo → alerta.
func TestIntegracion_FlujoPedidoCompleto(t *testing.T) {
	env := setupTestEnv(t)

	var cat struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/categorias", map[string]any{"nombre": "Platos Fuertes"}, &cat)

	var prod struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/productos", map[string]any{
		"nombre":       "Pollo Frito",
		"categoria_id": cat.ID,
	}, &prod)

	var pres struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/presentaciones", map[string]any{
		"producto_id": prod.ID,
		"nombre":      "3 Piezas",
		"precio":      "85.00",
		"es_default":  true,
	}, &pres)

	var pollo struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/insumos", map[string]any{
		"nombre":        "Pollo",
		"unidad_medida": "libra",
		"costo_compra":  "25.00",
		"stock_minimo":  "10",
	}, &pollo)

	// Entrada inicial de 12 libras.
	var entrada struct {
		StockResultado string `json:"stock_resultado"`
	}
	crearJSON(t, env, "/v1/inventario/movimientos", map[string]any{
		"insumo_id": pollo.ID,
		"tipo":      "entrada",
		"cantidad":  "12",
	}, &entrada)
	assert.Equal(t, "12", entrada.StockResultado)

	crearJSON(t, env, "/v1/recetas", map[string]any{
		"presentacion_id":    pres.ID,
		"insumo_id":          pollo.ID,
		"cantidad_requerida": "1.1",
	}, &struct{}{})

	// Pedido de 2 × "3 Piezas".
	var pedido struct {
		ID     string `json:"id"`
		Estado string `json:"estado"`
		Total  string `json:"total"`
	}
	crearJSON(t, env, "/v1/pedidos", map[string]any{
		"detalles": []map[string]any{{
			"producto_id":     prod.ID,
			"presentacion_id": pres.ID,
			"cantidad":        2,
			"precio_unitario": "85.00",
		}},
	}, &pedido)
	assert.Equal(t, "pendiente", pedido.Estado)
	assert.Equal(t, "170", pedido.Total)

	// Consumo: 2 × 1.1 = 2.2 libras → quedan 9.8, por debajo del mínimo 10.
	var consumo struct {
		Total int `json:"total"`
	}
	crearJSON(t, env, "/v1/inventario/consumos", map[string]any{"pedido_id": pedido.ID}, &consumo)
	assert.Equal(t, 1, consumo.Total)

	stockResp := do(t, env.server, "GET", "/v1/insumos/"+pollo.ID+"/stock", nil, env.token)
	require.Equal(t, http.StatusOK, stockResp.StatusCode)
	var stock struct {
		CantidadActual string `json:"cantidad_actual"`
		StockBajo      bool   `json:"stock_bajo"`
	}
	decodeJSON(t, stockResp, &stock)
	assert.Equal(t, "9.8", stock.CantidadActual)
	assert.True(t, stock.StockBajo)

	alertasResp := do(t, env.server, "GET", "/v1/inventario/alertas", nil, env.token)
	require.Equal(t, http.StatusOK, alertasResp.StatusCode)
	var alertas []struct {
		Insumo string `json:"insumo"`
	}
	decodeJSON(t, alertasResp, &alertas)
	require.Len(t, alertas, 1)
	assert.Equal(t, "Pollo", alertas[0].Insumo)

	// Avanzar el estado y descargar la comanda.
	estadoResp := do(t, env.server, "PUT", "/v1/pedidos/"+pedido.ID+"/estado",
		jsonBody(t, map[string]string{"estado": "en_preparacion"}), env.token)
	require.Equal(t, http.StatusOK, estadoResp.StatusCode)
	estadoResp.Body.Close()

	ticketResp := do(t, env.server, "GET", "/v1/pedidos/"+pedido.ID+"/ticket", nil, env.token)
	require.Equal(t, http.StatusOK, ticketResp.StatusCode)
	ticketResp.Body.Close()
}

// Una salida mayor al stock disponible responde 409 y no toca el inventario.
func TestIntegracion_StockInsuficiente(t *testing.T) {
	env := setupTestEnv(t)

	var cafe struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/insumos", map[string]any{
		"nombre":        "Café",
		"unidad_medida": "onza",
		"costo_compra":  "4.00",
		"stock_minimo":  "0",
	}, &cafe)

	crearJSON(t, env, "/v1/inventario/movimientos", map[string]any{
		"insumo_id": cafe.ID,
		"tipo":      "entrada",
		"cantidad":  "5",
	}, &struct{}{})

	resp := do(t, env.server, "POST", "/v1/inventario/movimientos", jsonBody(t, map[string]any{
		"insumo_id": cafe.ID,
		"tipo":      "salida",
		"cantidad":  "5.5",
	}), env.token)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	stockResp := do(t, env.server, "GET", "/v1/insumos/"+cafe.ID+"/stock", nil, env.token)
	require.Equal(t, http.StatusOK, stockResp.StatusCode)
	var stock struct {
		CantidadActual string `json:"cantidad_actual"`
	}
	decodeJSON(t, stockResp, &stock)
	assert.Equal(t, "5", stock.CantidadActual)
}

// El endpoint público de precios responde igual con y sin caché tibio.
func TestIntegracion_ConsultaPreciosCacheada(t *testing.T) {
	env := setupTestEnv(t)

	var cat struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/categorias", map[string]any{"nombre": "Bebidas"}, &cat)
	var prod struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/productos", map[string]any{"nombre": "Refresco", "categoria_id": cat.ID}, &prod)
	var pres struct {
		ID string `json:"id"`
	}
	crearJSON(t, env, "/v1/presentaciones", map[string]any{
		"producto_id": prod.ID,
		"nombre":      "600ml",
		"precio":      "25.50",
	}, &pres)

	// Sin token: el endpoint es público para los tableros de menú.
	for i := 0; i < 2; i++ {
		resp := do(t, env.server, "GET", fmt.Sprintf("/v1/precio/%s", pres.ID), nil, "")
		require.Equal(t, http.StatusOK, resp.StatusCode, "intento %d", i+1)
		var precio struct {
			Producto     string `json:"producto"`
			Presentacion string `json:"presentacion"`
			Precio       string `json:"precio"`
		}
		decodeJSON(t, resp, &precio)
		assert.Equal(t, "Refresco", precio.Producto)
		assert.Equal(t, "600ml", precio.Presentacion)
		assert.Equal(t, "25.5", precio.Precio)
	}
}
