//go:build integration

package e2e

// End-to-end tests over real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Fpidal/recetas-tero-sub001/internal/config"
	"github.com/Fpidal/recetas-tero-sub001/internal/infra"
	"github.com/Fpidal/recetas-tero-sub001/internal/router"

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

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer) *http.Response {
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
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

func setupTestEnv(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("recetas_tero_test"),
		tcPostgres.WithUsername("tero"),
		tcPostgres.WithPassword("tero"),
		tcPostgres.BasicWaitStrategies(),
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
		Port:           8000,
		Env:            "test",
		DatabaseURL:    pgURL,
		RedisURL:       rdURL,
		WorkerPoolSize: 1,
		PDFStoragePath: t.TempDir(),
		NombreLocal:    "Tero E2E",
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Sin dispatcher: las órdenes se emiten sin generar documentos.
	r := router.New(cfg, db, rdb, nil)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

type idResp struct {
	ID string `json:"id"`
}

func crearProveedor(t *testing.T, srv *httptest.Server) string {
	resp := do(t, srv, "POST", "/v1/proveedores", jsonBody(t, map[string]any{
		"razon_social": "Frigorífico E2E SA",
		"cuit":         "30712223334",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var p idResp
	decodeJSON(t, resp, &p)
	return p.ID
}

func crearInsumoConPrecio(t *testing.T, srv *httptest.Server, proveedorID, nombre, precio string) string {
	resp := do(t, srv, "POST", "/v1/insumos", jsonBody(t, map[string]any{
		"nombre":        nombre,
		"categoria":     "carnes",
		"unidad_medida": "kg",
		"merma_pct":     "10",
		"iva_pct":       "21",
	}))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var in idResp
	decodeJSON(t, resp, &in)

	precioResp := do(t, srv, "POST", "/v1/insumos/"+in.ID+"/precios", jsonBody(t, map[string]any{
		"proveedor_id": proveedorID,
		"precio":       precio,
	}))
	require.Equal(t, http.StatusCreated, precioResp.StatusCode)
	precioResp.Body.Close()
	return in.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

// Ciclo completo de compras: orden → emitir → factura parcial → conciliación
// → orden faltante → anular factura.
func TestE2E_CicloDeCompra(t *testing.T) {
	srv := setupTestEnv(t)
	proveedorID := crearProveedor(t, srv)
	carne := crearInsumoConPrecio(t, srv, proveedorID, "Bife de chorizo", "8500")
	papa := crearInsumoConPrecio(t, srv, proveedorID, "Papa negra", "900")

	// 1. Crear orden en borrador
	ordenResp := do(t, srv, "POST", "/v1/ordenes", jsonBody(t, map[string]any{
		"proveedor_id": proveedorID,
		"items": []map[string]any{
			{"insumo_id": carne, "cantidad": "10", "precio_unitario": "8500"},
			{"insumo_id": papa, "cantidad": "20", "precio_unitario": "900"},
		},
	}))
	require.Equal(t, http.StatusCreated, ordenResp.StatusCode)
	var orden struct {
		ID     string `json:"id"`
		Numero string `json:"numero"`
		Estado string `json:"estado"`
	}
	decodeJSON(t, ordenResp, &orden)
	assert.Equal(t, "A01-0001", orden.Numero)
	assert.Equal(t, "borrador", orden.Estado)

	// 2. Emitir
	emitirResp := do(t, srv, "POST", "/v1/ordenes/"+orden.ID+"/emitir", nil)
	require.Equal(t, http.StatusOK, emitirResp.StatusCode)
	var emitida struct {
		Estado string `json:"estado"`
	}
	decodeJSON(t, emitirResp, &emitida)
	assert.Equal(t, "enviada", emitida.Estado)

	// 3. Factura parcial: la carne llega incompleta, la papa no llega
	facturaResp := do(t, srv, "POST", "/v1/facturas", jsonBody(t, map[string]any{
		"proveedor_id":    proveedorID,
		"numero":          "0001-00004521",
		"orden_compra_id": orden.ID,
		"items": []map[string]any{
			{"insumo_id": carne, "cantidad": "6", "precio_unitario": "8500"},
		},
	}))
	require.Equal(t, http.StatusCreated, facturaResp.StatusCode)
	var factura struct {
		ID          string `json:"id"`
		EstadoOrden string `json:"estado_orden"`
	}
	decodeJSON(t, facturaResp, &factura)
	assert.Equal(t, "recibida_parcial", factura.EstadoOrden)

	// 4. Conciliación
	concResp := do(t, srv, "GET", "/v1/ordenes/"+orden.ID+"/conciliacion", nil)
	require.Equal(t, http.StatusOK, concResp.StatusCode)
	var conc struct {
		Lineas []struct {
			Estado string `json:"estado"`
		} `json:"lineas"`
		Semaforo struct {
			NoEntregadas int  `json:"no_entregadas"`
			Parciales    int  `json:"parciales"`
			Perfecto     bool `json:"perfecto"`
		} `json:"semaforo"`
	}
	decodeJSON(t, concResp, &conc)
	require.Len(t, conc.Lineas, 2)
	assert.Equal(t, 1, conc.Semaforo.Parciales)
	assert.Equal(t, 1, conc.Semaforo.NoEntregadas)
	assert.False(t, conc.Semaforo.Perfecto)

	// 5. Orden faltante: 4 kg de carne + 20 kg de papa al precio de la orden
	faltResp := do(t, srv, "POST", "/v1/ordenes/"+orden.ID+"/orden-faltante", nil)
	require.Equal(t, http.StatusCreated, faltResp.StatusCode)
	var faltante struct {
		ID            string `json:"id"`
		Numero        string `json:"numero"`
		Estado        string `json:"estado"`
		OrdenOrigenID string `json:"orden_origen_id"`
		Total         string `json:"total"`
	}
	decodeJSON(t, faltResp, &faltante)
	assert.Equal(t, "A01-0002", faltante.Numero)
	assert.Equal(t, "borrador", faltante.Estado)
	assert.Equal(t, orden.ID, faltante.OrdenOrigenID)
	assert.Equal(t, "52000", faltante.Total) // 4*8500 + 20*900

	// Una segunda orden faltante choca con la existente
	dupResp := do(t, srv, "POST", "/v1/ordenes/"+orden.ID+"/orden-faltante", nil)
	assert.Equal(t, http.StatusConflict, dupResp.StatusCode)
	dupResp.Body.Close()

	// 6. Anular la factura: la orden vuelve a enviada, la faltante se anula
	anularResp := do(t, srv, "DELETE", "/v1/facturas/"+factura.ID, nil)
	require.Equal(t, http.StatusNoContent, anularResp.StatusCode)

	ordenDetalle := do(t, srv, "GET", "/v1/ordenes/"+orden.ID, nil)
	require.Equal(t, http.StatusOK, ordenDetalle.StatusCode)
	var revertida struct {
		Estado string `json:"estado"`
	}
	decodeJSON(t, ordenDetalle, &revertida)
	assert.Equal(t, "enviada", revertida.Estado)

	faltanteDetalle := do(t, srv, "GET", "/v1/ordenes/"+faltante.ID, nil)
	require.Equal(t, http.StatusOK, faltanteDetalle.StatusCode)
	var anulada struct {
		Estado string `json:"estado"`
	}
	decodeJSON(t, faltanteDetalle, &anulada)
	assert.Equal(t, "anulada", anulada.Estado)
}

// Costeo de punta a punta: insumo con precio → receta → plato → carta.
func TestE2E_CosteoDePlato(t *testing.T) {
	srv := setupTestEnv(t)
	proveedorID := crearProveedor(t, srv)
	// Costo unitario puesto: 1000 * 1.21 * 1.10 = 1331
	insumoID := crearInsumoConPrecio(t, srv, proveedorID, "Lomo", "1000")

	platoResp := do(t, srv, "POST", "/v1/platos", jsonBody(t, map[string]any{
		"nombre":             "Lomo a la pimienta",
		"seccion":            "principales",
		"precio_carta":       "9000",
		"food_cost_objetivo": "30",
		"items": []map[string]any{
			{"tipo": "insumo", "componente_id": insumoID, "cantidad": "0.4"},
		},
	}))
	require.Equal(t, http.StatusCreated, platoResp.StatusCode)
	var plato idResp
	decodeJSON(t, platoResp, &plato)

	costoResp := do(t, srv, "GET", "/v1/platos/"+plato.ID+"/costo", nil)
	require.Equal(t, http.StatusOK, costoResp.StatusCode)
	var costo struct {
		Total    string `json:"total"`
		Analisis struct {
			FoodCostRealizado string `json:"food_cost_realizado"`
			Estado            string `json:"estado"`
		} `json:"analisis"`
	}
	decodeJSON(t, costoResp, &costo)
	// 0.4 * 1331 = 532.4 → food cost 5.92% sobre 9000
	assert.Equal(t, "532.4", costo.Total)
	assert.Equal(t, "ok", costo.Analisis.Estado)

	cartaResp := do(t, srv, "GET", "/v1/carta/food-cost", nil)
	require.Equal(t, http.StatusOK, cartaResp.StatusCode)
	var carta struct {
		Platos []struct {
			Nombre    string `json:"nombre"`
			SinPrecio bool   `json:"sin_precio"`
		} `json:"platos"`
	}
	decodeJSON(t, cartaResp, &carta)
	require.Len(t, carta.Platos, 1)
	assert.Equal(t, "Lomo a la pimienta", carta.Platos[0].Nombre)
	assert.False(t, carta.Platos[0].SinPrecio)
}
