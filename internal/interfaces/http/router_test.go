package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/mini-estoque/internal/application/auth"
	"github.com/jhoicas/mini-estoque/internal/application/dto"
	"github.com/jhoicas/mini-estoque/internal/application/inventory"
	"github.com/jhoicas/mini-estoque/internal/application/usecase"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/memory"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/pdf"
	"github.com/jhoicas/mini-estoque/internal/infrastructure/spreadsheet"
	apphttp "github.com/jhoicas/mini-estoque/internal/interfaces/http"
	"github.com/jhoicas/mini-estoque/pkg/logger"
	"github.com/jhoicas/mini-estoque/pkg/validator"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAPI app completa sobre el store en memoria.
func buildAPI(t *testing.T) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	productUC := usecase.NewProductUseCase(store.Products())

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        productUC,
		ReportUC:         usecase.NewReportUseCase(productUC, pdf.NewMarotoPDFGenerator("test"), spreadsheet.NewExcelizeGenerator()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store, store.Movements(), logger.Nop()),
		AuthUC: auth.NewAuthUseCase(
			auth.Credentials{User: "admin", Password: "1234"},
			auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		),
		Validator: validator.MustNew(),
		Logger:    logger.Nop(),
		JWTSecret: testJWTSecret,
	})
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any, authHeader string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func login(t *testing.T, app *fiber.App) string {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "1234"}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	return "Bearer " + out.Token
}

func createProduct(t *testing.T, app *fiber.App, token, name string, stock, minimum int) dto.ProductResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name":            name,
		"category":        "Alimentos",
		"unit_price":      "7.90",
		"stock_quantity":  stock,
		"minimum_stock":   minimum,
		"expiration_date": "2026-12-31",
	}, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesInvalidas_Retorna401(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "x"}, "")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestLogin_SinCampos_Retorna400(t *testing.T) {
	app := buildAPI(t)
	resp := call(t, app, http.MethodPost, "/api/auth/login", map[string]string{}, "")
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Len(t, out.Details, 2)
}

func TestRutasProtegidas_SinToken_Retorna401(t *testing.T) {
	app := buildAPI(t)
	for _, path := range []string{"/api/products", "/api/inventory/movements", "/api/products/export.xlsx"} {
		resp := call(t, app, http.MethodGet, path, nil, "")
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateProduct_YListado(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	created := createProduct(t, app, token, "Arroz", 10, 3)
	assert.Positive(t, created.ID)
	assert.Equal(t, "7.9", created.UnitPrice.String())

	resp := call(t, app, http.MethodGet, "/api/products", nil, token)
	list := decode[dto.ProductListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, created.ID, list.Items[0].ID)
	assert.False(t, list.Items[0].LowStock)

	resp = call(t, app, http.MethodGet, "/api/products/"+itoa(created.ID), nil, token)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, "Arroz", got.Name)
}

func TestCreateProduct_Validacion(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name":            "Arroz",
		"unit_price":      0,
		"expiration_date": "31/12/2026",
	}, token)
	out := decode[dto.ErrorResponse](t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields := map[string]bool{}
	for _, d := range out.Details {
		fields[d.Field] = true
	}
	assert.True(t, fields["unit_price"])
	assert.True(t, fields["stock_quantity"])
	assert.True(t, fields["expiration_date"])

	resp = call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Arroz", "unit_price": "7.90", "stock_quantity": 5000000000, "minimum_stock": 5000000000,
	}, token)
	out = decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields = map[string]bool{}
	for _, d := range out.Details {
		fields[d.Field] = true
	}
	assert.True(t, fields["stock_quantity"])
	assert.True(t, fields["minimum_stock"])
}

func TestCreateProduct_SinFechaUsaHoy(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	resp := call(t, app, http.MethodPost, "/api/products", map[string]any{
		"name": "Sal", "unit_price": 2.5, "stock_quantity": 0,
	}, token)
	out := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Len(t, out.ExpirationDate, len("2006-01-02"))
	assert.True(t, out.LowStock)
}

func TestGetProduct_Errores(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)

	resp := call(t, app, http.MethodGet, "/api/products/999", nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products/abc", nil, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestListLowStock(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	createProduct(t, app, token, "Leite", 2, 5)
	createProduct(t, app, token, "Café", 10, 5)

	resp := call(t, app, http.MethodGet, "/api/products/low-stock", nil, token)
	list := decode[dto.ProductListResponse](t, resp)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Leite", list.Items[0].Name)
	assert.True(t, list.Items[0].LowStock)
}

func TestExportaciones(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	createProduct(t, app, token, "Arroz", 10, 3)

	resp := call(t, app, http.MethodGet, "/api/products/export.xlsx", nil, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "estoque.xlsx")

	resp = call(t, app, http.MethodGet, "/api/products/report.pdf", nil, token)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	data, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovimientos_EscenarioArroz(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	arroz := createProduct(t, app, token, "Arroz", 10, 3)

	resp := call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": arroz.ID, "kind": "saida", "quantity": 4,
	}, token)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "out", mov.Kind)
	assert.Equal(t, 6, mov.StockAfter)

	resp = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": arroz.ID, "kind": "out", "quantity": 20,
	}, token)
	errOut := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errOut.Code)
	assert.Contains(t, errOut.Message, "disponible: 6")

	resp = call(t, app, http.MethodGet, "/api/products/"+itoa(arroz.ID), nil, token)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 6, got.StockQuantity)

	resp = call(t, app, http.MethodGet, "/api/inventory/movements", nil, token)
	hist := decode[dto.MovementHistoryResponse](t, resp)
	require.Len(t, hist.Items, 1)
	assert.Equal(t, "Arroz", hist.Items[0].ProductName)
}

func TestMovimientos_PorNombre(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	createProduct(t, app, token, "Feijão", 5, 1)
	createProduct(t, app, token, "Óleo", 5, 1)
	createProduct(t, app, token, "Óleo", 2, 1)

	resp := call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_name": " Feijão ", "kind": "entrada", "quantity": 3,
	}, token)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 8, mov.StockAfter)

	resp = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_name": "Óleo", "kind": "in", "quantity": 1,
	}, token)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "AMBIGUOUS_PRODUCT", out.Code)

	resp = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_name": "Azeite", "kind": "in", "quantity": 1,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMovimientos_Validacion(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	p := createProduct(t, app, token, "Arroz", 10, 3)

	cases := map[string]map[string]any{
		"tipo desconocido": {"product_id": p.ID, "kind": "ajuste", "quantity": 1},
		"cantidad cero":    {"product_id": p.ID, "kind": "in", "quantity": 0},
		"sin producto":     {"kind": "in", "quantity": 1},
		"sin tipo":         {"product_id": p.ID, "quantity": 1},
		"cantidad enorme":  {"product_id": p.ID, "kind": "in", "quantity": 3000000000},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := call(t, app, http.MethodPost, "/api/inventory/movements", body, token)
			out := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", out.Code)
		})
	}

	resp := call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": 999, "kind": "in", "quantity": 1,
	}, token)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Entrada válida por sí sola pero que llevaría el stock por encima de INTEGER.
	resp = call(t, app, http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": p.ID, "kind": "in", "quantity": 2147483640,
	}, token)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", out.Code)

	resp = call(t, app, http.MethodGet, "/api/products/"+itoa(p.ID), nil, token)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 10, got.StockQuantity)
}

func TestHistorialPorProducto(t *testing.T) {
	app := buildAPI(t)
	token := login(t, app)
	a := createProduct(t, app, token, "Arroz", 10, 3)
	b := createProduct(t, app, token, "Café", 10, 3)

	for _, body := range []map[string]any{
		{"product_id": a.ID, "kind": "in", "quantity": 1},
		{"product_id": b.ID, "kind": "in", "quantity": 2},
		{"product_id": a.ID, "kind": "out", "quantity": 3},
	} {
		resp := call(t, app, http.MethodPost, "/api/inventory/movements", body, token)
		resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp := call(t, app, http.MethodGet, "/api/products/"+itoa(a.ID)+"/movements", nil, token)
	hist := decode[dto.MovementHistoryResponse](t, resp)
	require.Len(t, hist.Items, 2)
	assert.Equal(t, "out", hist.Items[0].Kind)
	assert.Equal(t, "in", hist.Items[1].Kind)
}

// ──────────────────────────────────────────────────────────────────────────────
// Health
// ──────────────────────────────────────────────────────────────────────────────

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealth(t *testing.T) {
	ok := fiber.New()
	ok.Get("/health", apphttp.HealthHandler("mini-estoque", pingerFunc(func(context.Context) error { return nil }), logger.Nop()))
	resp, err := ok.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := fiber.New()
	down.Get("/health", apphttp.HealthHandler("mini-estoque", pingerFunc(func(context.Context) error { return errors.New("connection refused") }), logger.Nop()))
	resp, err = down.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Contains(t, string(body), "unavailable")
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }
