package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	appanalytics "github.com/jhoicas/tienda-backoffice/internal/application/analytics"
	"github.com/jhoicas/tienda-backoffice/internal/application/auth"
	"github.com/jhoicas/tienda-backoffice/internal/application/inventory"
	"github.com/jhoicas/tienda-backoffice/internal/application/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/application/orders"
	"github.com/jhoicas/tienda-backoffice/internal/application/returns"
	"github.com/jhoicas/tienda-backoffice/internal/domain/entity"
	domainloyalty "github.com/jhoicas/tienda-backoffice/internal/domain/loyalty"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/carrier"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/metrics"
	"github.com/jhoicas/tienda-backoffice/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/tienda-backoffice/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-backoffice/pkg/jwt"
	"github.com/jhoicas/tienda-backoffice/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// API completa sobre el store en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	adminID    = "admin-1"
	staffID    = "staff-1"
	customerID = "user-1"
	variantID  = "var-a"
	supplierID = "sup-1"
	adminPass  = "clave-segura"
)

type testAPI struct {
	app     *fiber.App
	store   *memory.Store
	metrics *metrics.Prometheus
	tokens  map[string]string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	store := memory.NewStore()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPass), bcrypt.MinCost)
	require.NoError(t, err)
	store.SeedUser(entity.User{ID: adminID, Email: "admin@tienda.test", PasswordHash: string(hash), Role: entity.RoleAdmin})
	store.SeedUser(entity.User{ID: staffID, Email: "bodega@tienda.test", Role: entity.RoleStaff})
	store.SeedUser(entity.User{ID: customerID, Email: "cliente@tienda.test", Role: entity.RoleCustomer})
	store.SeedVariant(entity.ProductVariant{ID: variantID, SKU: "CAM-M-AZ", SellPrice: decimal.NewFromInt(1500), CostPrice: decimal.NewFromInt(800), StockQuantity: 10})
	store.SeedSupplier(entity.Supplier{ID: supplierID, Name: "Textiles SAS", Active: true})

	log := logger.Nop()
	prom := metrics.NewPrometheus(false)
	repos := store.Repos()
	ledger := loyalty.NewLedger(domainloyalty.DefaultPointsPerUnit, domainloyalty.DefaultTiers, prom, log)
	status := orders.NewStatusUseCase(store, repos.Orders, repos.Events, carrier.NewMockCarrier(0), time.Second, ledger, prom, log)

	app := fiber.New()
	app.Use(apphttp.Observe(log, prom))
	apphttp.Router(app, apphttp.RouterDeps{
		CreateOrder:  orders.NewCreateOrderUseCase(store, ledger, 100, prom, log),
		OrderStatus:  status,
		Orders:       orders.NewOrderUseCase(store, repos.Orders),
		ReceiveGoods: inventory.NewReceiveGoodsUseCase(store, repos.Receipts, prom, log),
		ReceiptPDF:   inventory.NewReceiptPDFUseCase(repos.Receipts, repos.Suppliers, repos.Variants, pdf.NewMarotoPDFGenerator()),
		Restock:      inventory.NewReplenishmentUseCase(store.Analytics(), 10),
		Returns:      returns.NewUseCase(store, repos.Returns, repos.Orders, status, log),
		Loyalty:      loyalty.NewUseCase(repos.Users, repos.Loyalty),
		DashboardUC:  appanalytics.NewDashboardUseCase(store.Analytics(), 10),
		AuthUC:       auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		JWTSecret:    testJWTSecret,
	})

	api := &testAPI{app: app, store: store, metrics: prom, tokens: map[string]string{}}
	for id, role := range map[string]string{adminID: entity.RoleAdmin, staffID: entity.RoleStaff, customerID: entity.RoleCustomer} {
		tok, err := pkgjwt.Generate(testJWTSecret, id, role, testIssuer, testExpMin)
		require.NoError(t, err)
		api.tokens[id] = tok
	}
	return api
}

// do envía la petición como el usuario indicado ("" = sin token) y devuelve status + cuerpo.
func (a *testAPI) do(t *testing.T, method, path, as string, body interface{}) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if as != "" {
		req.Header.Set("Authorization", "Bearer "+a.tokens[as])
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode(t *testing.T, raw []byte, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(raw, out), string(raw))
}

type orderBody struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	TrackingCode string `json:"tracking_code"`
	CarrierName  string `json:"carrier_name"`
	FinalTotal   string `json:"final_total"`
	Items        []struct {
		VariantID string `json:"variant_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *testAPI) createOrder(t *testing.T, qty int) orderBody {
	t.Helper()
	code, raw := a.do(t, http.MethodPost, "/api/orders", staffID, fiber.Map{
		"user_id": customerID,
		"items":   []fiber.Map{{"variant_id": variantID, "quantity": qty}},
	})
	require.Equal(t, http.StatusCreated, code, string(raw))
	var o orderBody
	decode(t, raw, &o)
	return o
}

func (a *testAPI) setStatus(t *testing.T, orderID, status string) {
	t.Helper()
	code, raw := a.do(t, http.MethodPut, "/api/orders/"+orderID, staffID, fiber.Map{"status": status})
	require.Equal(t, http.StatusOK, code, string(raw))
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_LoginDevuelveToken(t *testing.T) {
	a := newTestAPI(t)

	code, raw := a.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "ADMIN@tienda.test", "password": adminPass})
	require.Equal(t, http.StatusOK, code, string(raw))

	var out struct {
		Token string `json:"token"`
		User  struct {
			Role string `json:"role"`
		} `json:"user"`
	}
	decode(t, raw, &out)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.User.Role)

	userID, role, err := pkgjwt.Parse(testJWTSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, adminID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestAPI_LoginCredencialesInvalidas(t *testing.T) {
	a := newTestAPI(t)

	code, raw := a.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "admin@tienda.test", "password": "otra"})
	assert.Equal(t, http.StatusUnauthorized, code)
	var e errorBody
	decode(t, raw, &e)
	assert.Equal(t, "UNAUTHORIZED", e.Code)

	code, _ = a.do(t, http.MethodPost, "/api/auth/login", "", fiber.Map{"email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAPI_RutasProtegidas(t *testing.T) {
	a := newTestAPI(t)

	code, _ := a.do(t, http.MethodGet, "/api/orders", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = a.do(t, http.MethodGet, "/api/orders", customerID, nil)
	assert.Equal(t, http.StatusForbidden, code, "el cliente no opera el back-office")

	code, _ = a.do(t, http.MethodGet, "/api/users/"+customerID+"/loyalty", customerID, nil)
	assert.Equal(t, http.StatusOK, code, "el cliente consulta sus propios puntos")

	code, _ = a.do(t, http.MethodGet, "/api/users/"+staffID+"/loyalty", customerID, nil)
	assert.Equal(t, http.StatusForbidden, code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_CrearYConsultarPedido(t *testing.T) {
	a := newTestAPI(t)
	o := a.createOrder(t, 2)
	assert.Equal(t, "PENDING", o.Status)
	assert.Equal(t, "3000", o.FinalTotal)

	code, raw := a.do(t, http.MethodGet, "/api/orders/"+o.ID, staffID, nil)
	require.Equal(t, http.StatusOK, code)
	var got orderBody
	decode(t, raw, &got)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 2, got.Items[0].Quantity)

	code, raw = a.do(t, http.MethodGet, "/api/orders/"+o.ID+"/items", staffID, nil)
	require.Equal(t, http.StatusOK, code)
	var items []json.RawMessage
	decode(t, raw, &items)
	assert.Len(t, items, 1)

	code, raw = a.do(t, http.MethodGet, "/api/users/"+customerID+"/orders", customerID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(raw), o.ID)
}

func TestAPI_CrearPedidoErrores(t *testing.T) {
	a := newTestAPI(t)

	cases := []struct {
		name   string
		body   fiber.Map
		status int
		code   string
	}{
		{"sin líneas", fiber.Map{"user_id": customerID, "items": []fiber.Map{}}, http.StatusBadRequest, "VALIDATION"},
		{"cantidad cero", fiber.Map{"user_id": customerID, "items": []fiber.Map{{"variant_id": variantID, "quantity": 0}}}, http.StatusBadRequest, "VALIDATION"},
		{"stock insuficiente", fiber.Map{"user_id": customerID, "items": []fiber.Map{{"variant_id": variantID, "quantity": 11}}}, http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"variante inexistente", fiber.Map{"user_id": customerID, "items": []fiber.Map{{"variant_id": "nope", "quantity": 1}}}, http.StatusNotFound, "NOT_FOUND"},
		{"puntos insuficientes", fiber.Map{"user_id": customerID, "points_used": 5, "items": []fiber.Map{{"variant_id": variantID, "quantity": 1}}}, http.StatusConflict, "INSUFFICIENT_POINTS"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			code, raw := a.do(t, http.MethodPost, "/api/orders", staffID, tc.body)
			assert.Equal(t, tc.status, code, string(raw))
			var e errorBody
			decode(t, raw, &e)
			assert.Equal(t, tc.code, e.Code)
		})
	}
}

func TestAPI_EstadosYDespacho(t *testing.T) {
	a := newTestAPI(t)
	o := a.createOrder(t, 1)

	code, raw := a.do(t, http.MethodPut, "/api/orders/"+o.ID, staffID, fiber.Map{"status": "FOO"})
	assert.Equal(t, http.StatusBadRequest, code, string(raw))

	code, raw = a.do(t, http.MethodPut, "/api/orders/"+o.ID, staffID, fiber.Map{"status": "DELIVERED"})
	assert.Equal(t, http.StatusConflict, code, string(raw))

	code, raw = a.do(t, http.MethodPost, "/api/orders/"+o.ID+"/ship?carrierId=XYZ", staffID, nil)
	assert.Equal(t, http.StatusBadRequest, code, string(raw))

	code, raw = a.do(t, http.MethodPost, "/api/orders/"+o.ID+"/ship?carrierId=GHN", staffID, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	var shipped orderBody
	decode(t, raw, &shipped)
	assert.Equal(t, "SHIPPING", shipped.Status)
	assert.True(t, strings.HasPrefix(shipped.TrackingCode, "GHN"+o.ID))

	code, raw = a.do(t, http.MethodGet, "/api/orders/"+o.ID+"/history", staffID, nil)
	require.Equal(t, http.StatusOK, code)
	var history []struct {
		Status string `json:"status"`
	}
	decode(t, raw, &history)
	require.Len(t, history, 2)
	assert.Equal(t, "PENDING", history[0].Status)
	assert.Equal(t, "SHIPPING", history[1].Status)
}

// Los valores tomados de la URL se persisten con copia propia: peticiones
// posteriores no alteran lo ya guardado.
func TestAPI_TransportadoraNoCambiaConPeticionesPosteriores(t *testing.T) {
	a := newTestAPI(t)
	o := a.createOrder(t, 1)

	code, raw := a.do(t, http.MethodPost, "/api/orders/"+o.ID+"/ship?carrierId=GHN", staffID, nil)
	require.Equal(t, http.StatusOK, code, string(raw))

	for i := 0; i < 3; i++ {
		code, _ = a.do(t, http.MethodPost, "/api/orders/"+o.ID+"/ship?carrierId=QQQQ", staffID, nil)
		assert.NotEqual(t, http.StatusOK, code)
	}

	code, raw = a.do(t, http.MethodGet, "/api/orders/"+o.ID, staffID, nil)
	require.Equal(t, http.StatusOK, code)
	var got orderBody
	decode(t, raw, &got)
	assert.Equal(t, "GHN", got.CarrierName)
	assert.Equal(t, "SHIPPING", got.Status)
}

func TestAPI_EstadoDeDevolucionNoCambiaConPeticionesPosteriores(t *testing.T) {
	a := newTestAPI(t)
	o := a.createOrder(t, 1)
	a.setStatus(t, o.ID, "SHIPPING")
	a.setStatus(t, o.ID, "DELIVERED")

	code, raw := a.do(t, http.MethodPost, "/api/returns", staffID, fiber.Map{"order_id": o.ID, "reason": "Color"})
	require.Equal(t, http.StatusCreated, code, string(raw))
	var ret struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decode(t, raw, &ret)

	code, raw = a.do(t, http.MethodPut, "/api/returns/"+ret.ID+"/status?status=REJECTED", adminID, nil)
	require.Equal(t, http.StatusOK, code, string(raw))

	for i := 0; i < 3; i++ {
		code, _ = a.do(t, http.MethodPut, "/api/returns/"+ret.ID+"/status?status=XXXXXXXX", adminID, nil)
		assert.Equal(t, http.StatusBadRequest, code)
	}

	code, raw = a.do(t, http.MethodGet, "/api/returns/"+ret.ID, staffID, nil)
	require.Equal(t, http.StatusOK, code)
	decode(t, raw, &ret)
	assert.Equal(t, "REJECTED", ret.Status)
}

func TestAPI_EliminarSoloCanceladosYSoloAdmin(t *testing.T) {
	a := newTestAPI(t)
	o := a.createOrder(t, 1)

	code, _ := a.do(t, http.MethodDelete, "/api/orders/"+o.ID, adminID, nil)
	assert.Equal(t, http.StatusConflict, code)

	a.setStatus(t, o.ID, "CANCELLED")

	code, _ = a.do(t, http.MethodDelete, "/api/orders/"+o.ID, staffID, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = a.do(t, http.MethodDelete, "/api/orders/"+o.ID, adminID, nil)
	assert.Equal(t, http.StatusNoContent, code)

	code, _ = a.do(t, http.MethodGet, "/api/orders/"+o.ID, staffID, nil)
	assert.Equal(t, http.StatusNotFound, code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Entradas de mercancía
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_EntradaDeMercanciaYPDF(t *testing.T) {
	a := newTestAPI(t)

	code, raw := a.do(t, http.MethodPost, "/api/goods-receipts", staffID, fiber.Map{
		"supplier_id": supplierID,
		"notes":       "Contenedor 7",
		"lines":       []fiber.Map{{"variant_id": variantID, "quantity": 10, "import_price": "1000"}},
	})
	require.Equal(t, http.StatusCreated, code, string(raw))
	var receipt struct {
		ID          string `json:"id"`
		UserID      string `json:"user_id"`
		TotalAmount string `json:"total_amount"`
	}
	decode(t, raw, &receipt)
	assert.Equal(t, staffID, receipt.UserID, "el receptor sale del token")
	assert.Equal(t, "10000", receipt.TotalAmount)

	v, err := a.store.Repos().Variants.GetByID(context.Background(), variantID)
	require.NoError(t, err)
	assert.Equal(t, 20, v.StockQuantity)
	assert.Equal(t, "900", v.CostPrice.String(), "(10×800 + 10×1000) / 20")

	req := httptest.NewRequest(http.MethodGet, "/api/goods-receipts/"+receipt.ID+"/pdf", nil)
	req.Header.Set("Authorization", "Bearer "+a.tokens[staffID])
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_EntradaInvalida(t *testing.T) {
	a := newTestAPI(t)

	code, _ := a.do(t, http.MethodPost, "/api/goods-receipts", staffID, fiber.Map{"supplier_id": supplierID})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = a.do(t, http.MethodPost, "/api/goods-receipts", staffID, fiber.Map{
		"supplier_id": supplierID,
		"lines":       []fiber.Map{{"variant_id": variantID, "quantity": 1, "import_price": "0"}},
	})
	assert.Equal(t, http.StatusBadRequest, code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Devoluciones, puntos y dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_DevolucionAprobadaMarcaPedidoDevuelto(t *testing.T) {
	a := newTestAPI(t)
	o := a.createOrder(t, 2)

	code, _ := a.do(t, http.MethodPost, "/api/returns", staffID, fiber.Map{"order_id": o.ID, "reason": "Talla"})
	assert.Equal(t, http.StatusConflict, code, "solo pedidos entregados")

	a.setStatus(t, o.ID, "SHIPPING")
	a.setStatus(t, o.ID, "DELIVERED")

	code, raw := a.do(t, http.MethodPost, "/api/returns", staffID, fiber.Map{"order_id": o.ID, "reason": "Talla"})
	require.Equal(t, http.StatusCreated, code, string(raw))
	var ret struct {
		ID           string `json:"id"`
		Status       string `json:"status"`
		RefundAmount string `json:"refund_amount"`
	}
	decode(t, raw, &ret)
	assert.Equal(t, "PENDING", ret.Status)
	assert.Equal(t, "3000", ret.RefundAmount)

	code, _ = a.do(t, http.MethodPut, "/api/returns/"+ret.ID+"/status?status=APPROVED", staffID, nil)
	assert.Equal(t, http.StatusForbidden, code, "aprobar es solo de admin")

	code, raw = a.do(t, http.MethodPut, "/api/returns/"+ret.ID+"/status?status=APPROVED", adminID, nil)
	require.Equal(t, http.StatusOK, code, string(raw))

	code, raw = a.do(t, http.MethodGet, "/api/orders/"+o.ID, staffID, nil)
	require.Equal(t, http.StatusOK, code)
	var got orderBody
	decode(t, raw, &got)
	assert.Equal(t, "RETURNED", got.Status)

	code, raw = a.do(t, http.MethodGet, "/api/orders/"+o.ID+"/returns", staffID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(raw), ret.ID)
}

func TestAPI_PuntosTrasEntrega(t *testing.T) {
	a := newTestAPI(t)
	o := a.createOrder(t, 2) // 3000 → 3 puntos
	a.setStatus(t, o.ID, "SHIPPING")
	a.setStatus(t, o.ID, "DELIVERED")

	code, raw := a.do(t, http.MethodGet, "/api/users/"+customerID+"/loyalty", customerID, nil)
	require.Equal(t, http.StatusOK, code)
	var bal struct {
		RewardPoints int  `json:"reward_points"`
		LedgerTotal  int  `json:"ledger_total"`
		Consistent   bool `json:"consistent"`
	}
	decode(t, raw, &bal)
	assert.Equal(t, 3, bal.RewardPoints)
	assert.Equal(t, 3, bal.LedgerTotal)
	assert.True(t, bal.Consistent)

	code, raw = a.do(t, http.MethodGet, "/api/users/"+customerID+"/loyalty/entries", customerID, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(raw), "ACCRUAL")
}

func TestAPI_DashboardYMetricas(t *testing.T) {
	a := newTestAPI(t)
	a.createOrder(t, 1)

	code, raw := a.do(t, http.MethodGet, "/api/dashboard/summary", staffID, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	var summary struct {
		TotalOrders int `json:"total_orders"`
	}
	decode(t, raw, &summary)
	assert.Equal(t, 1, summary.TotalOrders)

	// más tráfico antes de leer: las etiquetas ya registradas no deben cambiar
	for i := 0; i < 3; i++ {
		a.do(t, http.MethodGet, "/api/dashboard/summary", staffID, nil)
	}

	rec := httptest.NewRecorder()
	a.metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	out := rec.Body.String()
	assert.Regexp(t, `tienda_http_requests_total\{method="POST",route="/api/orders/?",status="201"\} 1`, out)
	assert.Contains(t, out, "tienda_orders_created_total 1")
	assert.NotContains(t, out, `method="GETT"`)
	assert.Regexp(t, `tienda_http_requests_total\{method="GET",route="/api/dashboard/summary",status="200"\} [1-9]`, out)
}

func TestAPI_ListaDeReposicion(t *testing.T) {
	a := newTestAPI(t)
	a.createOrder(t, 2) // stock 10 → 8, bajo el umbral de 10

	code, raw := a.do(t, http.MethodGet, "/api/inventory/replenishment", staffID, nil)
	require.Equal(t, http.StatusOK, code, string(raw))
	var list []struct {
		VariantID         string `json:"variant_id"`
		SuggestedOrderQty int    `json:"suggested_order_qty"`
		Priority          int    `json:"priority"`
	}
	decode(t, raw, &list)
	require.Len(t, list, 1)
	assert.Equal(t, variantID, list[0].VariantID)
	assert.Equal(t, 7, list[0].SuggestedOrderQty)
	assert.Equal(t, 1, list[0].Priority)

	code, _ = a.do(t, http.MethodGet, "/api/inventory/replenishment", customerID, nil)
	assert.Equal(t, http.StatusForbidden, code)
}
