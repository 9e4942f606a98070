package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

type pdfStub struct{}

func (pdfStub) RenderAuditReport(_ *inventory.AuditReport, w io.Writer) error {
	_, err := w.Write([]byte("%PDF-1.3 stub"))
	return err
}

type apiFixture struct {
	t     *testing.T
	app   *fiber.App
	store *memory.Store
	token string
}

func newAPI(t *testing.T, role string) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	log := logger.Nop()
	ledger := inventory.NewLedgerUseCase(store, store.Movements(), store.Corrections(), log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:      ledger,
		Audit:       inventory.NewAuditUseCase(store.Products(), store.Movements(), ledger, pdfStub{}, log),
		StockAlerts: inventory.NewStockAlertsUseCase(store.Products()),
		Dashboard:   appanalytics.NewDashboardUseCase(store.Products(), store.Movements()),
		ProductUC:   usecase.NewProductUseCase(store.Products(), store.Warehouses(), store.Suppliers()),
		WarehouseUC: usecase.NewWarehouseUseCase(store.Warehouses()),
		SupplierUC:  usecase.NewSupplierUseCase(store.Suppliers()),
		JWTSecret:   testJWTSecret,
	})
	return &apiFixture{t: t, app: app, store: store, token: bearer(t, testJWTSecret, role, 60)}
}

// do envía la petición autenticada y decodifica el cuerpo JSON en out (si no es nil).
func (f *apiFixture) do(method, path string, body any, out any) int {
	f.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(f.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", f.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(f.t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(f.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (f *apiFixture) createProduct(name string, minimum float64) string {
	f.t.Helper()
	var p dto.ProductResponse
	status := f.do(http.MethodPost, "/api/products", map[string]any{"nome": name, "estoque_minimo": minimum}, &p)
	require.Equal(f.t, http.StatusCreated, status)
	return p.ID
}

func (f *apiFixture) move(productID, tipo string, qty float64) (int, dto.RecordMovementResponse) {
	f.t.Helper()
	var out dto.RecordMovementResponse
	status := f.do(http.MethodPost, "/api/inventory/movements", map[string]any{
		"product_id": productID,
		"tipo":       tipo,
		"quantidade": qty,
	}, &out)
	return status, out
}

func TestAPI_Health_SinToken(t *testing.T) {
	f := newAPI(t, "admin")
	resp, err := f.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_RegistrarMovimiento_EntradaYSalida(t *testing.T) {
	f := newAPI(t, "estoquista")
	id := f.createProduct("Arroz", 5)

	status, out := f.move(id, "entrada", 10)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "10", out.NewBalance.String())
	assert.Equal(t, testEmail, out.Movement.Operator, "sin operador en el body se usa el e-mail del token")
	assert.Equal(t, "entrada", out.Movement.Type)

	status, out = f.move(id, "venda", 3)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "7", out.NewBalance.String())
}

func TestAPI_RegistrarMovimiento_Errores(t *testing.T) {
	f := newAPI(t, "estoquista")
	id := f.createProduct("Feijão", 0)
	_, _ = f.move(id, "entrada", 2)

	var e dto.ErrorResponse
	status := f.do(http.MethodPost, "/api/inventory/movements", map[string]any{"product_id": id, "tipo": "saida", "quantidade": 5}, &e)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.CodeInsufficientStock, e.Code)

	status = f.do(http.MethodPost, "/api/inventory/movements", map[string]any{"product_id": id, "tipo": "transferencia", "quantidade": 1}, &e)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, e.Code)

	status = f.do(http.MethodPost, "/api/inventory/movements", map[string]any{"product_id": id, "tipo": "entrada", "quantidade": 0}, &e)
	assert.Equal(t, http.StatusBadRequest, status)

	status = f.do(http.MethodPost, "/api/inventory/movements", map[string]any{"product_id": "no-existe", "tipo": "entrada", "quantidade": 1}, &e)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.CodeNotFound, e.Code)
}

func TestAPI_RegistrarMovimiento_FalloDelAlmacenamiento(t *testing.T) {
	f := newAPI(t, "estoquista")
	id := f.createProduct("Café", 0)
	f.store.FailOn(memory.OpMovementCreate, errors.New("connection reset by peer"))

	var e dto.ErrorResponse
	status := f.do(http.MethodPost, "/api/inventory/movements", map[string]any{"product_id": id, "tipo": "entrada", "quantidade": 1}, &e)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, dto.CodeStoreError, e.Code)
	assert.Equal(t, "connection reset by peer", e.Message)

	f.store.ClearFailures()
	var p dto.ProductResponse
	require.Equal(t, http.StatusOK, f.do(http.MethodGet, "/api/products/"+id, nil, &p))
	assert.True(t, p.CurrentStock.IsZero(), "el saldo no cambia si la escritura falla")
}

func TestAPI_ListarMovimientos_FiltraPorTipo(t *testing.T) {
	f := newAPI(t, "estoquista")
	id := f.createProduct("Açúcar", 0)
	_, _ = f.move(id, "entrada", 10)
	_, _ = f.move(id, "uso", 1)
	_, _ = f.move(id, "venda", 2)

	var list dto.MovementListResponse
	status := f.do(http.MethodGet, "/api/inventory/movements?product_id="+id+"&tipo=venda", nil, &list)

	require.Equal(t, http.StatusOK, status)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "venda", list.Items[0].Type)
	assert.Equal(t, "Açúcar", list.Items[0].ProductName)
	assert.Equal(t, 1, list.Page.Total)

	var e dto.ErrorResponse
	status = f.do(http.MethodGet, "/api/inventory/movements?from=ontem", nil, &e)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAPI_EliminarMovimiento_SoloAdmin(t *testing.T) {
	admin := newAPI(t, "admin")
	id := admin.createProduct("Óleo", 0)
	_, in := admin.move(id, "entrada", 8)
	_, _ = admin.move(id, "saida", 3)

	// mismo store, otro rol
	admin.token = bearer(t, testJWTSecret, "estoquista", 60)
	status := admin.do(http.MethodDelete, "/api/inventory/movements/"+in.Movement.ID, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	admin.token = bearer(t, testJWTSecret, "admin", 60)
	var out dto.DeleteMovementResponse
	status = admin.do(http.MethodDelete, "/api/inventory/movements/"+in.Movement.ID, nil, &out)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "-3", out.RevertedBalance.String(), "revertir una entrada ya consumida puede dejar saldo negativo")

	status = admin.do(http.MethodDelete, "/api/inventory/movements/"+in.Movement.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestAPI_CorreccionYAuditoria(t *testing.T) {
	f := newAPI(t, "admin")
	id := f.createProduct("Sal", 0)
	_, _ = f.move(id, "entrada", 10)

	var corr dto.StockCorrectionResponse
	status := f.do(http.MethodPost, "/api/inventory/products/"+id+"/correction", map[string]any{"novo_estoque": 12}, &corr)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "10", corr.OldBalance.String())
	assert.Equal(t, "2", corr.Difference.String())

	var audit dto.AuditResultDTO
	status = f.do(http.MethodGet, "/api/inventory/audit/"+id, nil, &audit)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, audit.Match)
	require.NotNil(t, audit.Discrepancy)
	assert.Equal(t, "2", audit.Discrepancy.Difference.String())

	var report dto.AuditReportDTO
	status = f.do(http.MethodGet, "/api/inventory/audit", nil, &report)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 1, report.Checked)
	assert.Len(t, report.Discrepancies, 1)

	var rec dto.ReconcileResponse
	status = f.do(http.MethodPost, "/api/inventory/audit/"+id+"/reconcile", nil, &rec)
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, rec.Correction)
	assert.Equal(t, "10", rec.Correction.NewBalance.String())

	var corrections []dto.StockCorrectionResponse
	status = f.do(http.MethodGet, "/api/inventory/products/"+id+"/corrections", nil, &corrections)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, corrections, 2)
}

func TestAPI_CorreccionNegativaRechazada(t *testing.T) {
	f := newAPI(t, "admin")
	id := f.createProduct("Farinha", 0)

	var e dto.ErrorResponse
	status := f.do(http.MethodPost, "/api/inventory/products/"+id+"/correction", map[string]any{"novo_estoque": -1}, &e)

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, e.Code)
}

func TestAPI_ReportePDF(t *testing.T) {
	f := newAPI(t, "admin")
	req := httptest.NewRequest(http.MethodGet, "/api/inventory/audit/report.pdf", nil)
	req.Header.Set("Authorization", f.token)

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestAPI_EstoqueBajoYDashboard(t *testing.T) {
	f := newAPI(t, "vendedor")
	low := f.createProduct("Leite", 10)
	ok := f.createProduct("Pão", 2)
	_, _ = f.move(low, "entrada", 4)
	_, _ = f.move(ok, "entrada", 50)

	var alerts struct {
		Total int                   `json:"total"`
		Items []dto.LowStockItemDTO `json:"items"`
	}
	status := f.do(http.MethodGet, "/api/inventory/low-stock", nil, &alerts)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, alerts.Total)
	assert.Equal(t, low, alerts.Items[0].ProductID)
	assert.Equal(t, "11", alerts.Items[0].SuggestedOrderQty.String())

	var summary dto.DashboardSummaryDTO
	status = f.do(http.MethodGet, "/api/dashboard/summary", nil, &summary)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 2, summary.TotalProducts)
	assert.Equal(t, 1, summary.LowStockProducts)
	assert.Equal(t, 2, summary.MovementsToday)
}

func TestAPI_ProductoConMovimientosNoSeElimina(t *testing.T) {
	f := newAPI(t, "admin")
	id := f.createProduct("Vinagre", 0)
	_, _ = f.move(id, "entrada", 1)

	var e dto.ErrorResponse
	status := f.do(http.MethodDelete, "/api/products/"+id, nil, &e)

	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, dto.CodeConflict, e.Code)
}

func TestAPI_ProveedorDuplicado(t *testing.T) {
	f := newAPI(t, "admin")
	body := map[string]any{"nome": "Distribuidora", "cnpj": "11.222.333/0001-81"}

	assert.Equal(t, http.StatusCreated, f.do(http.MethodPost, "/api/suppliers", body, nil))

	var e dto.ErrorResponse
	assert.Equal(t, http.StatusConflict, f.do(http.MethodPost, "/api/suppliers", body, &e))
	assert.Equal(t, dto.CodeDuplicate, e.Code)
}

type lookupStub struct{ err error }

func (s lookupStub) LookupCEP(_ context.Context, cep string) (*dto.AddressDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.AddressDTO{CEP: cep, City: "Curitiba", State: "PR"}, nil
}

func (s lookupStub) LookupCNPJ(_ context.Context, doc string) (*dto.CompanyInfoDTO, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.CompanyInfoDTO{CNPJ: doc, LegalName: "ACME LTDA"}, nil
}

func newLookupApp(t *testing.T, stub lookupStub) *fiber.App {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		LookupUC:  usecase.NewLookupUseCase(stub, stub, time.Second),
		JWTSecret: testJWTSecret,
	})
	return app
}

func TestAPI_Lookup(t *testing.T) {
	app := newLookupApp(t, lookupStub{})
	req := httptest.NewRequest(http.MethodGet, "/api/lookup/cep/80010-000", nil)
	req.Header.Set("Authorization", bearer(t, testJWTSecret, "admin", 60))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var addr dto.AddressDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&addr))
	assert.Equal(t, "80010000", addr.CEP)
	assert.Equal(t, "PR", addr.State)
}

func TestAPI_Lookup_ServicioCaido(t *testing.T) {
	app := newLookupApp(t, lookupStub{err: errors.New("BrasilAPI: HTTP 503")})
	req := httptest.NewRequest(http.MethodGet, "/api/lookup/cnpj/11222333000181", nil)
	req.Header.Set("Authorization", bearer(t, testJWTSecret, "admin", 60))

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), dto.CodeUpstreamError)
}
