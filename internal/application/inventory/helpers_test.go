package inventory_test

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

type fixture struct {
	ctx    context.Context
	store  *memory.Store
	ledger *inventory.LedgerUseCase
	audit  *inventory.AuditUseCase
	pdf    *fakeRenderer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(store, store.Movements(), store.Corrections(), logger.Nop())
	pdf := &fakeRenderer{}
	audit := inventory.NewAuditUseCase(store.Products(), store.Movements(), ledger, pdf, logger.Nop())
	return &fixture{ctx: context.Background(), store: store, ledger: ledger, audit: audit, pdf: pdf}
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// product crea un producto activo con saldo 0.
func (f *fixture) product(t *testing.T, name, minimum string) *entity.Product {
	t.Helper()
	now := time.Now()
	p := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		UnitMeasure:  entity.DefaultUnitMeasure,
		CurrentStock: decimal.Zero,
		MinimumStock: d(minimum),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, f.store.Products().Create(f.ctx, p))
	return p
}

// stocked crea un producto y lo lleva al saldo indicado con una entrada, manteniendo el historial consistente.
func (f *fixture) stocked(t *testing.T, name, balance string) *entity.Product {
	t.Helper()
	p := f.product(t, name, "10")
	f.record(t, p.ID, entity.MovementEntrada, balance)
	return p
}

func (f *fixture) record(t *testing.T, productID string, tp entity.MovementType, qty string) *inventory.MovementResult {
	t.Helper()
	res, err := f.ledger.RecordMovement(f.ctx, inventory.RecordMovementInput{
		ProductID: productID,
		Type:      string(tp),
		Quantity:  d(qty),
		Operator:  "Alice",
	})
	require.NoError(t, err)
	return res
}

func (f *fixture) balance(t *testing.T, productID string) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetByID(f.ctx, productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) movementCount(t *testing.T, productID string) int {
	t.Helper()
	n, err := f.store.Movements().Count(f.ctx, repository.MovementFilter{ProductID: productID})
	require.NoError(t, err)
	return n
}

// panicTxRunner falla el test si se abre una transacción.
type panicTxRunner struct{ t *testing.T }

func (r panicTxRunner) Run(context.Context, func(
	repository.MovementRepository,
	repository.ProductRepository,
	repository.StockCorrectionRepository,
) error) error {
	r.t.Fatal("no se esperaba acceso al almacenamiento")
	return nil
}

type fakeRenderer struct {
	calls  int
	report *inventory.AuditReport
}

func (r *fakeRenderer) RenderAuditReport(report *inventory.AuditReport, w io.Writer) error {
	r.calls++
	r.report = report
	_, err := w.Write([]byte("%PDF-fake"))
	return err
}
