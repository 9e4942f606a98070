package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// Escenario A: saldo 100, venta de 30 deja 70.
func TestRecordMovement_VentaDescuentaSaldo(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Arroz 5kg", "100")

	res, err := f.ledger.RecordMovement(f.ctx, inventory.RecordMovementInput{
		ProductID: p.ID, Type: "venda", Quantity: d("30"), Operator: "Alice",
	})

	require.NoError(t, err)
	assert.Equal(t, "70", res.NewBalance.String())
	assert.Equal(t, entity.MovementVenda, res.Movement.Type)
	assert.Equal(t, "Alice", res.Movement.Operator)
	assert.Equal(t, "70", f.balance(t, p.ID).String())
}

// Escenario B: saldo 5, salida de 20 falla y no escribe nada.
func TestRecordMovement_StockInsuficienteNoEscribe(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Feijão", "5")
	before := f.movementCount(t, p.ID)

	_, err := f.ledger.RecordMovement(f.ctx, inventory.RecordMovementInput{
		ProductID: p.ID, Type: "saida", Quantity: d("20"),
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.False(t, domain.IsStoreError(err))
	assert.Equal(t, "5", f.balance(t, p.ID).String())
	assert.Equal(t, before, f.movementCount(t, p.ID))
}

func TestRecordMovement_SalidaExactaDejaCero(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Óleo", "12.5")

	res := f.record(t, p.ID, entity.MovementAvaria, "12.5")

	assert.True(t, res.NewBalance.IsZero())
}

// Entradas sucesivas sobre un producto nuevo suman exactamente Σq.
func TestRecordMovement_EntradasSumanCantidades(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Açúcar", "0")

	total := decimal.Zero
	for _, q := range []string{"1", "2.5", "0.25", "10", "3.333"} {
		f.record(t, p.ID, entity.MovementEntrada, q)
		total = total.Add(d(q))
	}

	assert.True(t, f.balance(t, p.ID).Equal(total), "saldo %s, esperado %s", f.balance(t, p.ID), total)
}

// Toda salida válida descuenta exactamente su cantidad.
func TestRecordMovement_SalidasDescuentanCantidad(t *testing.T) {
	for _, tp := range []entity.MovementType{entity.MovementSaida, entity.MovementVenda, entity.MovementUso, entity.MovementAvaria} {
		t.Run(string(tp), func(t *testing.T) {
			f := newFixture(t)
			p := f.stocked(t, "Café", "40")

			res := f.record(t, p.ID, tp, "15.5")

			assert.Equal(t, "24.5", res.NewBalance.String())
		})
	}
}

// Cantidad cero o negativa, tipo desconocido o producto vacío se rechazan sin abrir transacción.
func TestRecordMovement_ValidaAntesDeTocarAlmacenamiento(t *testing.T) {
	cases := []struct {
		name string
		in   inventory.RecordMovementInput
	}{
		{"cantidad cero", inventory.RecordMovementInput{ProductID: "p1", Type: "entrada", Quantity: decimal.Zero}},
		{"cantidad negativa", inventory.RecordMovementInput{ProductID: "p1", Type: "venda", Quantity: d("-3")}},
		{"tipo desconocido", inventory.RecordMovementInput{ProductID: "p1", Type: "transferencia", Quantity: d("1")}},
		{"tipo vacío", inventory.RecordMovementInput{ProductID: "p1", Type: "", Quantity: d("1")}},
		{"sin producto", inventory.RecordMovementInput{ProductID: "  ", Type: "entrada", Quantity: d("1")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := inventory.NewLedgerUseCase(panicTxRunner{t: t}, nil, nil, logger.Nop())

			_, err := uc.RecordMovement(t.Context(), tc.in)

			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestRecordMovement_TipoSeNormaliza(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Sal", "0")

	res, err := f.ledger.RecordMovement(f.ctx, inventory.RecordMovementInput{
		ProductID: p.ID, Type: " ENTRADA ", Quantity: d("2"),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.MovementEntrada, res.Movement.Type)
	assert.Equal(t, inventory.DefaultOperator, res.Movement.Operator)
}

func TestRecordMovement_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.RecordMovement(f.ctx, inventory.RecordMovementInput{
		ProductID: "no-existe", Type: "entrada", Quantity: d("1"),
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Un fallo del almacenamiento se propaga como StoreError con el mensaje original y revierte la transacción.
func TestRecordMovement_FalloDelAlmacenamientoEsStoreError(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Farinha", "10")
	f.store.FailOn(memory.OpProductAdjust, errors.New("connection reset by peer"))

	_, err := f.ledger.RecordMovement(f.ctx, inventory.RecordMovementInput{
		ProductID: p.ID, Type: "venda", Quantity: d("3"),
	})

	require.Error(t, err)
	assert.True(t, domain.IsStoreError(err))
	assert.Equal(t, "connection reset by peer", err.Error())

	f.store.ClearFailures()
	assert.Equal(t, "10", f.balance(t, p.ID).String())
	assert.Equal(t, 1, f.movementCount(t, p.ID), "el movimiento no debe quedar insertado")
}

func TestRecordMovement_FalloEnCommitRevierte(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Leite", "10")
	f.store.FailOn(memory.OpTransactionCommit, errors.New("could not serialize access"))

	_, err := f.ledger.RecordMovement(f.ctx, inventory.RecordMovementInput{
		ProductID: p.ID, Type: "entrada", Quantity: d("5"),
	})

	require.True(t, domain.IsStoreError(err))
	f.store.ClearFailures()
	assert.Equal(t, "10", f.balance(t, p.ID).String())
}

// Escenario C: saldo 50, entrada de 20 (70) y su eliminación vuelve a 50.
func TestDeleteMovement_RevierteSaldo(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Macarrão", "50")

	res := f.record(t, p.ID, entity.MovementEntrada, "20")
	require.Equal(t, "70", res.NewBalance.String())

	del, err := f.ledger.DeleteMovement(f.ctx, res.Movement.ID)

	require.NoError(t, err)
	assert.Equal(t, "50", del.RevertedBalance.String())
	assert.Equal(t, "50", f.balance(t, p.ID).String())
	m, err := f.store.Movements().GetByID(f.ctx, res.Movement.ID)
	require.NoError(t, err)
	assert.Nil(t, m)
}

// Registrar y eliminar deja el saldo exactamente como estaba, para cualquier tipo.
func TestDeleteMovement_RoundTripPorTipo(t *testing.T) {
	for _, tp := range entity.MovementTypes {
		t.Run(string(tp), func(t *testing.T) {
			f := newFixture(t)
			p := f.stocked(t, "Vinagre", "33.3")
			before := f.balance(t, p.ID)

			res := f.record(t, p.ID, tp, "7.7")
			_, err := f.ledger.DeleteMovement(f.ctx, res.Movement.ID)

			require.NoError(t, err)
			assert.True(t, f.balance(t, p.ID).Equal(before))
		})
	}
}

func TestDeleteMovement_Inexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.DeleteMovement(f.ctx, "no-existe")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Eliminar una entrada ya consumida deja saldo negativo; se permite.
func TestDeleteMovement_ReversaPuedeDejarSaldoNegativo(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Detergente", "0")
	in := f.record(t, p.ID, entity.MovementEntrada, "10")
	f.record(t, p.ID, entity.MovementVenda, "8")

	del, err := f.ledger.DeleteMovement(f.ctx, in.Movement.ID)

	require.NoError(t, err)
	assert.Equal(t, "-8", del.RevertedBalance.String())
}

// Si el borrado falla, la reversa del saldo tampoco queda aplicada.
func TestDeleteMovement_FalloAlBorrarNoDejaReversaHuerfana(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Sabão", "20")
	res := f.record(t, p.ID, entity.MovementVenda, "5")
	f.store.FailOn(memory.OpMovementDelete, errors.New("timeout"))

	_, err := f.ledger.DeleteMovement(f.ctx, res.Movement.ID)

	require.True(t, domain.IsStoreError(err))
	f.store.ClearFailures()
	assert.Equal(t, "15", f.balance(t, p.ID).String())
	m, _ := f.store.Movements().GetByID(f.ctx, res.Movement.ID)
	assert.NotNil(t, m)
}

func TestCorrectStock_RegistraCorreccionSinMovimientos(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Papel", "40")
	movs := f.movementCount(t, p.ID)

	c, err := f.ledger.CorrectStock(f.ctx, inventory.CorrectStockInput{ProductID: p.ID, NewBalance: d("35")})

	require.NoError(t, err)
	assert.Equal(t, "40", c.OldBalance.String())
	assert.Equal(t, "35", c.NewBalance.String())
	assert.Equal(t, "-5", c.Difference().String())
	assert.Equal(t, inventory.DefaultCorrectionNote, c.Reason)
	assert.Equal(t, inventory.DefaultOperator, c.Operator)
	assert.Equal(t, "35", f.balance(t, p.ID).String())
	assert.Equal(t, movs, f.movementCount(t, p.ID))

	list, err := f.ledger.ListCorrections(f.ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c.ID, list[0].ID)
}

func TestCorrectStock_SaldoNegativoInvalido(t *testing.T) {
	uc := inventory.NewLedgerUseCase(panicTxRunner{t: t}, nil, nil, nil)

	_, err := uc.CorrectStock(t.Context(), inventory.CorrectStockInput{ProductID: "p1", NewBalance: d("-1")})

	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCorrectStock_ProductoInexistente(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.CorrectStock(f.ctx, inventory.CorrectStockInput{ProductID: "no-existe", NewBalance: d("1")})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListMovements_FiltraYOrdenaDescendente(t *testing.T) {
	f := newFixture(t)
	a := f.product(t, "A", "0")
	b := f.product(t, "B", "0")
	first := f.record(t, a.ID, entity.MovementEntrada, "10")
	time.Sleep(2 * time.Millisecond)
	f.record(t, b.ID, entity.MovementEntrada, "5")
	time.Sleep(2 * time.Millisecond)
	last := f.record(t, a.ID, entity.MovementVenda, "1")

	list, total, err := f.ledger.ListMovements(f.ctx, repository.MovementFilter{ProductID: a.ID})

	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, last.Movement.ID, list[0].ID)
	assert.Equal(t, first.Movement.ID, list[1].ID)
	assert.Equal(t, "A", list[0].ProductName)

	sales, total, err := f.ledger.ListMovements(f.ctx, repository.MovementFilter{Type: entity.MovementVenda})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, sales, 1)

	future := time.Now().Add(time.Hour)
	none, _, err := f.ledger.ListMovements(f.ctx, repository.MovementFilter{From: &future})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListMovements_FiltrosInvalidos(t *testing.T) {
	f := newFixture(t)
	now := time.Now()
	before := now.Add(-time.Hour)

	_, _, err := f.ledger.ListMovements(f.ctx, repository.MovementFilter{Type: "troca"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, _, err = f.ledger.ListMovements(f.ctx, repository.MovementFilter{From: &now, To: &before})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordMovementFromRequest_UsaOperadorAutenticado(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, "Biscoito", "0")

	out, err := f.ledger.RecordMovementFromRequest(f.ctx, "bob@example.com", dto.RecordMovementRequest{
		ProductID: p.ID, Type: "entrada", Quantity: d("4"), Observacao: "nota fiscal 123",
	})

	require.NoError(t, err)
	assert.Equal(t, "bob@example.com", out.Movement.Operator)
	assert.Equal(t, "nota fiscal 123", out.Movement.Observacao)
	assert.Equal(t, "4", out.NewBalance.String())
}

// staleReadTx entrega un repositorio de movimientos cuyo GetByID devuelve siempre el mismo registro,
// como una transacción que leyó el movimiento antes de que otra lo borrara.
type staleReadTx struct {
	store *memory.Store
	seen  entity.Movement
}

func (tx staleReadTx) Run(ctx context.Context, fn func(
	repository.MovementRepository,
	repository.ProductRepository,
	repository.StockCorrectionRepository,
) error) error {
	return tx.store.Run(ctx, func(m repository.MovementRepository, p repository.ProductRepository, c repository.StockCorrectionRepository) error {
		return fn(staleMovements{MovementRepository: m, seen: tx.seen}, p, c)
	})
}

type staleMovements struct {
	repository.MovementRepository
	seen entity.Movement
}

func (r staleMovements) GetByID(context.Context, string) (*entity.Movement, error) {
	m := r.seen
	return &m, nil
}

// Dos borrados del mismo movimiento (doble clic) revierten el saldo una sola vez.
func TestDeleteMovement_BorradoDobleRevierteUnaSolaVez(t *testing.T) {
	f := newFixture(t)
	p := f.stocked(t, "Feijão", "10")
	res := f.record(t, p.ID, entity.MovementVenda, "4")
	require.Equal(t, "6", f.balance(t, p.ID).String())

	_, err := f.ledger.DeleteMovement(f.ctx, res.Movement.ID)
	require.NoError(t, err)
	late := inventory.NewLedgerUseCase(staleReadTx{store: f.store, seen: *res.Movement},
		f.store.Movements(), f.store.Corrections(), logger.Nop())
	_, err = late.DeleteMovement(f.ctx, res.Movement.ID)

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "10", f.balance(t, p.ID).String())
	assert.Equal(t, 1, f.movementCount(t, p.ID))
}
