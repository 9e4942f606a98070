package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// Valores por defecto de operador y motivo.
const (
	DefaultOperator        = "sistema"
	DefaultCorrectionNote  = "corrección manual"
	ReconcileCorrectionMsg = "reconciliación con historial de movimientos"
)

// LedgerUseCase libro de movimientos: único camino para modificar el saldo de un producto.
// Cada operación corre en una transacción con la fila del producto bloqueada (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner       TxRunner
	movRepo        repository.MovementRepository
	correctionRepo repository.StockCorrectionRepository
	log            *logger.Logger
	now            func() time.Time
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	movRepo repository.MovementRepository,
	correctionRepo repository.StockCorrectionRepository,
	log *logger.Logger,
) *LedgerUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &LedgerUseCase{
		txRunner:       txRunner,
		movRepo:        movRepo,
		correctionRepo: correctionRepo,
		log:            log.Component("ledger"),
		now:            time.Now,
	}
}

// RecordMovementInput entrada para registrar un movimiento.
type RecordMovementInput struct {
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	Operator  string
	Note      string
}

// MovementResult movimiento creado y saldo resultante del producto.
type MovementResult struct {
	Movement   *entity.Movement
	NewBalance decimal.Decimal
}

// DeleteMovementResult movimiento eliminado y saldo luego de la reversa.
type DeleteMovementResult struct {
	Movement        *entity.Movement
	RevertedBalance decimal.Decimal
}

// CorrectStockInput entrada para sobrescribir el saldo de un producto.
type CorrectStockInput struct {
	ProductID  string
	NewBalance decimal.Decimal
	Reason     string
	Operator   string
}

// RecordMovement valida la entrada sin tocar el almacenamiento y luego, en una sola transacción:
// bloquea el producto, verifica saldo para salidas, inserta el movimiento y aplica el delta en el servidor.
func (uc *LedgerUseCase) RecordMovement(ctx context.Context, in RecordMovementInput) (*MovementResult, error) {
	mov, err := uc.newMovement(in)
	if err != nil {
		return nil, err
	}
	delta := inventory.Delta(mov.Type, mov.Quantity)

	var newBalance decimal.Decimal
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.StockCorrectionRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, mov.ProductID)
		}
		if mov.Type.IsOutbound() && !inventory.SufficientStock(product.CurrentStock, mov.Quantity) {
			return fmt.Errorf("%w: saldo %s, solicitado %s", domain.ErrInsufficientStock, product.CurrentStock, mov.Quantity)
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		newBalance, err = productRepo.AdjustStock(ctx, mov.ProductID, delta)
		return err
	})
	if err != nil {
		return nil, domain.NewStoreError("registrar movimiento", err)
	}

	uc.log.Info().
		Str("product_id", mov.ProductID).
		Str("movement_id", mov.ID).
		Str("tipo", string(mov.Type)).
		Str("quantidade", mov.Quantity.String()).
		Str("estoque_atual", newBalance.String()).
		Msg("movimiento registrado")

	return &MovementResult{Movement: mov, NewBalance: newBalance}, nil
}

// newMovement valida la entrada y arma el movimiento. No toca el almacenamiento.
func (uc *LedgerUseCase) newMovement(in RecordMovementInput) (*entity.Movement, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	t, ok := entity.ParseMovementType(in.Type)
	if !ok {
		return nil, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, in.Type)
	}
	if !inventory.ValidateQuantity(in.Quantity) {
		return nil, fmt.Errorf("%w: la cantidad debe ser mayor que cero", domain.ErrInvalidInput)
	}
	operator := strings.TrimSpace(in.Operator)
	if operator == "" {
		operator = DefaultOperator
	}
	return &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      t,
		Quantity:  in.Quantity,
		Operator:  operator,
		Note:      strings.TrimSpace(in.Note),
		CreatedAt: uc.now(),
	}, nil
}

// DeleteMovement revierte el efecto del movimiento sobre el saldo y luego elimina el registro,
// ambos en la misma transacción. Una reversa que deja saldo negativo se permite y se registra en el log.
func (uc *LedgerUseCase) DeleteMovement(ctx context.Context, movementID string) (*DeleteMovementResult, error) {
	movementID = strings.TrimSpace(movementID)
	if movementID == "" {
		return nil, fmt.Errorf("%w: id de movimiento es obligatorio", domain.ErrInvalidInput)
	}

	var (
		mov      *entity.Movement
		reverted decimal.Decimal
	)
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.StockCorrectionRepository,
	) error {
		var err error
		mov, err = movRepo.GetByID(ctx, movementID)
		if err != nil {
			return err
		}
		if mov == nil {
			return fmt.Errorf("%w: movimiento %s", domain.ErrNotFound, movementID)
		}
		product, err := productRepo.GetForUpdate(ctx, mov.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, mov.ProductID)
		}
		// Saldo primero, borrado después.
		reverted, err = productRepo.AdjustStock(ctx, mov.ProductID, inventory.ReversalDelta(mov.Type, mov.Quantity))
		if err != nil {
			return err
		}
		return movRepo.Delete(ctx, mov.ID)
	})
	if err != nil {
		return nil, domain.NewStoreError("eliminar movimiento", err)
	}

	ev := uc.log.Info()
	if reverted.IsNegative() {
		ev = uc.log.Warn()
	}
	ev.Str("product_id", mov.ProductID).
		Str("movement_id", mov.ID).
		Str("tipo", string(mov.Type)).
		Str("quantidade", mov.Quantity.String()).
		Str("estoque_atual", reverted.String()).
		Msg("movimiento eliminado y revertido")

	return &DeleteMovementResult{Movement: mov, RevertedBalance: reverted}, nil
}

// CorrectStock sobrescribe el saldo y deja constancia en stock_corrections.
// No crea movimientos: el historial del libro queda intacto.
func (uc *LedgerUseCase) CorrectStock(ctx context.Context, in CorrectStockInput) (*entity.StockCorrection, error) {
	productID := strings.TrimSpace(in.ProductID)
	if productID == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	if in.NewBalance.IsNegative() {
		return nil, fmt.Errorf("%w: el nuevo saldo no puede ser negativo", domain.ErrInvalidInput)
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = DefaultCorrectionNote
	}
	operator := strings.TrimSpace(in.Operator)
	if operator == "" {
		operator = DefaultOperator
	}

	var correction *entity.StockCorrection
	err := uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		productRepo repository.ProductRepository,
		correctionRepo repository.StockCorrectionRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
		}
		if err := productRepo.SetStock(ctx, productID, in.NewBalance); err != nil {
			return err
		}
		correction = &entity.StockCorrection{
			ID:         uuid.New().String(),
			ProductID:  productID,
			OldBalance: product.CurrentStock,
			NewBalance: in.NewBalance,
			Reason:     reason,
			Operator:   operator,
			CreatedAt:  uc.now(),
		}
		return correctionRepo.Create(ctx, correction)
	})
	if err != nil {
		return nil, domain.NewStoreError("corregir saldo", err)
	}

	uc.log.Warn().
		Str("product_id", productID).
		Str("estoque_anterior", correction.OldBalance.String()).
		Str("estoque_novo", correction.NewBalance.String()).
		Str("operador", operator).
		Str("motivo", reason).
		Msg("saldo corregido manualmente")

	return correction, nil
}

// ListMovements historial filtrado, del más reciente al más antiguo. Devuelve también el total sin paginar.
func (uc *LedgerUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter) ([]*repository.MovementWithProduct, int, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, 0, fmt.Errorf("%w: tipo de movimiento desconocido %q", domain.ErrInvalidInput, filter.Type)
	}
	if filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, 0, fmt.Errorf("%w: rango de fechas invertido", domain.ErrInvalidInput)
	}
	list, err := uc.movRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, domain.NewStoreError("listar movimientos", err)
	}
	total, err := uc.movRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, domain.NewStoreError("contar movimientos", err)
	}
	return list, total, nil
}

// ListCorrections correcciones manuales de un producto, de la más reciente a la más antigua.
func (uc *LedgerUseCase) ListCorrections(ctx context.Context, productID string) ([]*entity.StockCorrection, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	list, err := uc.correctionRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, domain.NewStoreError("listar correcciones", err)
	}
	return list, nil
}
