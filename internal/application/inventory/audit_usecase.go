package inventory

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

// AuditPageSize cantidad de productos leídos por página en AuditAll.
const AuditPageSize = 200

// Discrepancy producto cuyo saldo guardado no coincide con la suma de su historial.
type Discrepancy struct {
	ProductID   string
	ProductName string
	Stored      decimal.Decimal
	Computed    decimal.Decimal
	Difference  decimal.Decimal // Stored - Computed
}

// AuditResult resultado de auditar un producto. Discrepancy es nil cuando Match es true.
type AuditResult struct {
	ProductID   string
	ProductName string
	Stored      decimal.Decimal
	Computed    decimal.Decimal
	Movements   int
	Match       bool
	Discrepancy *Discrepancy
}

// AuditReport resultado agregado de AuditAll.
type AuditReport struct {
	GeneratedAt   time.Time
	Checked       int
	Consistent    int
	Discrepancies []Discrepancy
}

// AuditUseCase auditor de consistencia: recalcula el saldo desde el libro y lo compara con el guardado.
// Solo lee; ReconcileProduct es la única operación que escribe y se invoca explícitamente.
type AuditUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	ledger      *LedgerUseCase
	renderer    AuditReportRenderer
	log         *logger.Logger
	now         func() time.Time
}

// NewAuditUseCase construye el auditor. renderer puede ser nil si no se exporta PDF.
func NewAuditUseCase(
	productRepo repository.ProductRepository,
	movRepo repository.MovementRepository,
	ledger *LedgerUseCase,
	renderer AuditReportRenderer,
	log *logger.Logger,
) *AuditUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditUseCase{
		productRepo: productRepo,
		movRepo:     movRepo,
		ledger:      ledger,
		renderer:    renderer,
		log:         log.Component("audit"),
		now:         time.Now,
	}
}

// AuditProduct compara estoque_atual con Σ delta de todos los movimientos del producto.
func (uc *AuditUseCase) AuditProduct(ctx context.Context, productID string) (*AuditResult, error) {
	if strings.TrimSpace(productID) == "" {
		return nil, fmt.Errorf("%w: product_id es obligatorio", domain.ErrInvalidInput)
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, domain.NewStoreError("auditar producto", err)
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, productID)
	}
	return uc.audit(ctx, product)
}

func (uc *AuditUseCase) audit(ctx context.Context, product *entity.Product) (*AuditResult, error) {
	movements, err := uc.movRepo.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, domain.NewStoreError("auditar producto", err)
	}
	computed := inventory.ComputeBalance(movements)
	difference, drifted := inventory.Drift(product.CurrentStock, computed)

	res := &AuditResult{
		ProductID:   product.ID,
		ProductName: product.Name,
		Stored:      product.CurrentStock,
		Computed:    computed,
		Movements:   len(movements),
		Match:       !drifted,
	}
	if drifted {
		res.Discrepancy = &Discrepancy{
			ProductID:   product.ID,
			ProductName: product.Name,
			Stored:      product.CurrentStock,
			Computed:    computed,
			Difference:  difference,
		}
		uc.log.Warn().
			Str("product_id", product.ID).
			Str("estoque_registrado", product.CurrentStock.String()).
			Str("estoque_calculado", computed.String()).
			Str("diferenca", difference.String()).
			Msg("saldo inconsistente con el historial")
	}
	return res, nil
}

// AuditAll recorre todos los productos por páginas y devuelve un registro por cada producto descuadrado.
func (uc *AuditUseCase) AuditAll(ctx context.Context) (*AuditReport, error) {
	report := &AuditReport{GeneratedAt: uc.now(), Discrepancies: []Discrepancy{}}
	for offset := 0; ; offset += AuditPageSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		page, err := uc.productRepo.List(ctx, repository.ProductFilter{Limit: AuditPageSize, Offset: offset})
		if err != nil {
			return nil, domain.NewStoreError("auditar productos", err)
		}
		for _, p := range page {
			res, err := uc.audit(ctx, p)
			if err != nil {
				return nil, err
			}
			report.Checked++
			if res.Match {
				report.Consistent++
				continue
			}
			report.Discrepancies = append(report.Discrepancies, *res.Discrepancy)
		}
		if len(page) < AuditPageSize {
			break
		}
	}

	uc.log.Info().
		Int("verificados", report.Checked).
		Int("discrepancias", len(report.Discrepancies)).
		Msg("auditoría completa")
	return report, nil
}

// ReconcileProduct alinea el saldo guardado con el historial mediante CorrectStock.
// Si el producto ya está consistente no escribe nada y devuelve correction nil.
func (uc *AuditUseCase) ReconcileProduct(ctx context.Context, productID, operator string) (*AuditResult, *entity.StockCorrection, error) {
	res, err := uc.AuditProduct(ctx, productID)
	if err != nil {
		return nil, nil, err
	}
	if res.Match {
		return res, nil, nil
	}
	correction, err := uc.ledger.CorrectStock(ctx, CorrectStockInput{
		ProductID:  productID,
		NewBalance: res.Computed,
		Reason:     ReconcileCorrectionMsg,
		Operator:   operator,
	})
	if err != nil {
		return nil, nil, err
	}
	return res, correction, nil
}

// AuditReportPDF ejecuta AuditAll y escribe el reporte en w.
func (uc *AuditUseCase) AuditReportPDF(ctx context.Context, w io.Writer) (*AuditReport, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("auditoría: generador de reportes no configurado")
	}
	report, err := uc.AuditAll(ctx)
	if err != nil {
		return nil, err
	}
	if err := uc.renderer.RenderAuditReport(report, w); err != nil {
		return nil, fmt.Errorf("generar reporte de auditoría: %w", err)
	}
	return report, nil
}
