package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var idealStockFactor = decimal.NewFromFloat(1.5)

// StockAlertsUseCase lista los productos en o por debajo del mínimo con la cantidad sugerida de compra.
type StockAlertsUseCase struct {
	productRepo repository.ProductRepository
}

// NewStockAlertsUseCase construye el caso de uso de alertas de stock.
func NewStockAlertsUseCase(productRepo repository.ProductRepository) *StockAlertsUseCase {
	return &StockAlertsUseCase{productRepo: productRepo}
}

// ListBelowMinimum devuelve los productos con estoque_atual <= estoque_minimo.
// Sugerido = max(0, mínimo*1.5 - actual); ordenados por déficit descendente, prioridad 1 = más urgente.
func (uc *StockAlertsUseCase) ListBelowMinimum(ctx context.Context, limit int) ([]dto.LowStockItemDTO, error) {
	products, err := uc.productRepo.ListBelowMinimum(ctx, limit)
	if err != nil {
		return nil, domain.NewStoreError("listar stock bajo", err)
	}

	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		ideal := p.MinimumStock.Mul(idealStockFactor)
		suggested := ideal.Sub(p.CurrentStock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockItemDTO{
			ProductID:         p.ID,
			ProductName:       p.Name,
			UnitMeasure:       p.UnitMeasure,
			CurrentStock:      p.CurrentStock,
			MinimumStock:      p.MinimumStock,
			IdealStock:        ideal,
			SuggestedOrderQty: suggested,
			Deficit:           p.MinimumStock.Sub(p.CurrentStock),
		})
	}

	// Mayor déficit primero; a igual déficit, menor saldo.
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Deficit.Equal(b.Deficit) {
			return a.Deficit.GreaterThan(b.Deficit)
		}
		return a.CurrentStock.LessThan(b.CurrentStock)
	})
	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}
