package repository

import (
	"context"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// StockCorrectionRepository puerto del registro de correcciones manuales de saldo.
type StockCorrectionRepository interface {
	Create(ctx context.Context, correction *entity.StockCorrection) error
	ListByProduct(ctx context.Context, productID string) ([]*entity.StockCorrection, error)
}
