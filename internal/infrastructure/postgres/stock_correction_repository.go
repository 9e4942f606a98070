package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ repository.StockCorrectionRepository = (*StockCorrectionRepo)(nil)

// StockCorrectionRepo registro de correcciones manuales de saldo (usable con pool o tx).
type StockCorrectionRepo struct {
	q Querier
}

// NewStockCorrectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCorrectionRepository(q Querier) *StockCorrectionRepo {
	return &StockCorrectionRepo{q: q}
}

// Create persiste una corrección.
func (r *StockCorrectionRepo) Create(ctx context.Context, c *entity.StockCorrection) error {
	query := `
		INSERT INTO stock_corrections (id, product_id, saldo_anterior, saldo_novo, motivo, operador, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		c.ID, c.ProductID, c.OldBalance, c.NewBalance, c.Reason, c.Operator, c.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock correction: %w", err)
	}
	return nil
}

// ListByProduct correcciones del producto, más reciente primero.
func (r *StockCorrectionRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.StockCorrection, error) {
	query := `
		SELECT id, product_id, saldo_anterior, saldo_novo, motivo, operador, created_at
		FROM stock_corrections WHERE product_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock corrections: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockCorrection
	for rows.Next() {
		var c entity.StockCorrection
		if err := rows.Scan(&c.ID, &c.ProductID, &c.OldBalance, &c.NewBalance, &c.Reason, &c.Operator, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock correction: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
