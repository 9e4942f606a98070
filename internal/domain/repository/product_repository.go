package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// ProductFilter criterios de listado de productos.
type ProductFilter struct {
	Search       string // coincidencia parcial en el nombre
	OnlyActive   bool
	BelowMinimum bool // estoque_atual <= estoque_minimo
	Limit        int
	Offset       int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) cuando no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate lectura fresca que bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update modifica datos descriptivos; nunca el saldo.
	Update(ctx context.Context, product *entity.Product) error
	// AdjustStock aplica delta en el servidor (estoque_atual = estoque_atual + delta) y devuelve el saldo resultante.
	AdjustStock(ctx context.Context, id string, delta decimal.Decimal) (decimal.Decimal, error)
	// SetStock sobrescribe el saldo (solo correcciones).
	SetStock(ctx context.Context, id string, balance decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	ListBelowMinimum(ctx context.Context, limit int) ([]*entity.Product, error)
	Count(ctx context.Context, filter ProductFilter) (int, error)
	Delete(ctx context.Context, id string) error
}
