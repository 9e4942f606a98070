package repository

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// MovementFilter criterios del historial de movimientos. Campos vacíos no filtran.
// From es inclusivo y To exclusivo.
type MovementFilter struct {
	ProductID string
	Type      entity.MovementType
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// MovementWithProduct movimiento con los datos del producto necesarios para listarlo.
type MovementWithProduct struct {
	entity.Movement
	ProductName string
	UnitMeasure string
}

// MovementRepository define el puerto de persistencia del libro de movimientos.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	Delete(ctx context.Context, id string) error
	// List ordena del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*MovementWithProduct, error)
	// ListByProduct devuelve todos los movimientos del producto, sin límite.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	Count(ctx context.Context, filter MovementFilter) (int, error)
}
