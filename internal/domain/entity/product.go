package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultUnitMeasure unidad usada cuando el producto no declara una.
const DefaultUnitMeasure = "unidade"

// Product representa un producto del almacén.
// CurrentStock es el saldo materializado; solo lo modifican el libro de movimientos y las correcciones.
type Product struct {
	ID           string
	Name         string
	UnitMeasure  string
	CurrentStock decimal.Decimal // estoque_atual
	MinimumStock decimal.Decimal // estoque_minimo
	SupplierID   *string
	WarehouseID  *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BelowMinimum indica si el saldo está en o por debajo del mínimo.
func (p *Product) BelowMinimum() bool {
	return p.CurrentStock.LessThanOrEqual(p.MinimumStock)
}
