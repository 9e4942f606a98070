// Package inventory contiene la aritmética pura del libro de stock (servicio de dominio):
// efecto de cada movimiento sobre el saldo, su reversa y la comparación contra el saldo guardado.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// DriftTolerance diferencia absoluta a partir de la cual un saldo se considera descuadrado.
var DriftTolerance = decimal.RequireFromString("0.01")

// Delta efecto de un movimiento sobre el saldo: +qty para entrada, -qty para cualquier salida.
func Delta(t entity.MovementType, qty decimal.Decimal) decimal.Decimal {
	if t.IsInbound() {
		return qty
	}
	return qty.Neg()
}

// ReversalDelta deshace exactamente el efecto de Delta.
func ReversalDelta(t entity.MovementType, qty decimal.Decimal) decimal.Decimal {
	return Delta(t, qty).Neg()
}

// ComputeBalance suma el efecto de todos los movimientos. No depende del orden.
func ComputeBalance(movements []*entity.Movement) decimal.Decimal {
	sum := decimal.Zero
	for _, m := range movements {
		if m == nil {
			continue
		}
		sum = sum.Add(Delta(m.Type, m.Quantity))
	}
	return sum
}

// Drift compara el saldo guardado con el recalculado.
// difference = stored - computed; drifted solo si |difference| > DriftTolerance.
func Drift(stored, computed decimal.Decimal) (difference decimal.Decimal, drifted bool) {
	difference = stored.Sub(computed)
	return difference, difference.Abs().GreaterThan(DriftTolerance)
}

// ValidateQuantity exige cantidad estrictamente positiva.
func ValidateQuantity(qty decimal.Decimal) bool {
	return qty.GreaterThan(decimal.Zero)
}

// SufficientStock indica si un saldo cubre una salida de qty.
func SufficientStock(balance, qty decimal.Decimal) bool {
	return balance.GreaterThanOrEqual(qty)
}
