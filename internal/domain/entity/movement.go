package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento del libro de stock.
type MovementType string

// Tipos de movimiento. Solo entrada suma; el resto descuenta.
const (
	MovementEntrada MovementType = "entrada" // recepción de mercadería
	MovementSaida   MovementType = "saida"   // salida genérica
	MovementVenda   MovementType = "venda"   // venta
	MovementUso     MovementType = "uso"     // consumo interno
	MovementAvaria  MovementType = "avaria"  // avería / pérdida
)

// MovementTypes todos los tipos válidos, en el orden en que se muestran.
var MovementTypes = []MovementType{MovementEntrada, MovementSaida, MovementVenda, MovementUso, MovementAvaria}

// ParseMovementType normaliza s y devuelve el tipo; ok=false si no es conocido.
func ParseMovementType(s string) (MovementType, bool) {
	t := MovementType(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Valid()
}

// Valid indica si t es uno de los tipos conocidos.
func (t MovementType) Valid() bool {
	switch t {
	case MovementEntrada, MovementSaida, MovementVenda, MovementUso, MovementAvaria:
		return true
	}
	return false
}

func (t MovementType) IsInbound() bool  { return t == MovementEntrada }
func (t MovementType) IsOutbound() bool { return t.Valid() && t != MovementEntrada }

// Movement registro inmutable del libro: solo se crea o se elimina.
// Quantity siempre es positiva; el signo lo da Type.
type Movement struct {
	ID        string
	ProductID string
	Type      MovementType
	Quantity  decimal.Decimal
	Operator  string
	Note      string
	CreatedAt time.Time
}
