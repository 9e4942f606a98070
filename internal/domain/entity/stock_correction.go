package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockCorrection deja constancia de una sobrescritura manual del saldo.
// Vive fuera del libro de movimientos: el auditor no la suma.
type StockCorrection struct {
	ID         string
	ProductID  string
	OldBalance decimal.Decimal
	NewBalance decimal.Decimal
	Reason     string
	Operator   string
	CreatedAt  time.Time
}

// Difference NewBalance - OldBalance.
func (c *StockCorrection) Difference() decimal.Decimal {
	return c.NewBalance.Sub(c.OldBalance)
}
