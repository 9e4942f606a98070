package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordMovementRequest body para POST /api/inventory/movements.
// Operador es opcional: el handler usa el e-mail del token si viene vacío.
type RecordMovementRequest struct {
	ProductID  string          `json:"product_id"`
	Type       string          `json:"tipo"`
	Quantity   decimal.Decimal `json:"quantidade"`
	Operator   string          `json:"operador,omitempty"`
	Observacao string          `json:"observacao,omitempty"`
}

// MovementResponse salida de un movimiento del libro.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"produto_nome,omitempty"`
	UnitMeasure string          `json:"unidade_medida,omitempty"`
	Type        string          `json:"tipo"`
	Quantity    decimal.Decimal `json:"quantidade"`
	Operator    string          `json:"operador"`
	Observacao  string          `json:"observacao,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// RecordMovementResponse movimiento creado y saldo resultante.
type RecordMovementResponse struct {
	Movement   MovementResponse `json:"movement"`
	NewBalance decimal.Decimal  `json:"estoque_atual"`
}

// DeleteMovementResponse saldo luego de revertir el movimiento eliminado.
type DeleteMovementResponse struct {
	MovementID      string          `json:"movement_id"`
	ProductID       string          `json:"product_id"`
	RevertedBalance decimal.Decimal `json:"estoque_atual"`
}

// MovementListResponse lista paginada del historial.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CorrectStockRequest body para POST /api/inventory/products/:id/correction.
type CorrectStockRequest struct {
	NewBalance decimal.Decimal `json:"novo_estoque"`
	Reason     string          `json:"motivo,omitempty"`
	Operator   string          `json:"operador,omitempty"`
}

// StockCorrectionResponse salida de una corrección manual.
type StockCorrectionResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	OldBalance decimal.Decimal `json:"estoque_anterior"`
	NewBalance decimal.Decimal `json:"estoque_novo"`
	Difference decimal.Decimal `json:"diferenca"`
	Reason     string          `json:"motivo"`
	Operator   string          `json:"operador"`
	CreatedAt  time.Time       `json:"created_at"`
}

// LowStockItemDTO producto en o por debajo del mínimo con su sugerencia de compra.
type LowStockItemDTO struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"nome"`
	UnitMeasure       string          `json:"unidade_medida"`
	CurrentStock      decimal.Decimal `json:"estoque_atual"`
	MinimumStock      decimal.Decimal `json:"estoque_minimo"`
	IdealStock        decimal.Decimal `json:"estoque_ideal"`       // MinimumStock * 1.5
	SuggestedOrderQty decimal.Decimal `json:"quantidade_sugerida"` // IdealStock - CurrentStock, nunca negativo
	Deficit           decimal.Decimal `json:"deficit"`             // MinimumStock - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente
}
