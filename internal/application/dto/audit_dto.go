package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscrepancyDTO producto cuyo saldo guardado no coincide con el historial.
// Difference = Stored - Computed.
type DiscrepancyDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"nome"`
	Stored      decimal.Decimal `json:"estoque_registrado"`
	Computed    decimal.Decimal `json:"estoque_calculado"`
	Difference  decimal.Decimal `json:"diferenca"`
}

// AuditResultDTO respuesta de GET /api/inventory/audit/:productId.
type AuditResultDTO struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"nome"`
	Stored      decimal.Decimal `json:"estoque_registrado"`
	Computed    decimal.Decimal `json:"estoque_calculado"`
	Movements   int             `json:"movimentacoes"`
	Match       bool            `json:"consistente"`
	Discrepancy *DiscrepancyDTO `json:"discrepancia,omitempty"`
}

// AuditReportDTO respuesta de GET /api/inventory/audit.
type AuditReportDTO struct {
	GeneratedAt   time.Time        `json:"generated_at"`
	Checked       int              `json:"verificados"`
	Consistent    int              `json:"consistentes"`
	Discrepancies []DiscrepancyDTO `json:"discrepancias"`
}

// ReconcileRequest body opcional para POST /api/inventory/audit/:productId/reconcile.
type ReconcileRequest struct {
	Operator string `json:"operador,omitempty"`
}

// ReconcileResponse resultado de reconciliar un producto con su historial.
// Correction es nil si el producto ya estaba consistente.
type ReconcileResponse struct {
	Audit      AuditResultDTO           `json:"auditoria"`
	Correction *StockCorrectionResponse `json:"correcao,omitempty"`
}
