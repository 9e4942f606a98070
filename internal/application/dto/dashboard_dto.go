package dto

import "time"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
type DashboardSummaryDTO struct {
	TotalProducts      int       `json:"total_produtos"`
	LowStockProducts   int       `json:"produtos_estoque_baixo"` // estoque_atual <= estoque_minimo
	MovementsToday     int       `json:"movimentacoes_hoje"`     // desde las 00:00 locales
	MovementsLast30Day int       `json:"movimentacoes_30_dias"`
	GeneratedAt        time.Time `json:"generated_at"`
}
