// Package analytics contiene los casos de uso de indicadores para el dashboard del almacén.
package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// DashboardUseCase genera los contadores del dashboard.
//
// Fuente de datos: repositorios de productos y movimientos (solo lectura).
type DashboardUseCase struct {
	productRepo repository.ProductRepository
	movRepo     repository.MovementRepository
	now         func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(productRepo repository.ProductRepository, movRepo repository.MovementRepository) *DashboardUseCase {
	return &DashboardUseCase{productRepo: productRepo, movRepo: movRepo, now: time.Now}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cuatro conteos en paralelo:
//  1. productos activos
//  2. productos en o por debajo del mínimo
//  3. movimientos desde las 00:00 de hoy
//  4. movimientos de los últimos 30 días
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	monthAgo := now.AddDate(0, 0, -30)

	type countResult struct {
		n   int
		err error
	}
	totalCh := make(chan countResult, 1)
	lowCh := make(chan countResult, 1)
	todayCh := make(chan countResult, 1)
	monthCh := make(chan countResult, 1)

	go func() {
		n, err := uc.productRepo.Count(ctx, repository.ProductFilter{OnlyActive: true})
		totalCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.productRepo.Count(ctx, repository.ProductFilter{OnlyActive: true, BelowMinimum: true})
		lowCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.movRepo.Count(ctx, repository.MovementFilter{From: &todayStart})
		todayCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.movRepo.Count(ctx, repository.MovementFilter{From: &monthAgo})
		monthCh <- countResult{n, err}
	}()

	total, low, today, month := <-totalCh, <-lowCh, <-todayCh, <-monthCh
	for _, r := range []countResult{total, low, today, month} {
		if r.err != nil {
			return nil, domain.NewStoreError("dashboard", r.err)
		}
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:      total.n,
		LowStockProducts:   low.n,
		MovementsToday:     today.n,
		MovementsLast30Day: month.n,
		GeneratedAt:        now,
	}, nil
}
