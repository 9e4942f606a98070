package inventory

import (
	"context"
	"strings"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// RecordMovementFromRequest adapta el request HTTP al caso de uso RecordMovement.
// operator es el usuario autenticado; se usa solo si el body no trae operador.
func (uc *LedgerUseCase) RecordMovementFromRequest(ctx context.Context, operator string, in dto.RecordMovementRequest) (*dto.RecordMovementResponse, error) {
	if strings.TrimSpace(in.Operator) != "" {
		operator = in.Operator
	}
	res, err := uc.RecordMovement(ctx, RecordMovementInput{
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Operator:  operator,
		Note:      in.Observacao,
	})
	if err != nil {
		return nil, err
	}
	return &dto.RecordMovementResponse{
		Movement:   ToMovementResponse(res.Movement, "", ""),
		NewBalance: res.NewBalance,
	}, nil
}

// CorrectStockFromRequest adapta el request HTTP al caso de uso CorrectStock.
func (uc *LedgerUseCase) CorrectStockFromRequest(ctx context.Context, productID, operator string, in dto.CorrectStockRequest) (*dto.StockCorrectionResponse, error) {
	if strings.TrimSpace(in.Operator) != "" {
		operator = in.Operator
	}
	c, err := uc.CorrectStock(ctx, CorrectStockInput{
		ProductID:  productID,
		NewBalance: in.NewBalance,
		Reason:     in.Reason,
		Operator:   operator,
	})
	if err != nil {
		return nil, err
	}
	out := ToCorrectionResponse(c)
	return &out, nil
}

// ToMovementResponse convierte un movimiento a DTO.
func ToMovementResponse(m *entity.Movement, productName, unit string) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: productName,
		UnitMeasure: unit,
		Type:        string(m.Type),
		Quantity:    m.Quantity,
		Operator:    m.Operator,
		Observacao:  m.Note,
		CreatedAt:   m.CreatedAt,
	}
}

// ToMovementListResponse convierte una página del historial a DTO.
func ToMovementListResponse(list []*repository.MovementWithProduct, total int, filter repository.MovementFilter) dto.MovementListResponse {
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(&m.Movement, m.ProductName, m.UnitMeasure))
	}
	return dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: filter.Limit, Offset: filter.Offset, Total: total},
	}
}

// ToCorrectionResponse convierte una corrección a DTO.
func ToCorrectionResponse(c *entity.StockCorrection) dto.StockCorrectionResponse {
	return dto.StockCorrectionResponse{
		ID:         c.ID,
		ProductID:  c.ProductID,
		OldBalance: c.OldBalance,
		NewBalance: c.NewBalance,
		Difference: c.Difference(),
		Reason:     c.Reason,
		Operator:   c.Operator,
		CreatedAt:  c.CreatedAt,
	}
}

// ToAuditResultDTO convierte el resultado de auditoría a DTO.
func ToAuditResultDTO(r *AuditResult) dto.AuditResultDTO {
	out := dto.AuditResultDTO{
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		Stored:      r.Stored,
		Computed:    r.Computed,
		Movements:   r.Movements,
		Match:       r.Match,
	}
	if r.Discrepancy != nil {
		d := toDiscrepancyDTO(*r.Discrepancy)
		out.Discrepancy = &d
	}
	return out
}

// ToAuditReportDTO convierte el reporte agregado a DTO.
func ToAuditReportDTO(r *AuditReport) dto.AuditReportDTO {
	out := dto.AuditReportDTO{
		GeneratedAt:   r.GeneratedAt,
		Checked:       r.Checked,
		Consistent:    r.Consistent,
		Discrepancies: make([]dto.DiscrepancyDTO, 0, len(r.Discrepancies)),
	}
	for _, d := range r.Discrepancies {
		out.Discrepancies = append(out.Discrepancies, toDiscrepancyDTO(d))
	}
	return out
}

func toDiscrepancyDTO(d Discrepancy) dto.DiscrepancyDTO {
	return dto.DiscrepancyDTO{
		ProductID:   d.ProductID,
		ProductName: d.ProductName,
		Stored:      d.Stored,
		Computed:    d.Computed,
		Difference:  d.Difference,
	}
}
