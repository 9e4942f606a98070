package inventory

import (
	"context"
	"io"

	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn devuelve error no queda ninguna escritura aplicada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		correctionRepo repository.StockCorrectionRepository,
	) error) error
}

// AuditReportRenderer genera el documento del reporte de auditoría (PDF).
type AuditReportRenderer interface {
	RenderAuditReport(report *AuditReport, w io.Writer) error
}
