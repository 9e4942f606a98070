package http

import (
	"bytes"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
)

// AuditHandler expone el auditor de consistencia entre saldo y libro.
type AuditHandler struct {
	uc *inventory.AuditUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *inventory.AuditUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// AuditAll godoc
// @Summary      Auditar todos los productos
// @Description  Compara estoque_atual con la suma de movimientos. No modifica datos.
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AuditReportDTO
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/audit [get]
func (h *AuditHandler) AuditAll(c *fiber.Ctx) error {
	report, err := h.uc.AuditAll(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToAuditReportDTO(report))
}

// AuditProduct godoc
// @Summary      Auditar un producto
// @Tags         audit
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.AuditResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/audit/{productId} [get]
func (h *AuditHandler) AuditProduct(c *fiber.Ctx) error {
	res, err := h.uc.AuditProduct(c.UserContext(), c.Params("productId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToAuditResultDTO(res))
}

// Reconcile godoc
// @Summary      Reconciliar saldo con el historial
// @Description  Si hay divergencia, corrige estoque_atual al valor calculado. Solo admin.
// @Tags         audit
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                 true   "ID del producto"
// @Param        body       body  dto.ReconcileRequest  false  "operador"
// @Success      200  {object}  dto.ReconcileResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/audit/{productId}/reconcile [post]
func (h *AuditHandler) Reconcile(c *fiber.Ctx) error {
	var in dto.ReconcileRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	operator := in.Operator
	if operator == "" {
		operator = operatorFrom(c)
	}
	res, correction, err := h.uc.ReconcileProduct(c.UserContext(), c.Params("productId"), operator)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.ReconcileResponse{Audit: inventory.ToAuditResultDTO(res)}
	if correction != nil {
		corr := inventory.ToCorrectionResponse(correction)
		out.Correction = &corr
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte de auditoría en PDF
// @Tags         audit
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/audit/report.pdf [get]
func (h *AuditHandler) ReportPDF(c *fiber.Ctx) error {
	var buf bytes.Buffer
	report, err := h.uc.AuditReportPDF(c.UserContext(), &buf)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`inline; filename="auditoria-%s.pdf"`, report.GeneratedAt.Format("20060102-1504")))
	return c.Send(buf.Bytes())
}
