package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// InventoryHandler maneja el libro de movimientos, las correcciones y las alertas de estoque bajo.
type InventoryHandler struct {
	ledger *inventory.LedgerUseCase
	alerts *inventory.StockAlertsUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, alerts *inventory.StockAlertsUseCase) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, alerts: alerts}
}

// RecordMovement godoc
// @Summary      Registrar movimiento de estoque
// @Description  entrada suma al saldo; saida, venda, uso y avaria descuentan y no pueden dejarlo negativo.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordMovementRequest  true  "product_id, tipo, quantidade, operador, observacao"
// @Success      201   {object}  dto.RecordMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RecordMovement(c *fiber.Ctx) error {
	var in dto.RecordMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.RecordMovementFromRequest(c.UserContext(), operatorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Historial de movimientos
// @Description  Más reciente primero. from es inclusivo y to exclusivo; una fecha sin hora en to incluye ese día.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        tipo        query  string  false  "entrada | saida | venda | uso | avaria"
// @Param        from        query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        to          query  string  false  "YYYY-MM-DD o RFC3339"
// @Param        limit       query  int     false  "Máximo 200"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	page.DefaultPage()
	filter := repository.MovementFilter{
		ProductID: strings.TrimSpace(c.Query("product_id")),
		Limit:     page.Limit,
		Offset:    page.Offset,
	}
	if raw := c.Query("tipo"); raw != "" {
		t, _ := entity.ParseMovementType(raw)
		filter.Type = t
	}
	var err error
	if filter.From, err = parseDateParam(c.Query("from"), false); err != nil {
		return writeError(c, err)
	}
	if filter.To, err = parseDateParam(c.Query("to"), true); err != nil {
		return writeError(c, err)
	}
	list, total, err := h.ledger.ListMovements(c.UserContext(), filter)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(inventory.ToMovementListResponse(list, total, filter))
}

// DeleteMovement godoc
// @Summary      Eliminar movimiento
// @Description  Revierte el efecto del movimiento sobre el saldo y borra el registro. Solo admin.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.DeleteMovementResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements/{id} [delete]
func (h *InventoryHandler) DeleteMovement(c *fiber.Ctx) error {
	res, err := h.ledger.DeleteMovement(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.DeleteMovementResponse{
		MovementID:      res.Movement.ID,
		ProductID:       res.Movement.ProductID,
		RevertedBalance: res.RevertedBalance,
	})
}

// CorrectStock godoc
// @Summary      Corregir saldo manualmente
// @Description  Sobrescribe estoque_atual y deja constancia en el registro de correcciones. Solo admin.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del producto"
// @Param        body  body  dto.CorrectStockRequest  true  "novo_estoque, motivo, operador"
// @Success      201   {object}  dto.StockCorrectionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/correction [post]
func (h *InventoryHandler) CorrectStock(c *fiber.Ctx) error {
	var in dto.CorrectStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.ledger.CorrectStockFromRequest(c.UserContext(), c.Params("id"), operatorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCorrections godoc
// @Summary      Correcciones manuales de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {array}   dto.StockCorrectionResponse
// @Router       /api/inventory/products/{id}/corrections [get]
func (h *InventoryHandler) ListCorrections(c *fiber.Ctx) error {
	list, err := h.ledger.ListCorrections(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	out := make([]dto.StockCorrectionResponse, 0, len(list))
	for _, corr := range list {
		out = append(out, inventory.ToCorrectionResponse(corr))
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Productos en o por debajo del mínimo
// @Description  Sugerencia de compra = max(0, estoque_minimo * 1.5 - estoque_atual), mayor déficit primero.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de productos (por defecto 50)"
// @Success      200  {object}  map[string]interface{}
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) LowStock(c *fiber.Ctx) error {
	list, err := h.alerts.ListBelowMinimum(c.UserContext(), c.QueryInt("limit", 50))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"total": len(list),
		"items": list,
	})
}

// parseDateParam acepta YYYY-MM-DD o RFC3339. endOfDay desplaza una fecha sin hora al día siguiente
// (el límite superior es exclusivo).
func parseDateParam(raw string, endOfDay bool) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, raw)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return &t, nil
}
