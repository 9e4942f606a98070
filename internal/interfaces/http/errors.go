package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/ports"
	"github.com/jhoicas/estoque-api/internal/domain"
)

// statusFor traduce un error de aplicación a estado HTTP y código de ErrorResponse.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.CodeValidation
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, ports.ErrLookupNotFound):
		return fiber.StatusNotFound, dto.CodeNotFound
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusConflict, dto.CodeInsufficientStock
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.CodeDuplicate
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, dto.CodeConflict
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, dto.CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.CodeForbidden
	case domain.IsStoreError(err):
		return fiber.StatusBadGateway, dto.CodeStoreError
	}
	return fiber.StatusInternalServerError, dto.CodeInternal
}

// writeError responde con el cuerpo ErrorResponse. El mensaje es el texto del error: para
// StoreError es el mensaje crudo del almacenamiento.
func writeError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

// writeUpstreamError para fallos de servicios externos de consulta (ViaCEP, BrasilAPI).
func writeUpstreamError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)
	if status == fiber.StatusInternalServerError {
		status, code = fiber.StatusBadGateway, dto.CodeUpstreamError
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeValidation, Message: "cuerpo inválido"})
}
