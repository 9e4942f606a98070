package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// LookupHandler consultas de CEP y CNPJ para autocompletar depósitos y proveedores.
type LookupHandler struct {
	uc *usecase.LookupUseCase
}

// NewLookupHandler construye el handler.
func NewLookupHandler(uc *usecase.LookupUseCase) *LookupHandler {
	return &LookupHandler{uc: uc}
}

// CEP godoc
// @Summary      Consultar dirección por CEP
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        cep  path  string  true  "CEP con o sin guion"
// @Success      200  {object}  dto.AddressDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/lookup/cep/{cep} [get]
func (h *LookupHandler) CEP(c *fiber.Ctx) error {
	out, err := h.uc.LookupCEP(c.UserContext(), c.Params("cep"))
	if err != nil {
		return writeUpstreamError(c, err)
	}
	return c.JSON(out)
}

// CNPJ godoc
// @Summary      Consultar empresa por CNPJ
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        cnpj  path  string  true  "CNPJ solo dígitos"
// @Success      200  {object}  dto.CompanyInfoDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/lookup/cnpj/{cnpj} [get]
func (h *LookupHandler) CNPJ(c *fiber.Ctx) error {
	out, err := h.uc.LookupCNPJ(c.UserContext(), c.Params("cnpj"))
	if err != nil {
		return writeUpstreamError(c, err)
	}
	return c.JSON(out)
}
