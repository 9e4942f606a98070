package ports

import (
	"context"
	"errors"

	"github.com/jhoicas/estoque-api/internal/application/dto"
)

// ErrLookupNotFound el servicio externo respondió que el CEP o CNPJ no existe.
var ErrLookupNotFound = errors.New("documento no encontrado en el servicio de consulta")

// AddressLookup puerto de salida para resolver direcciones a partir de un CEP.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type AddressLookup interface {
	LookupCEP(ctx context.Context, cep string) (*dto.AddressDTO, error)
}

// CompanyLookup puerto de salida para consultar datos públicos de una empresa por CNPJ.
type CompanyLookup interface {
	LookupCNPJ(ctx context.Context, cnpj string) (*dto.CompanyInfoDTO, error)
}
