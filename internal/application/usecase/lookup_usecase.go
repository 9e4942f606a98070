package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/ports"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/pkg/cnpj"
)

// cepLength dígitos de un CEP sin máscara.
const cepLength = 8

// LookupUseCase consulta CEP y CNPJ en servicios públicos para autocompletar formularios.
// Aplica un timeout en cada llamada para que la latencia externa no bloquee los handlers.
type LookupUseCase struct {
	addresses ports.AddressLookup
	companies ports.CompanyLookup
	timeout   time.Duration
}

// NewLookupUseCase construye el caso de uso. timeout <= 0 usa 8 s.
func NewLookupUseCase(addresses ports.AddressLookup, companies ports.CompanyLookup, timeout time.Duration) *LookupUseCase {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &LookupUseCase{addresses: addresses, companies: companies, timeout: timeout}
}

// LookupCEP valida el formato (8 dígitos) y delega en el servicio de direcciones.
func (uc *LookupUseCase) LookupCEP(ctx context.Context, cep string) (*dto.AddressDTO, error) {
	digits := cnpj.Digits(cep)
	if len(digits) != cepLength {
		return nil, fmt.Errorf("%w: el CEP debe tener %d dígitos", domain.ErrInvalidInput, cepLength)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	addr, err := uc.addresses.LookupCEP(ctx, digits)
	if err != nil {
		return nil, fmt.Errorf("consulta CEP: %w", err)
	}
	return addr, nil
}

// LookupCNPJ valida los dígitos verificadores antes de consultar el servicio externo.
func (uc *LookupUseCase) LookupCNPJ(ctx context.Context, doc string) (*dto.CompanyInfoDTO, error) {
	if err := cnpj.ValidateCNPJ(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()

	info, err := uc.companies.LookupCNPJ(ctx, cnpj.Digits(doc))
	if err != nil {
		return nil, fmt.Errorf("consulta CNPJ: %w", err)
	}
	return info, nil
}
