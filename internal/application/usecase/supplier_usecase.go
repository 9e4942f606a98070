package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	"github.com/jhoicas/estoque-api/pkg/cnpj"
)

// SupplierUseCase casos de uso para proveedores (fornecedores).
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create registra un proveedor. El documento (CNPJ o CPF) se valida por dígito verificador
// y debe ser único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome es obligatorio", domain.ErrInvalidInput)
	}
	taxID := cnpj.Digits(in.TaxID)
	if taxID != "" {
		if err := cnpj.ValidateTaxID(taxID); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		existing, err := uc.repo.GetByTaxID(ctx, taxID)
		if err != nil {
			return nil, domain.NewStoreError("obtener proveedor", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ya existe un proveedor con el documento %s", domain.ErrDuplicate, cnpj.Format(taxID))
		}
	}

	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		LegalName: strings.TrimSpace(in.LegalName),
		TaxID:     taxID,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		CEP:       cnpj.Digits(in.CEP),
		Address:   in.Address,
		City:      in.City,
		State:     strings.ToUpper(strings.TrimSpace(in.State)),
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, supplier); err != nil {
		return nil, domain.NewStoreError("crear proveedor", err)
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("obtener proveedor", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(s), nil
}

// Update actualiza datos de contacto y dirección. El documento no cambia.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("obtener proveedor", err)
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, fmt.Errorf("%w: nome no puede quedar vacío", domain.ErrInvalidInput)
		}
		s.Name = strings.TrimSpace(*in.Name)
	}
	if in.LegalName != nil {
		s.LegalName = strings.TrimSpace(*in.LegalName)
	}
	if in.Email != nil {
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		s.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.CEP != nil {
		s.CEP = cnpj.Digits(*in.CEP)
	}
	if in.Address != nil {
		s.Address = *in.Address
	}
	if in.City != nil {
		s.City = *in.City
	}
	if in.State != nil {
		s.State = strings.ToUpper(strings.TrimSpace(*in.State))
	}
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, domain.NewStoreError("actualizar proveedor", err)
	}
	return toSupplierResponse(s), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.NewStoreError("listar proveedores", err)
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un proveedor. Falla con ErrConflict si hay productos asociados.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	return domain.NewStoreError("eliminar proveedor", uc.repo.Delete(ctx, id))
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		LegalName: s.LegalName,
		TaxID:     cnpj.Format(s.TaxID),
		Email:     s.Email,
		Phone:     s.Phone,
		CEP:       s.CEP,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Active:    s.Active,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
