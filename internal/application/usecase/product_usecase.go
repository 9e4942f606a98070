package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El saldo se maneja solo vía movimientos y correcciones.
type ProductUseCase struct {
	repo          repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	supplierRepo  repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, warehouseRepo: warehouseRepo, supplierRepo: supplierRepo}
}

// Create crea un nuevo producto. estoque_atual inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: nome es obligatorio", domain.ErrInvalidInput)
	}
	if in.MinimumStock.IsNegative() {
		return nil, fmt.Errorf("%w: estoque_minimo no puede ser negativo", domain.ErrInvalidInput)
	}
	unit := strings.TrimSpace(in.UnitMeasure)
	if unit == "" {
		unit = entity.DefaultUnitMeasure
	}
	if err := uc.checkReferences(ctx, in.SupplierID, in.WarehouseID); err != nil {
		return nil, err
	}

	now := time.Now()
	product := &entity.Product{
		ID:           uuid.New().String(),
		Name:         name,
		UnitMeasure:  unit,
		CurrentStock: decimal.Zero,
		MinimumStock: in.MinimumStock,
		SupplierID:   emptyToNil(in.SupplierID),
		WarehouseID:  emptyToNil(in.WarehouseID),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, domain.NewStoreError("crear producto", err)
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("obtener producto", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. No permite modificar el saldo.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.NewStoreError("obtener producto", err)
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: nome no puede quedar vacío", domain.ErrInvalidInput)
		}
		product.Name = name
	}
	if in.UnitMeasure != nil && strings.TrimSpace(*in.UnitMeasure) != "" {
		product.UnitMeasure = strings.TrimSpace(*in.UnitMeasure)
	}
	if in.MinimumStock != nil {
		if in.MinimumStock.IsNegative() {
			return nil, fmt.Errorf("%w: estoque_minimo no puede ser negativo", domain.ErrInvalidInput)
		}
		product.MinimumStock = *in.MinimumStock
	}
	if err := uc.checkReferences(ctx, in.SupplierID, in.WarehouseID); err != nil {
		return nil, err
	}
	if in.SupplierID != nil {
		product.SupplierID = emptyToNil(in.SupplierID)
	}
	if in.WarehouseID != nil {
		product.WarehouseID = emptyToNil(in.WarehouseID)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, domain.NewStoreError("actualizar producto", err)
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda por nombre y paginación.
func (uc *ProductUseCase) List(ctx context.Context, search string, onlyActive bool, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	filter := repository.ProductFilter{Search: search, OnlyActive: onlyActive, Limit: page.Limit, Offset: page.Offset}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, domain.NewStoreError("listar productos", err)
	}
	total, err := uc.repo.Count(ctx, filter)
	if err != nil {
		return nil, domain.NewStoreError("contar productos", err)
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete elimina un producto. Falla con ErrConflict si tiene movimientos registrados.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return domain.NewStoreError("obtener producto", err)
	}
	if product == nil {
		return domain.ErrNotFound
	}
	return domain.NewStoreError("eliminar producto", uc.repo.Delete(ctx, id))
}

func (uc *ProductUseCase) checkReferences(ctx context.Context, supplierID, warehouseID *string) error {
	if id := emptyToNil(supplierID); id != nil && uc.supplierRepo != nil {
		s, err := uc.supplierRepo.GetByID(ctx, *id)
		if err != nil {
			return domain.NewStoreError("obtener proveedor", err)
		}
		if s == nil {
			return fmt.Errorf("%w: fornecedor_id %s no existe", domain.ErrInvalidInput, *id)
		}
	}
	if id := emptyToNil(warehouseID); id != nil && uc.warehouseRepo != nil {
		w, err := uc.warehouseRepo.GetByID(ctx, *id)
		if err != nil {
			return domain.NewStoreError("obtener depósito", err)
		}
		if w == nil {
			return fmt.Errorf("%w: deposito_id %s no existe", domain.ErrInvalidInput, *id)
		}
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		UnitMeasure:  p.UnitMeasure,
		CurrentStock: p.CurrentStock,
		MinimumStock: p.MinimumStock,
		BelowMinimum: p.BelowMinimum(),
		SupplierID:   p.SupplierID,
		WarehouseID:  p.WarehouseID,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
