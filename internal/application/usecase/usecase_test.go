package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/ports"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
)

func strPtr(s string) *string { return &s }

func TestProductCreate_SaldoIniciaEnCeroYUnidadPorDefecto(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store.Warehouses(), store.Suppliers())

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: " Arroz ", MinimumStock: decimal.NewFromInt(10)})

	require.NoError(t, err)
	assert.Equal(t, "Arroz", out.Name)
	assert.Equal(t, entity.DefaultUnitMeasure, out.UnitMeasure)
	assert.True(t, out.CurrentStock.IsZero())
	assert.True(t, out.BelowMinimum)
	assert.True(t, out.Active)
}

func TestProductCreate_Validaciones(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store.Warehouses(), store.Suppliers())
	ctx := context.Background()

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: ""})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", MinimumStock: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "X", WarehouseID: strPtr("no-existe")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoModificaSaldo(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), store.Warehouses(), store.Suppliers())
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Feijão"})
	require.NoError(t, err)
	_, err = store.Products().AdjustStock(ctx, created.ID, decimal.NewFromInt(7))
	require.NoError(t, err)

	minimum := decimal.NewFromInt(3)
	out, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Name: strPtr("Feijão preto"), MinimumStock: &minimum})

	require.NoError(t, err)
	assert.Equal(t, "Feijão preto", out.Name)
	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "7", got.CurrentStock.String())
	assert.Equal(t, "3", got.MinimumStock.String())
}

func TestProductGetByID_Inexistente(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), nil, nil)

	_, err := uc.GetByID(context.Background(), "no-existe")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductList_BuscaYPagina(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewProductUseCase(store.Products(), nil, nil)
	ctx := context.Background()
	for _, n := range []string{"Café torrado", "Café moído", "Chá"} {
		_, err := uc.Create(ctx, dto.CreateProductRequest{Name: n})
		require.NoError(t, err)
	}

	out, err := uc.List(ctx, "café", false, dto.PageRequest{Limit: 1})

	require.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, 2, out.Page.Total)
}

func TestSupplierCreate_ValidaDocumentoYDuplicado(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewSupplierUseCase(store.Suppliers())
	ctx := context.Background()

	out, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Distribuidora", TaxID: "11222333000181"})
	require.NoError(t, err)
	assert.Equal(t, "11.222.333/0001-81", out.TaxID)

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "Outra", TaxID: "11.222.333/0001-81"})
	require.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "Inválida", TaxID: "11.222.333/0001-80"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(ctx, dto.CreateSupplierRequest{Name: "Pessoa física", TaxID: "529.982.247-25"})
	require.NoError(t, err)
}

func TestWarehouseCRUD(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewWarehouseUseCase(store.Warehouses())
	ctx := context.Background()

	w, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Central", CEP: "01310-100", State: "sp"})
	require.NoError(t, err)
	assert.Equal(t, "01310100", w.CEP)
	assert.Equal(t, "SP", w.State)

	up, err := uc.Update(ctx, w.ID, dto.UpdateWarehouseRequest{City: strPtr("São Paulo")})
	require.NoError(t, err)
	assert.Equal(t, "São Paulo", up.City)

	require.NoError(t, uc.Delete(ctx, w.ID))
	_, err = uc.GetByID(ctx, w.ID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

type fakeLookup struct {
	gotCEP  string
	gotCNPJ string
	err     error
}

func (f *fakeLookup) LookupCEP(ctx context.Context, cep string) (*dto.AddressDTO, error) {
	f.gotCEP = cep
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("sin timeout")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &dto.AddressDTO{CEP: cep, City: "São Paulo", State: "SP"}, nil
}

func (f *fakeLookup) LookupCNPJ(_ context.Context, doc string) (*dto.CompanyInfoDTO, error) {
	f.gotCNPJ = doc
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CompanyInfoDTO{CNPJ: doc, LegalName: "ACME LTDA"}, nil
}

func TestLookupCEP_NormalizaYAplicaTimeout(t *testing.T) {
	f := &fakeLookup{}
	uc := usecase.NewLookupUseCase(f, f, time.Second)

	addr, err := uc.LookupCEP(context.Background(), "01310-100")

	require.NoError(t, err)
	assert.Equal(t, "01310100", f.gotCEP)
	assert.Equal(t, "SP", addr.State)
}

func TestLookupCEP_FormatoInvalidoNoConsulta(t *testing.T) {
	f := &fakeLookup{}
	uc := usecase.NewLookupUseCase(f, f, 0)

	_, err := uc.LookupCEP(context.Background(), "123")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.gotCEP)
}

func TestLookupCNPJ_ValidaAntesDeConsultar(t *testing.T) {
	f := &fakeLookup{}
	uc := usecase.NewLookupUseCase(f, f, 0)

	_, err := uc.LookupCNPJ(context.Background(), "11.222.333/0001-00")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.gotCNPJ)

	info, err := uc.LookupCNPJ(context.Background(), "11.222.333/0001-81")
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", f.gotCNPJ)
	assert.Equal(t, "ACME LTDA", info.LegalName)
}

func TestLookupCNPJ_NoEncontradoSePropaga(t *testing.T) {
	f := &fakeLookup{err: ports.ErrLookupNotFound}
	uc := usecase.NewLookupUseCase(f, f, 0)

	_, err := uc.LookupCNPJ(context.Background(), "11222333000181")

	require.ErrorIs(t, err, ports.ErrLookupNotFound)
}
