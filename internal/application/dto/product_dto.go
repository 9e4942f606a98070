package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. El saldo inicia en 0 y solo cambia vía movimientos.
type CreateProductRequest struct {
	Name         string          `json:"nome"`
	UnitMeasure  string          `json:"unidade_medida"`
	MinimumStock decimal.Decimal `json:"estoque_minimo"`
	SupplierID   *string         `json:"fornecedor_id,omitempty"`
	WarehouseID  *string         `json:"deposito_id,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin saldo).
type UpdateProductRequest struct {
	Name         *string          `json:"nome"`
	UnitMeasure  *string          `json:"unidade_medida"`
	MinimumStock *decimal.Decimal `json:"estoque_minimo"`
	SupplierID   *string          `json:"fornecedor_id"`
	WarehouseID  *string          `json:"deposito_id"`
	Active       *bool            `json:"ativo"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"nome"`
	UnitMeasure  string          `json:"unidade_medida"`
	CurrentStock decimal.Decimal `json:"estoque_atual"`
	MinimumStock decimal.Decimal `json:"estoque_minimo"`
	BelowMinimum bool            `json:"abaixo_minimo"`
	SupplierID   *string         `json:"fornecedor_id,omitempty"`
	WarehouseID  *string         `json:"deposito_id,omitempty"`
	Active       bool            `json:"ativo"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
