package dto

import "time"

// CreateWarehouseRequest entrada para crear un depósito.
type CreateWarehouseRequest struct {
	Name    string `json:"nome"`
	CEP     string `json:"cep"`
	Address string `json:"endereco"`
	City    string `json:"cidade"`
	State   string `json:"uf"`
}

// UpdateWarehouseRequest entrada para actualizar un depósito.
type UpdateWarehouseRequest struct {
	Name    *string `json:"nome"`
	CEP     *string `json:"cep"`
	Address *string `json:"endereco"`
	City    *string `json:"cidade"`
	State   *string `json:"uf"`
	Active  *bool   `json:"ativo"`
}

// WarehouseResponse salida de un depósito.
type WarehouseResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	CEP       string    `json:"cep"`
	Address   string    `json:"endereco"`
	City      string    `json:"cidade"`
	State     string    `json:"uf"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// WarehouseListResponse lista paginada de depósitos.
type WarehouseListResponse struct {
	Items []WarehouseResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
