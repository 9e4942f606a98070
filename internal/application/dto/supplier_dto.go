package dto

import "time"

// CreateSupplierRequest entrada para registrar un proveedor. TaxID acepta CNPJ o CPF con o sin máscara.
type CreateSupplierRequest struct {
	Name      string `json:"nome"`
	LegalName string `json:"razao_social"`
	TaxID     string `json:"cnpj"`
	Email     string `json:"email"`
	Phone     string `json:"telefone"`
	CEP       string `json:"cep"`
	Address   string `json:"endereco"`
	City      string `json:"cidade"`
	State     string `json:"uf"`
}

// UpdateSupplierRequest entrada para actualizar un proveedor. El documento no se modifica.
type UpdateSupplierRequest struct {
	Name      *string `json:"nome"`
	LegalName *string `json:"razao_social"`
	Email     *string `json:"email"`
	Phone     *string `json:"telefone"`
	CEP       *string `json:"cep"`
	Address   *string `json:"endereco"`
	City      *string `json:"cidade"`
	State     *string `json:"uf"`
	Active    *bool   `json:"ativo"`
}

// SupplierResponse salida de un proveedor; TaxID sale con máscara.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	LegalName string    `json:"razao_social"`
	TaxID     string    `json:"cnpj"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefone"`
	CEP       string    `json:"cep"`
	Address   string    `json:"endereco"`
	City      string    `json:"cidade"`
	State     string    `json:"uf"`
	Active    bool      `json:"ativo"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SupplierListResponse lista paginada de proveedores.
type SupplierListResponse struct {
	Items []SupplierResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
