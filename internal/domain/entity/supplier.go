package entity

import "time"

// Supplier proveedor de mercadería. TaxID guarda CNPJ o CPF solo con dígitos.
type Supplier struct {
	ID        string
	Name      string // nome fantasia
	LegalName string // razão social
	TaxID     string
	Email     string
	Phone     string
	CEP       string
	Address   string
	City      string
	State     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
