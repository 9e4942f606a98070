package entity

import "time"

// Warehouse representa un depósito donde se guarda mercadería.
type Warehouse struct {
	ID        string
	Name      string
	CEP       string
	Address   string
	City      string
	State     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
