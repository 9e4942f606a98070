package dto

// AddressDTO dirección resuelta a partir de un CEP.
type AddressDTO struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"cidade"`
	State        string `json:"uf"`
}

// CompanyInfoDTO datos públicos de una empresa consultados por CNPJ.
type CompanyInfoDTO struct {
	CNPJ      string     `json:"cnpj"`
	LegalName string     `json:"razao_social"`
	TradeName string     `json:"nome_fantasia"`
	Phone     string     `json:"telefone"`
	Email     string     `json:"email"`
	Address   AddressDTO `json:"endereco"`
}
