package lookup

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/pkg/cnpj"
)

// brasilAPICNPJResponse campos usados de GET {base}/{cnpj}.
type brasilAPICNPJResponse struct {
	CNPJ         string `json:"cnpj"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia"`
	DDDTelefone1 string `json:"ddd_telefone_1"`
	Email        string `json:"email"`
	CEP          string `json:"cep"`
	Logradouro   string `json:"logradouro"`
	Numero       string `json:"numero"`
	Complemento  string `json:"complemento"`
	Bairro       string `json:"bairro"`
	Municipio    string `json:"municipio"`
	UF           string `json:"uf"`
}

// LookupCNPJ consulta BrasilAPI. doc debe venir solo con dígitos.
func (c *Client) LookupCNPJ(ctx context.Context, doc string) (*dto.CompanyInfoDTO, error) {
	var body brasilAPICNPJResponse
	if err := c.getJSON(ctx, "BrasilAPI", fmt.Sprintf("%s/%s", c.cnpjBaseURL, doc), &body); err != nil {
		return nil, err
	}

	street := body.Logradouro
	if body.Numero != "" {
		street += ", " + body.Numero
	}
	if body.Complemento != "" {
		street += " - " + body.Complemento
	}
	taxID := cnpj.Digits(body.CNPJ)
	if taxID == "" {
		taxID = doc
	}
	return &dto.CompanyInfoDTO{
		CNPJ:      taxID,
		LegalName: body.RazaoSocial,
		TradeName: body.NomeFantasia,
		Phone:     strings.TrimSpace(body.DDDTelefone1),
		Email:     body.Email,
		Address: dto.AddressDTO{
			CEP:          cnpj.Digits(body.CEP),
			Street:       strings.TrimSpace(street),
			Neighborhood: body.Bairro,
			City:         body.Municipio,
			State:        body.UF,
		},
	}, nil
}
