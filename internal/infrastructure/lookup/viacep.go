package lookup

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/application/ports"
	"github.com/jhoicas/estoque-api/pkg/cnpj"
)

// viaCEPResponse cuerpo de GET {base}/{cep}/json/. Para CEP inexistente ViaCEP responde 200 con "erro": true
// (a veces como string "true").
type viaCEPResponse struct {
	CEP        string          `json:"cep"`
	Logradouro string          `json:"logradouro"`
	Bairro     string          `json:"bairro"`
	Localidade string          `json:"localidade"`
	UF         string          `json:"uf"`
	Erro       json.RawMessage `json:"erro"`
}

// LookupCEP consulta ViaCEP. cep debe venir solo con dígitos.
func (c *Client) LookupCEP(ctx context.Context, cep string) (*dto.AddressDTO, error) {
	var body viaCEPResponse
	if err := c.getJSON(ctx, "ViaCEP", fmt.Sprintf("%s/%s/json/", c.cepBaseURL, cep), &body); err != nil {
		return nil, err
	}
	if isTrue(body.Erro) {
		return nil, ports.ErrLookupNotFound
	}
	return &dto.AddressDTO{
		CEP:          cnpj.Digits(body.CEP),
		Street:       body.Logradouro,
		Neighborhood: body.Bairro,
		City:         body.Localidade,
		State:        body.UF,
	}, nil
}

func isTrue(raw json.RawMessage) bool {
	s := string(raw)
	return s == "true" || s == `"true"`
}
