// Package lookup implementa los puertos de consulta de CEP (ViaCEP) y CNPJ (BrasilAPI)
// sobre sus APIs REST públicas.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jhoicas/estoque-api/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa ambos puertos.
var (
	_ ports.AddressLookup = (*Client)(nil)
	_ ports.CompanyLookup = (*Client)(nil)
)

const maxBodyBytes = 64 * 1024

// Client adaptador HTTP para ViaCEP y BrasilAPI. Ninguna de las dos requiere credenciales.
type Client struct {
	cepBaseURL  string
	cnpjBaseURL string
	httpClient  *http.Client
}

// NewClient construye el adaptador. timeout es el límite de red; el caller también pone WithTimeout.
func NewClient(cepBaseURL, cnpjBaseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		cepBaseURL:  strings.TrimRight(cepBaseURL, "/"),
		cnpjBaseURL: strings.TrimRight(cnpjBaseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// getJSON hace GET a url y decodifica el cuerpo en out.
// 404 se traduce a ports.ErrLookupNotFound; otros estados != 200 son errores del servicio.
func (c *Client) getJSON(ctx context.Context, service, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%s: crear HTTP request: %w", service, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: timeout o cancelación: %w", service, ctx.Err())
		}
		return fmt.Errorf("%s: llamada HTTP fallida: %w", service, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s: leer respuesta: %w", service, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ports.ErrLookupNotFound
	case resp.StatusCode == http.StatusBadRequest:
		return ports.ErrLookupNotFound
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%s: HTTP %d", service, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%s: deserializar respuesta: %w", service, err)
	}
	return nil
}
