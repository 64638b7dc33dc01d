// Package cep looks up Brazilian postal codes against a
// ViaCEP-compatible service.
package cep

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://viacep.com.br/ws"

var (
	ErrInvalidCode = errors.New("cep: code must have exactly 8 digits")
	ErrNotFound    = errors.New("cep: code not found")
)

// Address is the lookup result, in the upstream field naming.
type Address struct {
	Code         string `json:"cep"`
	Street       string `json:"logradouro"`
	Complement   string `json:"complemento"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup resolves a postal code. Punctuation is tolerated; anything that
// does not normalize to 8 digits fails before hitting the network.
func (c *Client) Lookup(ctx context.Context, code string) (*Address, error) {
	digits := normalize(code)
	if len(digits) != 8 {
		return nil, ErrInvalidCode
	}

	url := fmt.Sprintf("%s/%s/json/", c.baseURL, digits)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cep: lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cep: lookup: unexpected status %d", resp.StatusCode)
	}

	// ViaCEP answers 200 with {"erro": true} for unknown codes.
	var body struct {
		Address
		Erro bool `json:"erro"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("cep: decode response: %w", err)
	}
	if body.Erro {
		return nil, ErrNotFound
	}
	return &body.Address, nil
}

func normalize(code string) string {
	var b strings.Builder
	for _, r := range code {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
