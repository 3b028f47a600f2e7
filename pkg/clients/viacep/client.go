// Package viacep looks up Brazilian postal codes through the public ViaCEP
// API, used to prefill customer addresses.
package viacep

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// ErrInvalidCEP indicates the input is not an 8-digit postal code.
var ErrInvalidCEP = errors.New("cep must contain exactly 8 digits")

// ErrNotFound indicates the postal code does not exist.
var ErrNotFound = errors.New("cep not found")

// Address is the resolved street address for a postal code.
type Address struct {
	CEP         string `json:"cep"`
	Logradouro  string `json:"logradouro"`
	Complemento string `json:"complemento"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
}

// Client is a resty-backed ViaCEP API client.
type Client struct {
	httpClient *resty.Client
}

// NewClient builds a ViaCEP client against the given base URL.
func NewClient(baseURL string) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(10 * time.Second)

	return &Client{httpClient: restyClient}
}

// Lookup resolves a postal code. Punctuation in the input is tolerated.
func (c *Client) Lookup(ctx context.Context, cep string) (*Address, error) {
	digits := onlyDigits(cep)
	if len(digits) != 8 {
		return nil, ErrInvalidCEP
	}

	var payload struct {
		Address
		Erro bool `json:"erro"`
	}

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("/ws/%s/json/", digits))
	if err != nil {
		return nil, fmt.Errorf("viacep request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("viacep returned status %d", resp.StatusCode())
	}
	if payload.Erro {
		return nil, ErrNotFound
	}

	addr := payload.Address
	return &addr, nil
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
