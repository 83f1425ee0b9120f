package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/util"

	"github.com/go-resty/resty/v2"
)

// Postal lookup errors
var (
	ErrPostalCodeInvalid = errors.New("postal code must have 8 digits")
	ErrPostalNotFound    = errors.New("postal code not found")
)

// PostalAddress is the result of a postal code lookup
type PostalAddress struct {
	Street       string `json:"street"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Complement   string `json:"complement,omitempty"`
}

// PostalClient resolves 8-digit postal codes against a ViaCEP-compatible
// lookup service
type PostalClient struct {
	http *resty.Client
}

// NewPostalClient creates a new postal lookup client
func NewPostalClient(baseURL string, timeout time.Duration) *PostalClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")

	return &PostalClient{http: client}
}

type viaCEPResponse struct {
	Logradouro  string `json:"logradouro"`
	Bairro      string `json:"bairro"`
	Localidade  string `json:"localidade"`
	UF          string `json:"uf"`
	Complemento string `json:"complemento"`
	Erro        bool   `json:"erro"`
}

// Lookup resolves a postal code to an address. Non-digit separators are
// tolerated; anything that is not 8 digits after stripping is rejected
// before the network call.
func (c *PostalClient) Lookup(ctx context.Context, code string) (*PostalAddress, error) {
	digits := stripNonDigits(code)
	if len(digits) != 8 {
		return nil, ErrPostalCodeInvalid
	}

	start := time.Now()
	defer func() {
		util.PostalLookupLatency.Observe(time.Since(start).Seconds())
	}()

	var payload viaCEPResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&payload).
		Get(fmt.Sprintf("/ws/%s/json/", digits))
	if err != nil {
		util.PostalLookupsFailedTotal.Inc()
		return nil, fmt.Errorf("postal lookup failed: %w", err)
	}
	if resp.IsError() {
		util.PostalLookupsFailedTotal.Inc()
		return nil, fmt.Errorf("postal lookup failed: status %d", resp.StatusCode())
	}
	if payload.Erro {
		util.PostalLookupsFailedTotal.Inc()
		return nil, ErrPostalNotFound
	}

	return &PostalAddress{
		Street:       payload.Logradouro,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.UF,
		Complement:   payload.Complemento,
	}, nil
}

func stripNonDigits(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
