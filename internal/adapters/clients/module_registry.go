package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// ModuleRegistryClient reads the currency allow-list and treasury
// configuration from the protocol module registry.
type ModuleRegistryClient struct {
	baseURL string
	client  httpDoer
}

func NewModuleRegistryClient(baseURL string, httpClient *http.Client) (*ModuleRegistryClient, error) {
	trimmed, err := trimBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("module registry: %w", err)
	}
	return &ModuleRegistryClient{baseURL: trimmed, client: httpClientOrDefault(httpClient)}, nil
}

type currencyAllowedResponse struct {
	Allowed bool `json:"allowed"`
}

func (c *ModuleRegistryClient) IsCurrencyAllowed(ctx context.Context, currency domain.Address) (bool, error) {
	var resp currencyAllowedResponse
	endpoint := fmt.Sprintf("%s/v1/currencies/%s/allowed", c.baseURL, url.PathEscape(currency.String()))
	if err := getJSON(ctx, c.client, endpoint, &resp); err != nil {
		return false, err
	}
	return resp.Allowed, nil
}

type treasuryResponse struct {
	Treasury string `json:"treasury"`
	FeeBps   int64  `json:"fee_bps"`
}

func (c *ModuleRegistryClient) TreasuryInfo(ctx context.Context) (domain.TreasuryInfo, error) {
	var resp treasuryResponse
	if err := getJSON(ctx, c.client, c.baseURL+"/v1/treasury", &resp); err != nil {
		return domain.TreasuryInfo{}, err
	}
	addr, err := domain.ParseAddress(resp.Treasury)
	if err != nil {
		return domain.TreasuryInfo{}, fmt.Errorf("%w: treasury address: %v", domain.ErrDependencyUnavailable, err)
	}
	if resp.FeeBps < 0 || resp.FeeBps > 10_000 {
		return domain.TreasuryInfo{}, fmt.Errorf("%w: treasury fee %d out of range", domain.ErrDependencyUnavailable, resp.FeeBps)
	}
	return domain.TreasuryInfo{Address: addr, FeeBps: resp.FeeBps}, nil
}
