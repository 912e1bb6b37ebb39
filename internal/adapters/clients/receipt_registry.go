package clients

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// ReceiptRegistryClient talks to the social-graph registry's receipt API.
type ReceiptRegistryClient struct {
	baseURL string
	client  httpDoer
}

func NewReceiptRegistryClient(baseURL string, httpClient *http.Client) (*ReceiptRegistryClient, error) {
	trimmed, err := trimBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("receipt registry: %w", err)
	}
	return &ReceiptRegistryClient{baseURL: trimmed, client: httpClientOrDefault(httpClient)}, nil
}

type receiptContractResponse struct {
	Contract string `json:"contract"`
}

func (c *ReceiptRegistryClient) ReceiptContract(ctx context.Context, profileID string) (domain.Address, error) {
	var resp receiptContractResponse
	endpoint := fmt.Sprintf("%s/v1/profiles/%s/receipt-contract", c.baseURL, url.PathEscape(profileID))
	if err := getJSON(ctx, c.client, endpoint, &resp); err != nil {
		return "", err
	}
	addr, err := domain.ParseAddress(resp.Contract)
	if err != nil {
		return "", fmt.Errorf("%w: receipt contract: %v", domain.ErrDependencyUnavailable, err)
	}
	return addr, nil
}

type balanceResponse struct {
	Balance uint64 `json:"balance"`
}

func (c *ReceiptRegistryClient) BalanceOf(ctx context.Context, receiptContract, holder domain.Address) (uint64, error) {
	var resp balanceResponse
	endpoint := fmt.Sprintf("%s/v1/receipts/%s/balance?holder=%s", c.baseURL, url.PathEscape(receiptContract.String()), url.QueryEscape(holder.String()))
	if err := getJSON(ctx, c.client, endpoint, &resp); err != nil {
		return 0, err
	}
	return resp.Balance, nil
}

type ownerResponse struct {
	Owner string `json:"owner"`
}

func (c *ReceiptRegistryClient) OwnerOf(ctx context.Context, receiptContract domain.Address, receiptID uint64) (domain.Address, error) {
	var resp ownerResponse
	endpoint := fmt.Sprintf("%s/v1/receipts/%s/%d/owner", c.baseURL, url.PathEscape(receiptContract.String()), receiptID)
	if err := getJSON(ctx, c.client, endpoint, &resp); err != nil {
		return "", err
	}
	addr, err := domain.ParseAddress(resp.Owner)
	if err != nil {
		return "", fmt.Errorf("%w: receipt owner: %v", domain.ErrDependencyUnavailable, err)
	}
	return addr, nil
}
