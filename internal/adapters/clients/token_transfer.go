package clients

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// TokenTransferClient asks the host to move value between accounts. The
// host executes transfers inside its own transaction; a failure response
// here aborts the enclosing admission on the host side, so the adapter
// only has to surface the reason.
type TokenTransferClient struct {
	baseURL string
	client  httpDoer
}

func NewTokenTransferClient(baseURL string, httpClient *http.Client) (*TokenTransferClient, error) {
	trimmed, err := trimBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("token transfer: %w", err)
	}
	return &TokenTransferClient{baseURL: trimmed, client: httpClientOrDefault(httpClient)}, nil
}

type transferRequest struct {
	Currency string `json:"currency"`
	From     string `json:"from"`
	To       string `json:"to"`
	Amount   string `json:"amount"`
}

type transferResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

const (
	transferStatusCompleted = "completed"

	reasonInsufficientBalance   = "insufficient_balance"
	reasonInsufficientAllowance = "insufficient_allowance"
)

func (c *TokenTransferClient) Transfer(ctx context.Context, currency, from, to domain.Address, amount *big.Int) error {
	if amount == nil {
		return errors.New("transfer amount is required")
	}
	req := transferRequest{
		Currency: currency.String(),
		From:     from.String(),
		To:       to.String(),
		Amount:   amount.String(),
	}
	var resp transferResponse
	if err := postJSON(ctx, c.client, c.baseURL+"/v1/transfers", req, &resp); err != nil {
		return err
	}
	if resp.Status == transferStatusCompleted {
		return nil
	}
	switch resp.Reason {
	case reasonInsufficientBalance:
		return fmt.Errorf("%w: %s -> %s", domain.ErrInsufficientBalance, from, to)
	case reasonInsufficientAllowance:
		return fmt.Errorf("%w: %s -> %s", domain.ErrInsufficientAllowance, from, to)
	default:
		return fmt.Errorf("%w: status=%s reason=%s", domain.ErrTransferFailed, resp.Status, resp.Reason)
	}
}
