package clients

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"net/url"
	"strings"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// StreamLedgerClient reads live flow snapshots from the payment-stream
// ledger.
type StreamLedgerClient struct {
	baseURL string
	client  httpDoer
}

func NewStreamLedgerClient(baseURL string, httpClient *http.Client) (*StreamLedgerClient, error) {
	trimmed, err := trimBaseURL(baseURL)
	if err != nil {
		return nil, fmt.Errorf("stream ledger: %w", err)
	}
	return &StreamLedgerClient{baseURL: trimmed, client: httpClientOrDefault(httpClient)}, nil
}

type flowStateResponse struct {
	LastUpdatedAt int64  `json:"last_updated_at"`
	Rate          string `json:"rate"`
}

// FlowState returns the snapshot for one (currency, sender, receiver)
// triple. A missing flow is not an error: the ledger reports it as a zero
// snapshot, which the caller treats as "no stream".
func (c *StreamLedgerClient) FlowState(ctx context.Context, currency, sender, receiver domain.Address) (domain.FlowState, error) {
	q := url.Values{}
	q.Set("currency", currency.String())
	q.Set("sender", sender.String())
	q.Set("receiver", receiver.String())

	var resp flowStateResponse
	endpoint := c.baseURL + "/v1/flows?" + q.Encode()
	if err := getJSON(ctx, c.client, endpoint, &resp); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.FlowState{}, nil
		}
		return domain.FlowState{}, err
	}

	state := domain.FlowState{LastUpdatedAt: resp.LastUpdatedAt}
	if trimmed := strings.TrimSpace(resp.Rate); trimmed != "" {
		rate, ok := new(big.Int).SetString(trimmed, 10)
		if !ok {
			return domain.FlowState{}, fmt.Errorf("%w: malformed flow rate %q", domain.ErrDependencyUnavailable, resp.Rate)
		}
		state.Rate = rate
	}
	return state, nil
}
