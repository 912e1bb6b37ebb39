package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

const defaultTimeout = 8 * time.Second

type httpDoer interface {
	Do(*http.Request) (*http.Response, error)
}

func httpClientOrDefault(c *http.Client) httpDoer {
	if c != nil {
		return c
	}
	return &http.Client{Timeout: defaultTimeout}
}

func trimBaseURL(baseURL string) (string, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return "", fmt.Errorf("base url is required")
	}
	return trimmed, nil
}

// getJSON issues a GET and decodes a 2xx body into out. A 404 maps to
// domain.ErrNotFound; any other non-2xx status maps to
// domain.ErrDependencyUnavailable with a body excerpt.
func getJSON(ctx context.Context, client httpDoer, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return doJSON(client, req, out)
}

func postJSON(ctx context.Context, client httpDoer, url string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return doJSON(client, req, out)
}

func doJSON(client httpDoer, req *http.Request, out any) error {
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", domain.ErrNotFound, req.URL.Path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status=%d body=%s", domain.ErrDependencyUnavailable, resp.StatusCode, strings.TrimSpace(string(excerpt)))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", domain.ErrDependencyUnavailable, err)
	}
	return nil
}
