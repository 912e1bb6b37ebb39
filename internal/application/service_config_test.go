package application

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

type fakeCache struct {
	m map[string]string
}

func (c *fakeCache) Get(_ context.Context, key string) (string, error) {
	return c.m[key], nil
}

func (c *fakeCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	c.m[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.m, k)
	}
	return nil
}

func initBlob(recipient, currency domain.Address, amount, rate string) []byte {
	return []byte(fmt.Sprintf(`{"recipient":"%s","currency":"%s","amount":"%s","flow_rate":"%s"}`,
		recipient, currency, amount, rate))
}

func TestInitializeRoundTrip(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	cache := &fakeCache{m: map[string]string{}}
	f.svc.cache = cache

	echo, err := f.svc.Initialize(context.Background(), "77", initBlob(recipient, currency, "500", "1000"))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	decoded, err := domain.DecodeConfigBlob("77", echo)
	if err != nil {
		t.Fatalf("echo not decodable: %v", err)
	}
	if decoded.Recipient != recipient || decoded.Amount.Int64() != 500 || decoded.FlowRate.Int64() != 1000 {
		t.Fatalf("echo mismatch: %+v", decoded)
	}

	resp, err := f.svc.GetProfileConfig(context.Background(), "77")
	if err != nil {
		t.Fatalf("GetProfileConfig: %v", err)
	}
	if !resp.Configured || resp.Amount != "500" || resp.FlowRate != "1000" {
		t.Fatalf("config did not round-trip: %+v", resp)
	}
	if len(f.outbox.events) != 1 || f.outbox.events[0].EventType != EventTypeProfileInitialized {
		t.Fatalf("expected profile_initialized event, got %+v", f.outbox.events)
	}
}

func TestInitializeReplacesPriorConfig(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	if _, err := f.svc.Initialize(context.Background(), "77", initBlob(recipient, currency, "500", "1000")); err != nil {
		t.Fatalf("first Initialize: %v", err)
	}
	if _, err := f.svc.Initialize(context.Background(), "77", initBlob(recipient, currency, "900", "2000")); err != nil {
		t.Fatalf("second Initialize: %v", err)
	}
	resp, err := f.svc.GetProfileConfig(context.Background(), "77")
	if err != nil {
		t.Fatalf("GetProfileConfig: %v", err)
	}
	if resp.Amount != "900" || resp.FlowRate != "2000" {
		t.Fatalf("config not fully replaced: %+v", resp)
	}
}

func TestInitializeRejectsInvalidConfiguration(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	cases := [][]byte{
		initBlob(domain.ZeroAddress, currency, "500", "1000"),
		initBlob(recipient, currency, "500", "0"),
		initBlob(recipient, domain.Address("0x9999999999999999999999999999999999999999"), "500", "1000"), // not allow-listed
		[]byte(`garbage`),
	}
	for i, blob := range cases {
		if _, err := f.svc.Initialize(context.Background(), "77", blob); !errors.Is(err, domain.ErrInvalidConfiguration) {
			t.Fatalf("case %d: expected ErrInvalidConfiguration, got %v", i, err)
		}
	}
	resp, err := f.svc.GetProfileConfig(context.Background(), "77")
	if err != nil {
		t.Fatalf("GetProfileConfig: %v", err)
	}
	if resp.Configured {
		t.Fatalf("failed initialize must not persist config: %+v", resp)
	}
}

func TestGetProfileConfigUnsetIsZeroValued(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	resp, err := f.svc.GetProfileConfig(context.Background(), "404")
	if err != nil {
		t.Fatalf("GetProfileConfig: %v", err)
	}
	if resp.Configured || resp.Recipient != "" || resp.Amount != "" {
		t.Fatalf("expected zero-valued response, got %+v", resp)
	}
}

func TestGetProfileConfigUsesCache(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	cache := &fakeCache{m: map[string]string{}}
	f.svc.cache = cache

	if _, err := f.svc.GetProfileConfig(context.Background(), testProfileID); err != nil {
		t.Fatalf("GetProfileConfig: %v", err)
	}
	if _, ok := cache.m[cacheKeyConfig(testProfileID)]; !ok {
		t.Fatalf("expected config cached under %s", cacheKeyConfig(testProfileID))
	}

	// Re-initialization invalidates the cached entry.
	if _, err := f.svc.Initialize(context.Background(), testProfileID, initBlob(recipient, currency, "1", "2")); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	if _, ok := cache.m[cacheKeyConfig(testProfileID)]; ok {
		t.Fatalf("expected cache invalidation on initialize")
	}
}
