package clients

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

const (
	testContract = "0x00000000000000000000000000000000000000aa"
	testHolder   = "0x00000000000000000000000000000000000000bb"
)

func TestReceiptRegistryClient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/profiles/42/receipt-contract":
			json.NewEncoder(w).Encode(map[string]string{"contract": testContract})
		case "/v1/receipts/" + testContract + "/balance":
			if r.URL.Query().Get("holder") != testHolder {
				t.Errorf("unexpected holder %q", r.URL.Query().Get("holder"))
			}
			json.NewEncoder(w).Encode(map[string]uint64{"balance": 1})
		case "/v1/receipts/" + testContract + "/7/owner":
			json.NewEncoder(w).Encode(map[string]string{"owner": testHolder})
		case "/v1/profiles/missing/receipt-contract":
			http.NotFound(w, r)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client, err := NewReceiptRegistryClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx := context.Background()

	contract, err := client.ReceiptContract(ctx, "42")
	if err != nil {
		t.Fatalf("ReceiptContract: %v", err)
	}
	if contract != domain.Address(testContract) {
		t.Fatalf("contract = %s", contract)
	}

	balance, err := client.BalanceOf(ctx, contract, domain.Address(testHolder))
	if err != nil {
		t.Fatalf("BalanceOf: %v", err)
	}
	if balance != 1 {
		t.Fatalf("balance = %d", balance)
	}

	owner, err := client.OwnerOf(ctx, contract, 7)
	if err != nil {
		t.Fatalf("OwnerOf: %v", err)
	}
	if owner != domain.Address(testHolder) {
		t.Fatalf("owner = %s", owner)
	}

	if _, err := client.ReceiptContract(ctx, "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestStreamLedgerClientMapsMissingFlowToZeroState(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("sender") == testHolder {
			json.NewEncoder(w).Encode(map[string]any{"last_updated_at": 1700000000, "rate": "3858024691358024"})
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client, err := NewStreamLedgerClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx := context.Background()

	state, err := client.FlowState(ctx, domain.Address(testContract), domain.Address(testHolder), domain.Address(testContract))
	if err != nil {
		t.Fatalf("FlowState: %v", err)
	}
	if state.LastUpdatedAt != 1700000000 || state.Rate == nil || state.Rate.String() != "3858024691358024" {
		t.Fatalf("unexpected state %+v", state)
	}

	missing, err := client.FlowState(ctx, domain.Address(testContract), domain.Address(testContract), domain.Address(testHolder))
	if err != nil {
		t.Fatalf("FlowState (missing): %v", err)
	}
	if missing.LastUpdatedAt != 0 || missing.Rate != nil {
		t.Fatalf("missing flow must map to zero state, got %+v", missing)
	}
}

func TestModuleRegistryClient(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/currencies/" + testContract + "/allowed":
			json.NewEncoder(w).Encode(map[string]bool{"allowed": true})
		case "/v1/treasury":
			json.NewEncoder(w).Encode(map[string]any{"treasury": testHolder, "fee_bps": 500})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client, err := NewModuleRegistryClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx := context.Background()

	allowed, err := client.IsCurrencyAllowed(ctx, domain.Address(testContract))
	if err != nil {
		t.Fatalf("IsCurrencyAllowed: %v", err)
	}
	if !allowed {
		t.Fatal("expected currency allowed")
	}

	treasury, err := client.TreasuryInfo(ctx)
	if err != nil {
		t.Fatalf("TreasuryInfo: %v", err)
	}
	if treasury.Address != domain.Address(testHolder) || treasury.FeeBps != 500 {
		t.Fatalf("unexpected treasury %+v", treasury)
	}
}

func TestTokenTransferClientMapsFailureReasons(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req transferRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode transfer request: %v", err)
		}
		switch req.From {
		case testHolder:
			json.NewEncoder(w).Encode(transferResponse{Status: transferStatusCompleted})
		default:
			json.NewEncoder(w).Encode(transferResponse{Status: "rejected", Reason: reasonInsufficientBalance})
		}
	}))
	defer srv.Close()

	client, err := NewTokenTransferClient(srv.URL, srv.Client())
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	ctx := context.Background()
	amount := big.NewInt(1000)

	if err := client.Transfer(ctx, domain.Address(testContract), domain.Address(testHolder), domain.Address(testContract), amount); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	err = client.Transfer(ctx, domain.Address(testContract), domain.Address(testContract), domain.Address(testHolder), amount)
	if !errors.Is(err, domain.ErrInsufficientBalance) {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}
}
