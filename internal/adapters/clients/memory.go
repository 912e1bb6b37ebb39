package clients

import (
	"context"
	"fmt"
	"math/big"
	"sync"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// Memory-backed collaborators for local runs where no registry, ledger or
// host endpoints are configured. Every follower is treated as holding one
// freshly minted receipt and transfers always succeed, so an operator can
// exercise the admission path end to end against a single process.

type MemoryReceiptRegistry struct {
	mu        sync.RWMutex
	contracts map[string]domain.Address
}

func NewMemoryReceiptRegistry() *MemoryReceiptRegistry {
	return &MemoryReceiptRegistry{contracts: make(map[string]domain.Address)}
}

func (r *MemoryReceiptRegistry) ReceiptContract(_ context.Context, profileID string) (domain.Address, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if contract, ok := r.contracts[profileID]; ok {
		return contract, nil
	}
	contract := syntheticAddress("receipts", profileID)
	r.contracts[profileID] = contract
	return contract, nil
}

func (r *MemoryReceiptRegistry) BalanceOf(context.Context, domain.Address, domain.Address) (uint64, error) {
	return 1, nil
}

func (r *MemoryReceiptRegistry) OwnerOf(_ context.Context, _ domain.Address, receiptID uint64) (domain.Address, error) {
	if receiptID == 0 {
		return "", fmt.Errorf("%w: receipt 0", domain.ErrNotFound)
	}
	return syntheticAddress("owner", fmt.Sprintf("%d", receiptID)), nil
}

type MemoryStreamLedger struct {
	mu    sync.RWMutex
	flows map[string]domain.FlowState
}

func NewMemoryStreamLedger() *MemoryStreamLedger {
	return &MemoryStreamLedger{flows: make(map[string]domain.FlowState)}
}

// SetFlow records a snapshot so local runs can simulate stream mutations.
func (l *MemoryStreamLedger) SetFlow(currency, sender, receiver domain.Address, state domain.FlowState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flows[flowKey(currency, sender, receiver)] = state
}

func (l *MemoryStreamLedger) FlowState(_ context.Context, currency, sender, receiver domain.Address) (domain.FlowState, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.flows[flowKey(currency, sender, receiver)], nil
}

type MemoryModuleRegistry struct {
	Treasury domain.TreasuryInfo
}

func NewMemoryModuleRegistry(treasury domain.Address, feeBps int64) *MemoryModuleRegistry {
	return &MemoryModuleRegistry{Treasury: domain.TreasuryInfo{Address: treasury, FeeBps: feeBps}}
}

func (r *MemoryModuleRegistry) IsCurrencyAllowed(context.Context, domain.Address) (bool, error) {
	return true, nil
}

func (r *MemoryModuleRegistry) TreasuryInfo(context.Context) (domain.TreasuryInfo, error) {
	return r.Treasury, nil
}

type MemoryTokenTransfer struct{}

func NewMemoryTokenTransfer() *MemoryTokenTransfer {
	return &MemoryTokenTransfer{}
}

func (t *MemoryTokenTransfer) Transfer(_ context.Context, _, _, _ domain.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return fmt.Errorf("%w: invalid amount", domain.ErrTransferFailed)
	}
	return nil
}

func flowKey(currency, sender, receiver domain.Address) string {
	return string(currency) + "|" + string(sender) + "|" + string(receiver)
}

func syntheticAddress(kind, seed string) domain.Address {
	sum := uint64(14695981039346656037)
	for _, b := range []byte(kind + ":" + seed) {
		sum ^= uint64(b)
		sum *= 1099511628211
	}
	return domain.Address(fmt.Sprintf("0x%040x", sum))
}
