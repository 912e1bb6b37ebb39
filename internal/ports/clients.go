package ports

import (
	"context"
	"math/big"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// ReceiptRegistry is the social-graph registry's view of follow receipts.
// Ordering contract: the registry mints the follower's receipt immediately
// before invoking process-follow, so at admission time a first-time
// follower holds exactly one receipt. The admission gate checks for
// exactly one, not "previously zero"; callers that invert the mint order
// break the semantics.
type ReceiptRegistry interface {
	// ReceiptContract returns domain.ErrNotFound when the profile has no
	// receipt token class.
	ReceiptContract(ctx context.Context, profileID string) (domain.Address, error)
	BalanceOf(ctx context.Context, receiptContract, holder domain.Address) (uint64, error)
	// OwnerOf returns domain.ErrNotFound for an unminted receipt id.
	OwnerOf(ctx context.Context, receiptContract domain.Address, receiptID uint64) (domain.Address, error)
}

// StreamLedger exposes the live flow snapshot for one ordered
// (currency, sender, receiver) triple. The ledger keeps no history; the
// snapshot is the only tamper evidence available.
type StreamLedger interface {
	FlowState(ctx context.Context, currency, sender, receiver domain.Address) (domain.FlowState, error)
}

// ModuleRegistry is the currency allow-list and treasury configuration
// registry.
type ModuleRegistry interface {
	IsCurrencyAllowed(ctx context.Context, currency domain.Address) (bool, error)
	TreasuryInfo(ctx context.Context) (domain.TreasuryInfo, error)
}

// TokenTransfer is the host's value-transfer primitive. Implementations
// return domain.ErrInsufficientBalance or domain.ErrInsufficientAllowance
// when the payer cannot cover the amount; the host treats any failed
// process-follow response as an instruction to abort its enclosing
// transaction, which keeps admission all-or-nothing.
type TokenTransfer interface {
	Transfer(ctx context.Context, currency, from, to domain.Address, amount *big.Int) error
}
