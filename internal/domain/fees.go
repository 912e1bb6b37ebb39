package domain

import (
	"fmt"
	"math/big"
)

const feeDenominator = 10000

// FeeSplit is the division of a one-time follow fee between the profile
// recipient and the protocol treasury.
type FeeSplit struct {
	RecipientAmount *big.Int
	TreasuryAmount  *big.Int
}

// SplitFee divides amount by treasury basis points using floor division:
// treasury = floor(amount * feeBps / 10000), recipient = amount - treasury.
// The treasury absorbs the truncation loss, never the recipient, and the
// two parts always sum back to amount.
func SplitFee(amount *big.Int, feeBps int64) (FeeSplit, error) {
	if amount == nil || amount.Sign() < 0 {
		return FeeSplit{}, fmt.Errorf("%w: fee amount must be non-negative", ErrInvalidInput)
	}
	if feeBps < 0 || feeBps > feeDenominator {
		return FeeSplit{}, fmt.Errorf("%w: treasury fee must be between 0 and %d bps", ErrInvalidInput, feeDenominator)
	}
	treasury := new(big.Int).Mul(amount, big.NewInt(feeBps))
	treasury.Quo(treasury, big.NewInt(feeDenominator))
	recipient := new(big.Int).Sub(amount, treasury)
	return FeeSplit{RecipientAmount: recipient, TreasuryAmount: treasury}, nil
}
