package domain

import (
	"fmt"
	"math/big"
	"time"
)

// ProfileConfig stores the follow terms of one profile: who receives the
// one-time fee, in which currency, and the stream rate every follower must
// keep open toward the recipient. A profile has at most one config; a new
// Initialize call fully replaces the previous one.
type ProfileConfig struct {
	ProfileID    string
	Recipient    Address
	Currency     Address
	Amount       *big.Int
	FlowRate     *big.Int
	ConfiguredAt time.Time
	UpdatedAt    time.Time
}

// IsZero reports whether the config was never set for the profile.
func (c ProfileConfig) IsZero() bool {
	return c.Recipient.IsZero() && c.Currency.IsZero() && c.Amount == nil && c.FlowRate == nil
}

// Validate enforces the configure-time invariants. The currency allow-list
// check is external and happens in the application layer.
func (c ProfileConfig) Validate() error {
	if c.Recipient.IsZero() {
		return fmt.Errorf("%w: recipient must be non-zero", ErrInvalidConfiguration)
	}
	if c.Currency.IsZero() {
		return fmt.Errorf("%w: currency must be non-zero", ErrInvalidConfiguration)
	}
	if c.Amount == nil || c.Amount.Sign() < 0 {
		return fmt.Errorf("%w: amount must be a non-negative integer", ErrInvalidConfiguration)
	}
	if c.FlowRate == nil || c.FlowRate.Sign() <= 0 {
		return fmt.Errorf("%w: flow rate must be positive", ErrInvalidConfiguration)
	}
	return nil
}

// FollowRecord binds one follower to the unix-second timestamp at which
// admission last succeeded. FollowedAt zero means never followed.
type FollowRecord struct {
	ProfileID  string
	Follower   Address
	FollowedAt int64
	UpdatedAt  time.Time
}

// FlowState is the live snapshot the stream ledger exposes for one
// (currency, sender, receiver) flow: when it was last mutated and its
// current rate. A missing flow reports a zero state.
type FlowState struct {
	LastUpdatedAt int64
	Rate          *big.Int
}

// RateEquals compares the snapshot rate against a required rate exactly.
func (s FlowState) RateEquals(required *big.Int) bool {
	if required == nil {
		return false
	}
	if s.Rate == nil {
		return required.Sign() == 0
	}
	return s.Rate.Cmp(required) == 0
}

// UnchangedSince reports whether the flow has not been mutated after the
// given checkpoint. Equal timestamps count as unchanged: the ledger only
// records second granularity and a same-second mutation is still the state
// the checkpoint observed.
func (s FlowState) UnchangedSince(checkpoint int64) bool {
	return s.LastUpdatedAt <= checkpoint
}

// TreasuryInfo is the protocol treasury destination and its basis-point
// share of every one-time follow fee.
type TreasuryInfo struct {
	Address Address
	FeeBps  int64
}
