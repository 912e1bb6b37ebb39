package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// ProcessFollow runs the admission gates in order; the first failure
// aborts the whole operation and nothing is recorded. The registry must
// have minted the follower's receipt immediately before calling, so the
// follower's balance is exactly one for a first-time follow.
func (s *Service) ProcessFollow(ctx context.Context, follower domain.Address, profileID string, assertion []byte) (FollowResponse, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" || follower.IsZero() {
		return FollowResponse{}, fmt.Errorf("%w: profile id and follower are required", domain.ErrInvalidInput)
	}

	cfg, err := s.loadConfig(ctx, profileID)
	if err != nil {
		return FollowResponse{}, err
	}

	// Gate 1: the profile must have a receipt token class.
	receiptContract, err := s.receipts.ReceiptContract(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return FollowResponse{}, fmt.Errorf("%w: profile %s has no receipt contract", domain.ErrFollowInvalid, profileID)
		}
		return FollowResponse{}, fmt.Errorf("%w: receipt contract lookup: %v", domain.ErrDependencyUnavailable, err)
	}

	// Gate 2: exactly one receipt. More than one means a prior follow
	// already exists; zero means the registry broke its pre-mint contract.
	balance, err := s.receipts.BalanceOf(ctx, receiptContract, follower)
	if err != nil {
		return FollowResponse{}, fmt.Errorf("%w: receipt balance lookup: %v", domain.ErrDependencyUnavailable, err)
	}
	if balance != 1 {
		return FollowResponse{}, fmt.Errorf("%w: follower holds %d receipts, want exactly 1", domain.ErrFollowInvalid, balance)
	}

	// Gate 3: the supplied terms must match the stored config, before any
	// value moves. Defends against following under stale terms.
	assertedCurrency, assertedAmount, err := domain.DecodeFollowAssertion(assertion)
	if err != nil {
		return FollowResponse{}, err
	}
	if assertedCurrency != cfg.Currency || assertedAmount.Cmp(cfg.Amount) != 0 {
		return FollowResponse{}, fmt.Errorf("%w: asserted terms (%s, %s) do not match configured (%s, %s)",
			domain.ErrDataMismatch, assertedCurrency, assertedAmount, cfg.Currency, cfg.Amount)
	}

	// Gate 4: fee split.
	treasury, err := s.registry.TreasuryInfo(ctx)
	if err != nil {
		return FollowResponse{}, fmt.Errorf("%w: treasury lookup: %v", domain.ErrDependencyUnavailable, err)
	}
	split, err := domain.SplitFee(cfg.Amount, treasury.FeeBps)
	if err != nil {
		return FollowResponse{}, err
	}

	// Gate 5: collect the fee, recipient first, then treasury. The host
	// aborts its enclosing transaction on any failed response, so a
	// partial transfer never commits.
	if split.RecipientAmount.Sign() > 0 {
		if err := s.transfers.Transfer(ctx, cfg.Currency, follower, cfg.Recipient, split.RecipientAmount); err != nil {
			return FollowResponse{}, transferFailure(err)
		}
	}
	if split.TreasuryAmount.Sign() > 0 {
		if err := s.transfers.Transfer(ctx, cfg.Currency, follower, treasury.Address, split.TreasuryAmount); err != nil {
			return FollowResponse{}, transferFailure(err)
		}
	}

	// Gate 6: the follower must already stream the configured rate to the
	// recipient. Only the rate is checked here; there is no prior
	// checkpoint to compare timestamps against.
	flow, err := s.streams.FlowState(ctx, cfg.Currency, follower, cfg.Recipient)
	if err != nil {
		return FollowResponse{}, fmt.Errorf("%w: stream ledger lookup: %v", domain.ErrDependencyUnavailable, err)
	}
	if !flow.RateEquals(cfg.FlowRate) {
		return FollowResponse{}, fmt.Errorf("%w: stream rate %s does not match required %s",
			domain.ErrStreamInvalid, rateString(flow), cfg.FlowRate)
	}

	// Gate 7: record the checkpoint, overwriting any prior follow.
	now := s.nowFn()
	rec := domain.FollowRecord{
		ProfileID:  profileID,
		Follower:   follower,
		FollowedAt: now.Unix(),
		UpdatedAt:  now,
	}
	if err := s.follows.Put(ctx, rec); err != nil {
		return FollowResponse{}, err
	}

	resp := FollowResponse{
		ProfileID:       profileID,
		Follower:        follower.String(),
		Recipient:       cfg.Recipient.String(),
		Currency:        cfg.Currency.String(),
		Amount:          cfg.Amount.String(),
		RecipientAmount: split.RecipientAmount.String(),
		TreasuryAmount:  split.TreasuryAmount.String(),
		FlowRate:        cfg.FlowRate.String(),
		FollowedAt:      rec.FollowedAt,
	}
	if s.outbox != nil {
		if err := s.enqueueFollowRecorded(ctx, resp); err != nil {
			return FollowResponse{}, err
		}
	}
	return resp, nil
}

// ValidateFollow re-derives the current stream state and applies the
// temporal consistency rule: the follow stays valid only while the stream
// carries the configured rate and has not been mutated after the recorded
// follow checkpoint. Equal timestamps still count as valid.
func (s *Service) ValidateFollow(ctx context.Context, profileID string, follower domain.Address, receiptID uint64) (ValidationResponse, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" || follower.IsZero() {
		return ValidationResponse{}, fmt.Errorf("%w: profile id and follower are required", domain.ErrInvalidInput)
	}

	cfg, err := s.loadConfig(ctx, profileID)
	if err != nil {
		return ValidationResponse{}, err
	}

	receiptContract, err := s.receipts.ReceiptContract(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ValidationResponse{}, fmt.Errorf("%w: profile %s has no receipt contract", domain.ErrFollowInvalid, profileID)
		}
		return ValidationResponse{}, fmt.Errorf("%w: receipt contract lookup: %v", domain.ErrDependencyUnavailable, err)
	}

	if receiptID == 0 {
		balance, err := s.receipts.BalanceOf(ctx, receiptContract, follower)
		if err != nil {
			return ValidationResponse{}, fmt.Errorf("%w: receipt balance lookup: %v", domain.ErrDependencyUnavailable, err)
		}
		if balance == 0 {
			return ValidationResponse{}, fmt.Errorf("%w: follower holds no receipt for profile %s", domain.ErrFollowInvalid, profileID)
		}
	} else {
		owner, err := s.receipts.OwnerOf(ctx, receiptContract, receiptID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return ValidationResponse{}, fmt.Errorf("%w: receipt %d does not exist", domain.ErrFollowInvalid, receiptID)
			}
			return ValidationResponse{}, fmt.Errorf("%w: receipt owner lookup: %v", domain.ErrDependencyUnavailable, err)
		}
		if owner != follower {
			return ValidationResponse{}, fmt.Errorf("%w: receipt %d is not owned by follower", domain.ErrFollowInvalid, receiptID)
		}
	}

	flow, err := s.streams.FlowState(ctx, cfg.Currency, follower, cfg.Recipient)
	if err != nil {
		return ValidationResponse{}, fmt.Errorf("%w: stream ledger lookup: %v", domain.ErrDependencyUnavailable, err)
	}
	if !flow.RateEquals(cfg.FlowRate) {
		return ValidationResponse{}, fmt.Errorf("%w: stream rate %s does not match required %s",
			domain.ErrStreamInvalid, rateString(flow), cfg.FlowRate)
	}

	var followedAt int64
	rec, err := s.follows.Get(ctx, profileID, follower)
	switch {
	case err == nil:
		followedAt = rec.FollowedAt
	case errors.Is(err, domain.ErrNotFound):
		// No checkpoint recorded; the temporal rule is vacuously satisfied.
	default:
		return ValidationResponse{}, err
	}
	if followedAt != 0 && !flow.UnchangedSince(followedAt) {
		return ValidationResponse{}, fmt.Errorf("%w: stream mutated at %d, after follow checkpoint %d",
			domain.ErrStreamInvalid, flow.LastUpdatedAt, followedAt)
	}

	return ValidationResponse{
		ProfileID:  profileID,
		Follower:   follower.String(),
		Valid:      true,
		FollowedAt: followedAt,
	}, nil
}

// TransferHook acknowledges a receipt transfer without bookkeeping. The
// follow checkpoint stays bound to the original follower's address, so a
// transferred receipt fails validation for its new holder until that
// holder is admitted on their own stream.
func (s *Service) TransferHook(ctx context.Context, profileID string, from, to domain.Address, receiptID uint64) error {
	_ = ctx
	_ = profileID
	_ = from
	_ = to
	_ = receiptID
	return nil
}

func transferFailure(err error) error {
	if errors.Is(err, domain.ErrInsufficientBalance) || errors.Is(err, domain.ErrInsufficientAllowance) {
		return fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}
	return fmt.Errorf("%w: value transfer: %v", domain.ErrTransferFailed, err)
}

func rateString(flow domain.FlowState) string {
	if flow.Rate == nil {
		return "0"
	}
	return flow.Rate.String()
}
