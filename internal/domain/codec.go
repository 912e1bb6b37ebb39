package domain

import (
	"encoding/json"
	"fmt"
	"math/big"
)

// configBlob is the wire form of a profile follow-module configuration.
// Amounts travel as decimal strings: 18-decimal token units do not fit in
// a JSON number.
type configBlob struct {
	Recipient string `json:"recipient"`
	Currency  string `json:"currency"`
	Amount    string `json:"amount"`
	FlowRate  string `json:"flow_rate"`
}

// followAssertion is the wire form of the terms a follower asserts at
// follow time. It must match the stored config or admission is refused.
type followAssertion struct {
	Currency string `json:"currency"`
	Amount   string `json:"amount"`
}

// DecodeConfigBlob decodes the registry-supplied initialization payload
// into a ProfileConfig. Field-level validation is left to Validate.
func DecodeConfigBlob(profileID string, raw []byte) (ProfileConfig, error) {
	var blob configBlob
	if err := json.Unmarshal(raw, &blob); err != nil {
		return ProfileConfig{}, fmt.Errorf("%w: malformed config payload", ErrInvalidConfiguration)
	}
	recipient, err := ParseAddress(blob.Recipient)
	if err != nil {
		return ProfileConfig{}, fmt.Errorf("%w: recipient is not a valid address", ErrInvalidConfiguration)
	}
	currency, err := ParseAddress(blob.Currency)
	if err != nil {
		return ProfileConfig{}, fmt.Errorf("%w: currency is not a valid address", ErrInvalidConfiguration)
	}
	amount, err := parseAmount(blob.Amount)
	if err != nil {
		return ProfileConfig{}, fmt.Errorf("%w: amount is not a valid integer", ErrInvalidConfiguration)
	}
	flowRate, err := parseAmount(blob.FlowRate)
	if err != nil {
		return ProfileConfig{}, fmt.Errorf("%w: flow rate is not a valid integer", ErrInvalidConfiguration)
	}
	return ProfileConfig{
		ProfileID: profileID,
		Recipient: recipient,
		Currency:  currency,
		Amount:    amount,
		FlowRate:  flowRate,
	}, nil
}

// EncodeConfigBlob re-encodes a stored config into the wire form. The
// registry uses the echo as a receipt of what was persisted.
func EncodeConfigBlob(cfg ProfileConfig) ([]byte, error) {
	if cfg.Amount == nil || cfg.FlowRate == nil {
		return nil, fmt.Errorf("%w: config amount and flow rate must be set", ErrInvalidConfiguration)
	}
	return json.Marshal(configBlob{
		Recipient: cfg.Recipient.String(),
		Currency:  cfg.Currency.String(),
		Amount:    cfg.Amount.String(),
		FlowRate:  cfg.FlowRate.String(),
	})
}

// DecodeFollowAssertion decodes the (currency, amount) terms supplied with
// a follow request.
func DecodeFollowAssertion(raw []byte) (Address, *big.Int, error) {
	var assertion followAssertion
	if err := json.Unmarshal(raw, &assertion); err != nil {
		return "", nil, fmt.Errorf("%w: malformed follow assertion", ErrDataMismatch)
	}
	currency, err := ParseAddress(assertion.Currency)
	if err != nil {
		return "", nil, fmt.Errorf("%w: assertion currency is not a valid address", ErrDataMismatch)
	}
	amount, err := parseAmount(assertion.Amount)
	if err != nil {
		return "", nil, fmt.Errorf("%w: assertion amount is not a valid integer", ErrDataMismatch)
	}
	return currency, amount, nil
}

func parseAmount(v string) (*big.Int, error) {
	if v == "" {
		return nil, fmt.Errorf("empty amount")
	}
	n, ok := new(big.Int).SetString(v, 10)
	if !ok {
		return nil, fmt.Errorf("parse amount %q", v)
	}
	return n, nil
}
