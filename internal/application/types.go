package application

import "time"

type Config struct {
	ServiceName    string
	ConfigCacheTTL time.Duration
}

// ProfileConfigResponse is the JSON view of a stored profile config.
// A never-configured profile returns the zero-valued response, not an
// error.
type ProfileConfigResponse struct {
	ProfileID    string `json:"profile_id"`
	Recipient    string `json:"recipient"`
	Currency     string `json:"currency"`
	Amount       string `json:"amount"`
	FlowRate     string `json:"flow_rate"`
	Configured   bool   `json:"configured"`
	ConfiguredAt int64  `json:"configured_at,omitempty"`
}

// FollowResponse reports a successful admission.
type FollowResponse struct {
	ProfileID       string `json:"profile_id"`
	Follower        string `json:"follower"`
	Recipient       string `json:"recipient"`
	Currency        string `json:"currency"`
	Amount          string `json:"amount"`
	RecipientAmount string `json:"recipient_amount"`
	TreasuryAmount  string `json:"treasury_amount"`
	FlowRate        string `json:"flow_rate"`
	FollowedAt      int64  `json:"followed_at"`
}

// ValidationResponse reports the current legitimacy of a follow.
type ValidationResponse struct {
	ProfileID  string `json:"profile_id"`
	Follower   string `json:"follower"`
	Valid      bool   `json:"valid"`
	FollowedAt int64  `json:"followed_at,omitempty"`
}
