package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/The-Wary-One/lens-protocol/internal/domain"
)

// Initialize decodes the registry-supplied configuration blob, validates
// it, fully replaces any prior config for the profile, and echoes the
// persisted fields back as a receipt. Re-invocation replaces, never
// merges.
func (s *Service) Initialize(ctx context.Context, profileID string, blob []byte) ([]byte, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return nil, fmt.Errorf("%w: profile id is required", domain.ErrInvalidInput)
	}

	cfg, err := domain.DecodeConfigBlob(profileID, blob)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	allowed, err := s.registry.IsCurrencyAllowed(ctx, cfg.Currency)
	if err != nil {
		return nil, fmt.Errorf("%w: currency allow-list lookup: %v", domain.ErrDependencyUnavailable, err)
	}
	if !allowed {
		return nil, fmt.Errorf("%w: currency %s is not allow-listed", domain.ErrInvalidConfiguration, cfg.Currency)
	}

	now := s.nowFn()
	cfg.ConfiguredAt = now
	cfg.UpdatedAt = now
	if err := s.configs.Put(ctx, cfg); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, cacheKeyConfig(profileID))
	}
	if s.outbox != nil {
		if err := s.enqueueProfileInitialized(ctx, cfg); err != nil {
			return nil, err
		}
	}
	return domain.EncodeConfigBlob(cfg)
}

// GetProfileConfig is a pure read. A never-configured profile yields the
// zero-valued response.
func (s *Service) GetProfileConfig(ctx context.Context, profileID string) (ProfileConfigResponse, error) {
	profileID = strings.TrimSpace(profileID)
	if profileID == "" {
		return ProfileConfigResponse{}, fmt.Errorf("%w: profile id is required", domain.ErrInvalidInput)
	}

	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKeyConfig(profileID)); err == nil && raw != "" {
			var cached ProfileConfigResponse
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return cached, nil
			}
		}
	}

	cfg, err := s.configs.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ProfileConfigResponse{ProfileID: profileID}, nil
		}
		return ProfileConfigResponse{}, err
	}
	resp := toProfileConfigResponse(cfg)
	if s.cache != nil {
		if raw, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.cache.Set(ctx, cacheKeyConfig(profileID), string(raw), s.cfg.ConfigCacheTTL)
		}
	}
	return resp, nil
}

func (s *Service) loadConfig(ctx context.Context, profileID string) (domain.ProfileConfig, error) {
	cfg, err := s.configs.Get(ctx, profileID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ProfileConfig{}, fmt.Errorf("%w: profile %s has no follow-module configuration", domain.ErrInvalidConfiguration, profileID)
		}
		return domain.ProfileConfig{}, err
	}
	return cfg, nil
}

func toProfileConfigResponse(cfg domain.ProfileConfig) ProfileConfigResponse {
	return ProfileConfigResponse{
		ProfileID:    cfg.ProfileID,
		Recipient:    cfg.Recipient.String(),
		Currency:     cfg.Currency.String(),
		Amount:       cfg.Amount.String(),
		FlowRate:     cfg.FlowRate.String(),
		Configured:   true,
		ConfiguredAt: cfg.ConfiguredAt.Unix(),
	}
}

func cacheKeyConfig(profileID string) string {
	return "follow:config:" + profileID
}
