// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kioskops

package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/internal/validators"
	"github.com/kioskops/fleetconfig/models"
)

type overrideService struct {
	state     *fleetState
	configs   store.ConfigRepository
	validator validators.Validator
	logger    *logger.Logger
}

// NewOverrideResolver constructs the override service over the shared fleet
// snapshot with write-through to configs.
func NewOverrideResolver(state *fleetState, configs store.ConfigRepository, validator validators.Validator, log *logger.Logger) OverrideResolver {
	return &overrideService{
		state:     state,
		configs:   configs,
		validator: validator,
		logger:    log,
	}
}

func (s *overrideService) SetOverride(ctx context.Context, kioskID string, domain models.Domain, payload json.RawMessage) (models.OverrideState, error) {
	if !domain.Valid() {
		return models.OverrideState{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	if !s.state.hasKiosk(kioskID) {
		return models.OverrideState{}, fmt.Errorf("%w: %q", ErrUnknownKiosk, kioskID)
	}

	value, err := s.decodePayload(ctx, domain, payload)
	if err != nil {
		return models.OverrideState{}, err
	}

	// Re-encode the typed value so the store only ever holds the canonical
	// form, whatever whitespace or field order the caller sent.
	canonical, err := json.Marshal(value)
	if err != nil {
		return models.OverrideState{}, fmt.Errorf("encoding %q payload: %w", domain, err)
	}

	lock := s.state.mutationLock(kioskID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.configs.PutOverride(ctx, kioskID, domain, canonical); err != nil {
		return models.OverrideState{}, err
	}

	s.state.mu.Lock()
	override := s.state.overrides[kioskID]
	if err := override.Set(domain, value); err != nil {
		s.state.mu.Unlock()
		return models.OverrideState{}, err
	}
	s.state.overrides[kioskID] = override
	count := override.Count()
	s.state.mu.Unlock()

	s.logger.Info().
		Str("kiosk_id", kioskID).
		Str("domain", string(domain)).
		Int("override_count", count).
		Msg("override set")

	return models.OverrideState{Scope: models.ScopeFor(count), OverrideCount: count}, nil
}

func (s *overrideService) RemoveOverride(ctx context.Context, kioskID string, domain models.Domain) (models.OverrideState, error) {
	if !domain.Valid() {
		return models.OverrideState{}, fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}
	if !s.state.hasKiosk(kioskID) {
		return models.OverrideState{}, fmt.Errorf("%w: %q", ErrUnknownKiosk, kioskID)
	}

	lock := s.state.mutationLock(kioskID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.configs.DeleteOverride(ctx, kioskID, domain); err != nil {
		return models.OverrideState{}, err
	}

	s.state.mu.Lock()
	override := s.state.overrides[kioskID]
	override.Clear(domain)
	count := override.Count()
	if count == 0 {
		delete(s.state.overrides, kioskID)
	} else {
		s.state.overrides[kioskID] = override
	}
	s.state.mu.Unlock()

	s.logger.Info().
		Str("kiosk_id", kioskID).
		Str("domain", string(domain)).
		Int("override_count", count).
		Msg("override removed")

	return models.OverrideState{Scope: models.ScopeFor(count), OverrideCount: count}, nil
}

func (s *overrideService) ComputeEffective(_ context.Context, kioskID string) (models.EffectiveConfig, error) {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	if _, ok := s.state.kiosks[kioskID]; !ok {
		return models.EffectiveConfig{}, fmt.Errorf("%w: %q", ErrUnknownKiosk, kioskID)
	}

	return models.MergeEffective(s.state.global, s.state.overrides[kioskID]), nil
}

func (s *overrideService) SetGlobalDefault(ctx context.Context, domain models.Domain, payload json.RawMessage) error {
	if !domain.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownDomain, domain)
	}

	value, err := s.decodePayload(ctx, domain, payload)
	if err != nil {
		return err
	}

	canonical, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encoding %q payload: %w", domain, err)
	}

	lock := s.state.mutationLock("")
	lock.Lock()
	defer lock.Unlock()

	if err := s.configs.PutGlobalDomain(ctx, domain, canonical); err != nil {
		return err
	}

	s.state.mu.Lock()
	applyGlobalValue(&s.state.global, domain, value)
	s.state.mu.Unlock()

	s.logger.Info().
		Str("domain", string(domain)).
		Msg("global default set")

	return nil
}

// decodePayload turns raw JSON into the typed payload of domain and runs
// the full validation rule set over it. Any failure comes back as a
// ValidationError whose message an administrator can be shown verbatim.
func (s *overrideService) decodePayload(ctx context.Context, domain models.Domain, payload json.RawMessage) (any, error) {
	value, err := models.UnmarshalDomainPayload(domain, payload)
	if err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid %q payload", domain), Err: err}
	}

	if err := s.validator.Validate(ctx, value); err != nil {
		return nil, &ValidationError{Message: fmt.Sprintf("invalid %q payload", domain), Err: err}
	}

	return value, nil
}

func applyGlobalValue(cfg *models.GlobalConfig, domain models.Domain, value any) {
	switch domain {
	case models.DomainStatus:
		cfg.Status = value.(models.StatusConfig)
	case models.DomainSchedule:
		cfg.Schedule = value.(models.WeeklySchedule)
	case models.DomainOfficeHours:
		cfg.OfficeHours = value.(models.OfficeHoursConfig)
	case models.DomainBranding:
		cfg.Branding = value.(models.BrandingConfig)
	}
}
