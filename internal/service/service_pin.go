// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kioskops

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/models"
)

const msgPinNotNumeric = "PIN must contain only numbers"

var msgPinWrongLength = fmt.Sprintf("PIN must be exactly %d digits", models.PinLength)

type pinService struct {
	state  *fleetState
	pins   store.PinRepository
	expiry ExpiryPolicy
	now    func() time.Time
	logger *logger.Logger
}

// NewPinRegistry constructs the PIN registry over the shared fleet snapshot
// with write-through to pins. Grant expiry is delegated to expiry.
func NewPinRegistry(state *fleetState, pins store.PinRepository, expiry ExpiryPolicy, log *logger.Logger) PinRegistry {
	return &pinService{
		state:  state,
		pins:   pins,
		expiry: expiry,
		now:    time.Now,
		logger: log,
	}
}

func (s *pinService) SetGlobalPin(ctx context.Context, pin string) error {
	return s.setPin(ctx, models.PinAssignment{Scope: models.PinScopeGlobal, Pin: pin})
}

func (s *pinService) SetKioskPin(ctx context.Context, kioskID, pin string) error {
	if !s.state.hasKiosk(kioskID) {
		return fmt.Errorf("%w: %q", ErrUnknownKiosk, kioskID)
	}

	return s.setPin(ctx, models.PinAssignment{Scope: models.PinScopeKiosk, KioskID: kioskID, Pin: pin})
}

func (s *pinService) ValidatePin(_ context.Context, pin string, editing models.PinAssignment) models.PinValidation {
	if msg := pinFormatMessage(pin); msg != "" {
		return models.PinValidation{Message: msg}
	}

	if conflict, ok := s.findConflict(pin, editing); ok {
		return models.PinValidation{Message: conflictMessage(conflict)}
	}

	return models.PinValidation{IsValid: true}
}

func (s *pinService) TestPin(_ context.Context, pin string, kioskID string) (models.PinGrant, error) {
	if pin == "" || pinFormatMessage(pin) != "" {
		return models.PinGrant{}, ErrPinNotRecognized
	}

	s.state.mu.RLock()
	if kioskID != "" {
		if _, ok := s.state.kiosks[kioskID]; !ok {
			s.state.mu.RUnlock()
			return models.PinGrant{}, fmt.Errorf("%w: %q", ErrUnknownKiosk, kioskID)
		}
	}
	global := s.state.pins[pinKey(models.PinScopeGlobal, "")]
	kiosk := s.state.pins[pinKey(models.PinScopeKiosk, kioskID)]
	s.state.mu.RUnlock()

	now := s.now()

	// The global PIN wins everywhere, including on a kiosk that has its
	// own assignment.
	if global.Pin != "" && global.Pin == pin {
		return models.PinGrant{
			Scope:       models.PinScopeGlobal,
			Permissions: append([]models.Permission(nil), models.GlobalPermissions...),
			ExpiresAt:   s.expiry.ExpiresAt(now, models.PinScopeGlobal),
		}, nil
	}

	if kioskID != "" && kiosk.Pin != "" && kiosk.Pin == pin {
		return models.PinGrant{
			Scope:       models.PinScopeKiosk,
			KioskID:     kioskID,
			Permissions: append([]models.Permission(nil), models.KioskPermissions...),
			ExpiresAt:   s.expiry.ExpiresAt(now, models.PinScopeKiosk),
		}, nil
	}

	return models.PinGrant{}, ErrPinNotRecognized
}

func (s *pinService) setPin(ctx context.Context, assignment models.PinAssignment) error {
	if msg := pinFormatMessage(assignment.Pin); msg != "" {
		return &ValidationError{Message: msg}
	}

	// All PIN mutations share one queue: uniqueness spans scopes, so
	// per-kiosk serialization is not enough here.
	s.state.pinMu.Lock()
	defer s.state.pinMu.Unlock()

	if conflict, ok := s.findConflict(assignment.Pin, assignment); ok {
		return &ConflictError{ConflictingScope: conflict.Scope, KioskID: conflict.KioskID}
	}

	key := pinKey(assignment.Scope, assignment.KioskID)

	if assignment.Pin == "" {
		if err := s.pins.DeletePinAssignment(ctx, assignment.Scope, assignment.KioskID); err != nil {
			return err
		}

		s.state.mu.Lock()
		delete(s.state.pins, key)
		s.state.mu.Unlock()
	} else {
		if err := s.pins.PutPinAssignment(ctx, assignment); err != nil {
			return err
		}

		s.state.mu.Lock()
		s.state.pins[key] = assignment
		s.state.mu.Unlock()
	}

	s.logger.Info().
		Str("scope", string(assignment.Scope)).
		Str("kiosk_id", assignment.KioskID).
		Bool("cleared", assignment.Pin == "").
		Msg("pin assignment updated")

	return nil
}

// findConflict scans the live assignments for another slot already holding
// pin. The editing slot itself never conflicts with its own current value.
func (s *pinService) findConflict(pin string, editing models.PinAssignment) (models.PinAssignment, bool) {
	if pin == "" {
		return models.PinAssignment{}, false
	}

	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	for _, assignment := range s.state.pins {
		if assignment.Pin != pin {
			continue
		}
		if assignment.Scope == editing.Scope && assignment.KioskID == editing.KioskID {
			continue
		}
		return assignment, true
	}

	return models.PinAssignment{}, false
}

// pinFormatMessage returns a non-empty message when pin violates the format
// rules. The empty PIN is valid: it clears an assignment.
func pinFormatMessage(pin string) string {
	if pin == "" {
		return ""
	}
	for _, r := range pin {
		if r < '0' || r > '9' {
			return msgPinNotNumeric
		}
	}
	if len(pin) != models.PinLength {
		return msgPinWrongLength
	}
	return ""
}

func conflictMessage(conflict models.PinAssignment) string {
	if conflict.Scope == models.PinScopeGlobal {
		return "PIN is already used by the global admin"
	}
	return fmt.Sprintf("PIN is already used by kiosk %q", conflict.KioskID)
}
