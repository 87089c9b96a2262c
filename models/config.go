// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kioskops

// Package models defines the shared domain types of the kiosk fleet
// configuration service: configuration domains, the global/override/effective
// configuration triple, weekly schedules, and admin PIN assignments.
//
// The package is intentionally free of behavior that touches I/O; every type
// here is a plain value that can be marshaled to JSON and compared in tests.
package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Domain identifies one of the four independently overridable configuration
// areas of a kiosk.
type Domain string

const (
	DomainStatus      Domain = "status"
	DomainSchedule    Domain = "schedule"
	DomainOfficeHours Domain = "officeHours"
	DomainBranding    Domain = "branding"
)

// Domains lists every recognized configuration domain in canonical order.
var Domains = []Domain{DomainStatus, DomainSchedule, DomainOfficeHours, DomainBranding}

// Valid reports whether d is one of the four recognized domains.
func (d Domain) Valid() bool {
	switch d {
	case DomainStatus, DomainSchedule, DomainOfficeHours, DomainBranding:
		return true
	default:
		return false
	}
}

// StatusConfig is the payload of the "status" domain: the display state a
// kiosk shows while its schedule says it is open, plus an optional free-text
// message rendered alongside it.
type StatusConfig struct {
	State   DisplayState `json:"state"`
	Message string       `json:"message,omitempty"`
}

// OfficeHoursConfig is the payload of the "officeHours" domain: a second,
// display-only weekly schedule (staffed hours) with an optional note.
type OfficeHoursConfig struct {
	Schedule WeeklySchedule `json:"schedule"`
	Note     string         `json:"note,omitempty"`
}

// BrandingConfig is the payload of the "branding" domain.
type BrandingConfig struct {
	ProductName    string `json:"productName"`
	LogoURL        string `json:"logoUrl,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	SupportURL     string `json:"supportUrl,omitempty"`
}

// GlobalConfig holds the fleet-wide default value for every domain.
// All four domains are always present.
type GlobalConfig struct {
	Status      StatusConfig      `json:"status"`
	Schedule    WeeklySchedule    `json:"schedule"`
	OfficeHours OfficeHoursConfig `json:"officeHours"`
	Branding    BrandingConfig    `json:"branding"`
}

// KioskOverride holds the per-kiosk configuration fragments. Each domain is
// present (non-nil) or absent (nil) independently; there is no partial-domain
// merging.
type KioskOverride struct {
	Status      *StatusConfig      `json:"status,omitempty"`
	Schedule    *WeeklySchedule    `json:"schedule,omitempty"`
	OfficeHours *OfficeHoursConfig `json:"officeHours,omitempty"`
	Branding    *BrandingConfig    `json:"branding,omitempty"`
}

// Count returns the number of domains this override carries.
func (o KioskOverride) Count() int {
	count := 0
	if o.Status != nil {
		count++
	}
	if o.Schedule != nil {
		count++
	}
	if o.OfficeHours != nil {
		count++
	}
	if o.Branding != nil {
		count++
	}
	return count
}

// Has reports whether the override carries a fragment for domain d.
func (o KioskOverride) Has(d Domain) bool {
	switch d {
	case DomainStatus:
		return o.Status != nil
	case DomainSchedule:
		return o.Schedule != nil
	case DomainOfficeHours:
		return o.OfficeHours != nil
	case DomainBranding:
		return o.Branding != nil
	default:
		return false
	}
}

// Set stores a decoded domain payload into the corresponding fragment slot.
// The value must be of the type produced by [UnmarshalDomainPayload] for the
// same domain.
func (o *KioskOverride) Set(d Domain, value any) error {
	switch d {
	case DomainStatus:
		v, ok := value.(StatusConfig)
		if !ok {
			return fmt.Errorf("domain %q: unexpected payload type %T", d, value)
		}
		o.Status = &v
	case DomainSchedule:
		v, ok := value.(WeeklySchedule)
		if !ok {
			return fmt.Errorf("domain %q: unexpected payload type %T", d, value)
		}
		o.Schedule = &v
	case DomainOfficeHours:
		v, ok := value.(OfficeHoursConfig)
		if !ok {
			return fmt.Errorf("domain %q: unexpected payload type %T", d, value)
		}
		o.OfficeHours = &v
	case DomainBranding:
		v, ok := value.(BrandingConfig)
		if !ok {
			return fmt.Errorf("domain %q: unexpected payload type %T", d, value)
		}
		o.Branding = &v
	default:
		return fmt.Errorf("unknown domain %q", d)
	}
	return nil
}

// Clear removes the fragment for domain d. Clearing an absent fragment is a
// no-op.
func (o *KioskOverride) Clear(d Domain) {
	switch d {
	case DomainStatus:
		o.Status = nil
	case DomainSchedule:
		o.Schedule = nil
	case DomainOfficeHours:
		o.OfficeHours = nil
	case DomainBranding:
		o.Branding = nil
	}
}

// Scope tells whether a kiosk is governed entirely by global defaults or has
// at least one domain overridden. It is always derived from the override
// count and never stored on its own.
type Scope string

const (
	ScopeGlobal     Scope = "global"
	ScopeIndividual Scope = "individual"
)

// ScopeFor derives the kiosk scope from its override count.
func ScopeFor(overrideCount int) Scope {
	if overrideCount == 0 {
		return ScopeGlobal
	}
	return ScopeIndividual
}

// OverrideState is the summary returned to administrators after an override
// mutation.
type OverrideState struct {
	Scope         Scope `json:"scope"`
	OverrideCount int   `json:"overrideCount"`
}

// EffectiveConfig is the per-kiosk merged view: for every domain the override
// fragment when present, else the global default.
type EffectiveConfig struct {
	GlobalConfig

	Scope         Scope `json:"scope"`
	OverrideCount int   `json:"overrideCount"`
}

// MergeEffective computes the effective configuration of a kiosk from the
// global defaults and its override set. This is the single merge rule of the
// whole system: a domain falls back to the global value exactly when its
// override fragment is nil. The function is pure.
func MergeEffective(global GlobalConfig, override KioskOverride) EffectiveConfig {
	effective := EffectiveConfig{
		GlobalConfig:  global,
		Scope:         ScopeFor(override.Count()),
		OverrideCount: override.Count(),
	}

	if override.Status != nil {
		effective.Status = *override.Status
	}
	if override.Schedule != nil {
		effective.Schedule = *override.Schedule
	}
	if override.OfficeHours != nil {
		effective.OfficeHours = *override.OfficeHours
	}
	if override.Branding != nil {
		effective.Branding = *override.Branding
	}

	return effective
}

// UnmarshalDomainPayload decodes raw JSON into the typed payload of the given
// domain. Unknown JSON fields are rejected so that a typo in an override
// payload fails loudly instead of silently dropping data.
func UnmarshalDomainPayload(d Domain, data []byte) (any, error) {
	decode := func(dst any) error {
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(dst)
	}

	switch d {
	case DomainStatus:
		var v StatusConfig
		if err := decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case DomainSchedule:
		var v WeeklySchedule
		if err := decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case DomainOfficeHours:
		var v OfficeHoursConfig
		if err := decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	case DomainBranding:
		var v BrandingConfig
		if err := decode(&v); err != nil {
			return nil, err
		}
		return v, nil
	default:
		return nil, fmt.Errorf("unknown domain %q", d)
	}
}
