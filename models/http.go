package models

import (
	"encoding/json"
	"time"
)

// Request and response bodies of the admin and kiosk HTTP surface. The core
// services know nothing about these types; handlers translate between them
// and the domain model.

// LoginRequest is the body of POST /api/admin/login: a PIN plus the optional
// kiosk the administrator is standing at.
type LoginRequest struct {
	Pin     string `json:"pin"`
	KioskID string `json:"kioskId,omitempty"`
}

// LoginResponse carries the signed session token and the grant it encodes.
type LoginResponse struct {
	Token string   `json:"token"`
	Grant PinGrant `json:"grant"`
}

// SetPinRequest is the body of the PIN assignment endpoints. An empty Pin
// clears the assignment.
type SetPinRequest struct {
	Pin string `json:"pin"`
}

// ValidatePinRequest is the body of POST /api/admin/pins/validate. Scope and
// KioskID describe the assignment being edited so that its own current value
// is not reported as a conflict.
type ValidatePinRequest struct {
	Pin     string   `json:"pin"`
	Scope   PinScope `json:"scope"`
	KioskID string   `json:"kioskId,omitempty"`
}

// SetOverrideRequest is the body of PUT /api/kiosks/{kioskID}/overrides/{domain}
// and PUT /api/admin/config/{domain}. Payload is decoded per domain by the
// service layer.
type SetOverrideRequest struct {
	Payload json.RawMessage `json:"payload"`
}

// RegisterKioskRequest is the body of POST /api/kiosks.
type RegisterKioskRequest struct {
	KioskID  string `json:"kioskId,omitempty"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// ScheduleStatusResponse is what a kiosk runtime polls to drive its screen.
// NextOpenAt is omitted when the schedule can never be open.
type ScheduleStatusResponse struct {
	State      DisplayState `json:"state"`
	IsOpen     bool         `json:"isOpen"`
	Message    string       `json:"message,omitempty"`
	NextOpenAt *time.Time   `json:"nextOpenAt,omitempty"`
}

// ErrorResponse is the JSON error envelope of the HTTP surface.
type ErrorResponse struct {
	Error string `json:"error"`
}
