package models

import "time"

// Kiosk is a registered check-in terminal. Only registered kiosk IDs may
// carry overrides or kiosk-scoped PINs.
type Kiosk struct {
	KioskID   string    `json:"kioskId"`
	Name      string    `json:"name"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
