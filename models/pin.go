package models

import "time"

// PinLength is the required number of digits in a non-empty admin PIN.
const PinLength = 6

// PinScope tells which namespace a PIN assignment lives in.
type PinScope string

const (
	PinScopeGlobal PinScope = "global"
	PinScopeKiosk  PinScope = "kiosk"
)

// PinAssignment binds a PIN value to a scope. KioskID is empty for the
// global assignment. An empty Pin means "no PIN assigned".
//
// Invariant: across all live assignments no non-empty Pin value appears more
// than once.
type PinAssignment struct {
	Scope   PinScope `json:"scope"`
	KioskID string   `json:"kioskId,omitempty"`
	Pin     string   `json:"pin"`
}

// PinValidation is the result of checking a candidate PIN before submission.
// The same rules decide acceptance at commit time, so interactive feedback
// and persisted behavior never diverge.
type PinValidation struct {
	IsValid bool   `json:"isValid"`
	Message string `json:"message,omitempty"`
}

// Permission names a single administrative capability.
type Permission string

const (
	PermissionManageStatus      Permission = "manage_status"
	PermissionManageSchedule    Permission = "manage_schedule"
	PermissionManageOfficeHours Permission = "manage_office_hours"
	PermissionManageBranding    Permission = "manage_branding"
	PermissionManagePins        Permission = "manage_pins"
	PermissionManageUsers       Permission = "manage_users"
)

// GlobalPermissions is the full administrative permission set granted by the
// global PIN, including user management.
var GlobalPermissions = []Permission{
	PermissionManageStatus,
	PermissionManageSchedule,
	PermissionManageOfficeHours,
	PermissionManageBranding,
	PermissionManagePins,
	PermissionManageUsers,
}

// KioskPermissions is the reduced permission set granted by a kiosk-scoped
// PIN: status, schedule and branding for that one kiosk.
var KioskPermissions = []Permission{
	PermissionManageStatus,
	PermissionManageSchedule,
	PermissionManageBranding,
}

// PinGrant is the outcome of a successful PIN check: the scope that matched,
// the kiosk it is limited to (empty for global), the permission set, and the
// expiry computed by the caller-supplied policy.
type PinGrant struct {
	Scope       PinScope     `json:"scope"`
	KioskID     string       `json:"kioskId,omitempty"`
	Permissions []Permission `json:"permissions"`
	ExpiresAt   time.Time    `json:"expiresAt"`
}

// Allows reports whether the grant carries the given permission.
func (g PinGrant) Allows(p Permission) bool {
	for _, granted := range g.Permissions {
		if granted == p {
			return true
		}
	}
	return false
}
