// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Kioskops

package http

import "errors"

// Sentinel errors of the authorization layer. Callers match against them
// with [errors.Is].
var (
	// ErrInsufficientPermissions is returned when the session grant lacks
	// the permission an endpoint requires.
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	// ErrForeignKiosk is returned when a kiosk-scoped session tries to
	// touch a kiosk other than its own.
	ErrForeignKiosk = errors.New("session is limited to another kiosk")

	// ErrNoGrantInContext is returned when a handler that requires
	// authentication runs without the auth middleware having stored a
	// grant.
	ErrNoGrantInContext = errors.New("no session grant in request context")
)
