package service

import (
	"time"

	"github.com/kioskops/fleetconfig/models"
)

// FixedTTLPolicy grants every scope the same session lifetime, counted from
// the moment the PIN is accepted.
type FixedTTLPolicy struct {
	TTL time.Duration
}

// NewFixedTTLPolicy constructs the default [ExpiryPolicy] from a session
// TTL.
func NewFixedTTLPolicy(ttl time.Duration) ExpiryPolicy {
	return FixedTTLPolicy{TTL: ttl}
}

func (p FixedTTLPolicy) ExpiresAt(now time.Time, _ models.PinScope) time.Time {
	return now.Add(p.TTL)
}
