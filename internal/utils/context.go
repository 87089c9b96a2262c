package utils

// ContextKey is the type of every context key this module stores request
// values under.
type ContextKey string

// GrantCtxKey carries the authenticated administrator's PinGrant through a
// request context after the auth middleware has verified the session token.
const GrantCtxKey ContextKey = "admin-grant"
