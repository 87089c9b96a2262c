package models

import "github.com/golang-jwt/jwt/v5"

// AdminClaims is the JWT claim set minted for an administrator after a
// successful PIN check. Scope, KioskID and Permissions mirror the PinGrant
// the token was issued from; expiry lives in the registered "exp" claim.
type AdminClaims struct {
	jwt.RegisteredClaims

	Scope       PinScope     `json:"scope"`
	KioskID     string       `json:"kioskId,omitempty"`
	Permissions []Permission `json:"permissions"`
}

// Token pairs a parsed JWT with its signed string representation and the
// grant decoded from its claims.
type Token struct {
	*jwt.Token `json:"-"`

	SignedString string   `json:"token"`
	Grant        PinGrant `json:"grant"`
}
