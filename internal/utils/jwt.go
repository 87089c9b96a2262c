// Package utils holds small helpers shared across the HTTP surface:
// session token minting and parsing, and context keys.
package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/kioskops/fleetconfig/models"
)

var (
	// ErrInvalidToken is returned for any token that fails signature,
	// issuer or expiry verification.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrNoAuthHeader is returned when a request carries no Authorization
	// header at all.
	ErrNoAuthHeader = errors.New("missing authorization header")
)

// GenerateAdminToken mints a signed session JWT from a PIN grant. The
// token's "exp" claim is the grant's expiry; the scope, kiosk and
// permission set ride along as custom claims.
func GenerateAdminToken(grant models.PinGrant, signKey, issuer string) (models.Token, error) {
	claims := models.AdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   string(grant.Scope),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(grant.ExpiresAt),
		},
		Scope:       grant.Scope,
		KioskID:     grant.KioskID,
		Permissions: grant.Permissions,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("signing session token: %w", err)
	}

	return models.Token{Token: token, SignedString: signed, Grant: grant}, nil
}

// ParseAdminToken verifies the signature, issuer and expiry of a session
// token and returns its claim set.
func ParseAdminToken(signed, signKey, issuer string) (*models.AdminClaims, error) {
	claims := &models.AdminClaims{}

	token, err := jwt.ParseWithClaims(signed, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("%w: unexpected signing method %q", ErrInvalidToken, t.Method.Alg())
			}
			return []byte(signKey), nil
		},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ParseBearerToken extracts the bearer token from the Authorization header.
func ParseBearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", ErrNoAuthHeader
	}

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", fmt.Errorf("%w: malformed authorization header", ErrInvalidToken)
	}

	return token, nil
}

// GrantFromClaims rebuilds the PIN grant encoded in a verified claim set.
func GrantFromClaims(claims *models.AdminClaims) models.PinGrant {
	grant := models.PinGrant{
		Scope:       claims.Scope,
		KioskID:     claims.KioskID,
		Permissions: claims.Permissions,
	}
	if claims.ExpiresAt != nil {
		grant.ExpiresAt = claims.ExpiresAt.Time
	}
	return grant
}
