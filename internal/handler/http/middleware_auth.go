// Package http implements the HTTP transport layer of the fleet
// configuration service: middleware, route handlers, and the translation
// between wire DTOs and the domain model. Authentication, permission
// checks, logging and tracing all happen here before a request reaches the
// service layer.
package http

import (
	"context"
	"net/http"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/utils"
	"github.com/kioskops/fleetconfig/models"
)

// auth enforces JWT-based authentication. On success the grant decoded from
// the token is stored in the request context under [utils.GrantCtxKey] so
// downstream handlers never re-parse the token.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r)
		if err != nil {
			log.Err(err).Send()
			utils.WriteError(w, err.Error(), http.StatusUnauthorized)
			return
		}

		claims, err := utils.ParseAdminToken(tokenString, h.app.TokenSignKey, h.app.TokenIssuer)
		if err != nil {
			log.Err(err).Msg("session token rejected")
			utils.WriteError(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), utils.GrantCtxKey, utils.GrantFromClaims(claims))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requirePermission builds a middleware rejecting sessions whose grant
// lacks the given permission.
func (h *Handler) requirePermission(permission models.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			grant, err := grantFromRequest(r)
			if err != nil {
				writeError(w, r, err)
				return
			}

			if !grant.Allows(permission) {
				writeError(w, r, ErrInsufficientPermissions)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// grantFromRequest retrieves the grant the auth middleware stored.
func grantFromRequest(r *http.Request) (models.PinGrant, error) {
	grant, ok := r.Context().Value(utils.GrantCtxKey).(models.PinGrant)
	if !ok {
		return models.PinGrant{}, ErrNoGrantInContext
	}
	return grant, nil
}

// authorizeKiosk checks that the grant may administer kioskID: global
// sessions may touch any kiosk, kiosk-scoped sessions only their own.
func authorizeKiosk(grant models.PinGrant, kioskID string, permission models.Permission) error {
	if !grant.Allows(permission) {
		return ErrInsufficientPermissions
	}
	if grant.Scope == models.PinScopeKiosk && grant.KioskID != kioskID {
		return ErrForeignKiosk
	}
	return nil
}
