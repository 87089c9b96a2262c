package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/service"
	"github.com/kioskops/fleetconfig/internal/utils"
	"github.com/kioskops/fleetconfig/models"
)

func (h *Handler) setOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	kioskID := chi.URLParam(r, "kioskID")
	domain := models.Domain(chi.URLParam(r, "domain"))
	if !domain.Valid() {
		writeError(w, r, fmt.Errorf("%w: %q", service.ErrUnknownDomain, domain))
		return
	}

	grant, err := grantFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := authorizeKiosk(grant, kioskID, permissionForDomain(domain)); err != nil {
		writeError(w, r, err)
		return
	}

	var req models.SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	state, err := h.services.OverrideResolver.SetOverride(ctx, kioskID, domain, req.Payload)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, state, http.StatusOK)
}

func (h *Handler) removeOverride(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	kioskID := chi.URLParam(r, "kioskID")
	domain := models.Domain(chi.URLParam(r, "domain"))
	if !domain.Valid() {
		writeError(w, r, fmt.Errorf("%w: %q", service.ErrUnknownDomain, domain))
		return
	}

	grant, err := grantFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := authorizeKiosk(grant, kioskID, permissionForDomain(domain)); err != nil {
		writeError(w, r, err)
		return
	}

	state, err := h.services.OverrideResolver.RemoveOverride(ctx, kioskID, domain)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, state, http.StatusOK)
}

func (h *Handler) setGlobalDefault(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	domain := models.Domain(chi.URLParam(r, "domain"))
	if !domain.Valid() {
		writeError(w, r, fmt.Errorf("%w: %q", service.ErrUnknownDomain, domain))
		return
	}

	grant, err := grantFromRequest(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	// Global defaults are off-limits to kiosk-scoped sessions even for the
	// domains their permission set covers.
	if grant.Scope != models.PinScopeGlobal || !grant.Allows(permissionForDomain(domain)) {
		writeError(w, r, ErrInsufficientPermissions)
		return
	}

	var req models.SetOverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.OverrideResolver.SetGlobalDefault(ctx, domain, req.Payload); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// permissionForDomain maps a configuration domain to the permission
// required to administer it.
func permissionForDomain(d models.Domain) models.Permission {
	switch d {
	case models.DomainStatus:
		return models.PermissionManageStatus
	case models.DomainSchedule:
		return models.PermissionManageSchedule
	case models.DomainOfficeHours:
		return models.PermissionManageOfficeHours
	case models.DomainBranding:
		return models.PermissionManageBranding
	default:
		return ""
	}
}
