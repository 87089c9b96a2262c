package http

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/utils"
	"github.com/kioskops/fleetconfig/models"
)

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	grant, err := h.services.PinRegistry.TestPin(ctx, req.Pin, req.KioskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	token, err := utils.GenerateAdminToken(grant, h.app.TokenSignKey, h.app.TokenIssuer)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		utils.WriteError(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	log.Debug().
		Str("scope", string(grant.Scope)).
		Str("kiosk_id", grant.KioskID).
		Msg("admin session issued")

	w.Header().Set("Authorization", fmt.Sprintf("Bearer %s", token.SignedString))
	_, _ = utils.WriteJSON(w, models.LoginResponse{Token: token.SignedString, Grant: grant}, http.StatusOK)
}
