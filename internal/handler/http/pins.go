package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/utils"
	"github.com/kioskops/fleetconfig/models"
)

func (h *Handler) setGlobalPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.SetPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PinRegistry.SetGlobalPin(ctx, req.Pin); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) setKioskPin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	kioskID := chi.URLParam(r, "kioskID")

	var req models.SetPinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	if err := h.services.PinRegistry.SetKioskPin(ctx, kioskID, req.Pin); err != nil {
		writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// validatePin is the interactive pre-submit check: it reports the same
// verdict the setters would give, without committing anything.
func (h *Handler) validatePin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.ValidatePinRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	result := h.services.PinRegistry.ValidatePin(ctx, req.Pin, models.PinAssignment{
		Scope:   req.Scope,
		KioskID: req.KioskID,
	})

	_, _ = utils.WriteJSON(w, result, http.StatusOK)
}
