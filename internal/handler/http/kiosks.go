package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/schedule"
	"github.com/kioskops/fleetconfig/internal/utils"
	"github.com/kioskops/fleetconfig/models"
)

func (h *Handler) registerKiosk(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var req models.RegisterKioskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return
	}

	kioskID := req.KioskID
	if kioskID == "" {
		kioskID = uuid.NewString()
	}

	kiosk, err := h.services.KioskService.RegisterKiosk(ctx, models.Kiosk{
		KioskID:  kioskID,
		Name:     req.Name,
		Location: req.Location,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, kiosk, http.StatusCreated)
}

func (h *Handler) listKiosks(w http.ResponseWriter, r *http.Request) {
	kiosks, err := h.services.KioskService.ListKiosks(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, kiosks, http.StatusOK)
}

func (h *Handler) getEffectiveConfig(w http.ResponseWriter, r *http.Request) {
	kioskID := chi.URLParam(r, "kioskID")

	effective, err := h.services.OverrideResolver.ComputeEffective(r.Context(), kioskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	_, _ = utils.WriteJSON(w, effective, http.StatusOK)
}

// getScheduleStatus is the poll endpoint driving a kiosk's screen: the
// current display state, whether the schedule says open right now, and the
// next opening time when currently closed.
func (h *Handler) getScheduleStatus(w http.ResponseWriter, r *http.Request) {
	kioskID := chi.URLParam(r, "kioskID")

	effective, err := h.services.OverrideResolver.ComputeEffective(r.Context(), kioskID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	now := time.Now()

	open, err := schedule.IsOpenAt(effective.Schedule, now)
	if err != nil {
		writeError(w, r, err)
		return
	}

	state, err := schedule.StateAt(effective.Status, effective.Schedule, now)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := models.ScheduleStatusResponse{
		State:   state,
		IsOpen:  open,
		Message: effective.Status.Message,
	}

	next, ok, err := schedule.NextOpenAt(effective.Schedule, now)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ok {
		resp.NextOpenAt = &next
	}

	_, _ = utils.WriteJSON(w, resp, http.StatusOK)
}
