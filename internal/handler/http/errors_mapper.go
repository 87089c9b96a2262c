package http

import (
	"errors"
	"net/http"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/service"
	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:       http.StatusBadRequest,
	service.ErrUnknownDomain:    http.StatusBadRequest,
	service.ErrUnknownKiosk:     http.StatusNotFound,
	service.ErrPinConflict:      http.StatusConflict,
	service.ErrPinNotRecognized: http.StatusUnauthorized,

	ErrInsufficientPermissions: http.StatusForbidden,
	ErrForeignKiosk:            http.StatusForbidden,

	store.ErrKioskAlreadyExists: http.StatusConflict,
	store.ErrKioskNotFound:      http.StatusNotFound,
	store.ErrPinAlreadyAssigned: http.StatusConflict,

	store.ErrBuildingSQLQuery: http.StatusInternalServerError,
	store.ErrExecutingQuery:   http.StatusInternalServerError,
	store.ErrScanningRow:      http.StatusInternalServerError,
	store.ErrScanningRows:     http.StatusInternalServerError,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError maps a service error to its HTTP status and writes the JSON
// error envelope. Internal errors are logged in full but reported with a
// generic message.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Err(err).Msg("internal error")
		message = http.StatusText(http.StatusInternalServerError)
	} else {
		log.Err(err).Int("status", status).Send()
	}

	utils.WriteError(w, message, status)
}
