package schedule

import (
	"time"

	"github.com/kioskops/fleetconfig/models"
)

// StateAt selects the on-screen display state for a kiosk at the given
// instant: closed whenever the schedule says closed, otherwise the status
// domain's configured state (falling back to plain "open" if the configured
// state is unset or unknown).
func StateAt(status models.StatusConfig, s models.WeeklySchedule, at time.Time) (models.DisplayState, error) {
	open, err := IsOpenAt(s, at)
	if err != nil {
		return "", err
	}

	if !open {
		return models.StateClosed, nil
	}
	if status.State.Valid() {
		return status.State, nil
	}
	return models.StateOpen, nil
}
