package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/kioskops/fleetconfig/internal/logger"
	"github.com/kioskops/fleetconfig/internal/store"
	"github.com/kioskops/fleetconfig/models"
)

type kioskService struct {
	state  *fleetState
	kiosks store.KioskRepository
	logger *logger.Logger
}

// NewKioskService constructs the kiosk registry service over the shared
// fleet snapshot with write-through to kiosks.
func NewKioskService(state *fleetState, kiosks store.KioskRepository, log *logger.Logger) KioskService {
	return &kioskService{
		state:  state,
		kiosks: kiosks,
		logger: log,
	}
}

func (s *kioskService) RegisterKiosk(ctx context.Context, kiosk models.Kiosk) (models.Kiosk, error) {
	if kiosk.KioskID == "" {
		return models.Kiosk{}, &ValidationError{Message: "kiosk id must not be empty"}
	}
	if kiosk.Name == "" {
		kiosk.Name = kiosk.KioskID
	}

	created, err := s.kiosks.CreateKiosk(ctx, kiosk)
	if err != nil {
		return models.Kiosk{}, err
	}

	s.state.mu.Lock()
	s.state.kiosks[created.KioskID] = created
	s.state.mu.Unlock()

	s.logger.Info().
		Str("kiosk_id", created.KioskID).
		Msg("kiosk registered")

	return created, nil
}

func (s *kioskService) GetKiosk(_ context.Context, kioskID string) (models.Kiosk, error) {
	s.state.mu.RLock()
	defer s.state.mu.RUnlock()

	kiosk, ok := s.state.kiosks[kioskID]
	if !ok {
		return models.Kiosk{}, fmt.Errorf("%w: %q", ErrUnknownKiosk, kioskID)
	}

	return kiosk, nil
}

func (s *kioskService) ListKiosks(_ context.Context) ([]models.Kiosk, error) {
	s.state.mu.RLock()
	kiosks := make([]models.Kiosk, 0, len(s.state.kiosks))
	for _, kiosk := range s.state.kiosks {
		kiosks = append(kiosks, kiosk)
	}
	s.state.mu.RUnlock()

	sort.Slice(kiosks, func(i, j int) bool { return kiosks[i].KioskID < kiosks[j].KioskID })

	return kiosks, nil
}
