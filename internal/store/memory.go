package store

import (
	"context"
	"sync"
	"time"

	"github.com/kioskops/fleetconfig/models"
)

// MemoryStore is an in-memory implementation of all three repositories.
// It backs the "memory" driver and the package tests. All methods are safe
// for concurrent use.
type MemoryStore struct {
	mu sync.RWMutex

	kiosks    map[string]models.Kiosk
	global    map[models.Domain][]byte
	overrides map[string]map[models.Domain][]byte
	pins      map[string]models.PinAssignment // keyed by scope + "/" + kioskID
}

// NewMemoryStore constructs an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		kiosks:    make(map[string]models.Kiosk),
		global:    make(map[models.Domain][]byte),
		overrides: make(map[string]map[models.Domain][]byte),
		pins:      make(map[string]models.PinAssignment),
	}
}

func pinKey(scope models.PinScope, kioskID string) string {
	return string(scope) + "/" + kioskID
}

// CreateKiosk implements [KioskRepository].
func (m *MemoryStore) CreateKiosk(_ context.Context, kiosk models.Kiosk) (models.Kiosk, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.kiosks[kiosk.KioskID]; exists {
		return models.Kiosk{}, ErrKioskAlreadyExists
	}

	now := time.Now().UTC()
	kiosk.CreatedAt = now
	kiosk.UpdatedAt = now
	m.kiosks[kiosk.KioskID] = kiosk

	return kiosk, nil
}

// GetKiosk implements [KioskRepository].
func (m *MemoryStore) GetKiosk(_ context.Context, kioskID string) (models.Kiosk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kiosk, exists := m.kiosks[kioskID]
	if !exists {
		return models.Kiosk{}, ErrKioskNotFound
	}
	return kiosk, nil
}

// ListKiosks implements [KioskRepository].
func (m *MemoryStore) ListKiosks(_ context.Context) ([]models.Kiosk, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	kiosks := make([]models.Kiosk, 0, len(m.kiosks))
	for _, kiosk := range m.kiosks {
		kiosks = append(kiosks, kiosk)
	}
	return kiosks, nil
}

// GetGlobalConfig implements [ConfigRepository].
func (m *MemoryStore) GetGlobalConfig(_ context.Context) (models.GlobalConfig, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cfg := models.DefaultGlobalConfig()
	for domain, payload := range m.global {
		if err := applyGlobalDomain(&cfg, domain, payload); err != nil {
			return models.GlobalConfig{}, err
		}
	}
	return cfg, nil
}

// PutGlobalDomain implements [ConfigRepository].
func (m *MemoryStore) PutGlobalDomain(_ context.Context, domain models.Domain, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.global[domain] = append([]byte(nil), payload...)
	return nil
}

// GetOverrides implements [ConfigRepository].
func (m *MemoryStore) GetOverrides(_ context.Context, kioskID string) (models.KioskOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var override models.KioskOverride
	for domain, payload := range m.overrides[kioskID] {
		if err := applyOverrideDomain(&override, domain, payload); err != nil {
			return models.KioskOverride{}, err
		}
	}
	return override, nil
}

// ListOverrides implements [ConfigRepository].
func (m *MemoryStore) ListOverrides(_ context.Context) (map[string]models.KioskOverride, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	overrides := make(map[string]models.KioskOverride, len(m.overrides))
	for kioskID, domains := range m.overrides {
		var override models.KioskOverride
		for domain, payload := range domains {
			if err := applyOverrideDomain(&override, domain, payload); err != nil {
				return nil, err
			}
		}
		overrides[kioskID] = override
	}
	return overrides, nil
}

// PutOverride implements [ConfigRepository].
func (m *MemoryStore) PutOverride(_ context.Context, kioskID string, domain models.Domain, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	domains, exists := m.overrides[kioskID]
	if !exists {
		domains = make(map[models.Domain][]byte)
		m.overrides[kioskID] = domains
	}
	domains[domain] = append([]byte(nil), payload...)
	return nil
}

// DeleteOverride implements [ConfigRepository].
func (m *MemoryStore) DeleteOverride(_ context.Context, kioskID string, domain models.Domain) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.overrides[kioskID], domain)
	return nil
}

// ListPinAssignments implements [PinRepository].
func (m *MemoryStore) ListPinAssignments(_ context.Context) ([]models.PinAssignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	assignments := make([]models.PinAssignment, 0, len(m.pins))
	for _, assignment := range m.pins {
		assignments = append(assignments, assignment)
	}
	return assignments, nil
}

// PutPinAssignment implements [PinRepository].
func (m *MemoryStore) PutPinAssignment(_ context.Context, assignment models.PinAssignment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if assignment.Pin != "" {
		for key, existing := range m.pins {
			if key != pinKey(assignment.Scope, assignment.KioskID) && existing.Pin == assignment.Pin {
				return ErrPinAlreadyAssigned
			}
		}
	}

	m.pins[pinKey(assignment.Scope, assignment.KioskID)] = assignment
	return nil
}

// DeletePinAssignment implements [PinRepository].
func (m *MemoryStore) DeletePinAssignment(_ context.Context, scope models.PinScope, kioskID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.pins, pinKey(scope, kioskID))
	return nil
}
