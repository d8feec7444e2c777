package device

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrInvalidDevice = errors.New("invalid device")

// Manager keeps the device list of a backend and the selected device.
type Manager struct {
	backend Backend
	current int
	mu      sync.RWMutex
	logger  *zap.Logger
}

// NewManager creates a manager over the backend the solver was built with.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("device")
	return NewManagerWithBackend(NewBackend(logger), logger)
}

func NewManagerWithBackend(backend Backend, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{backend: backend, logger: logger}
}

// BackendName returns the name of the solver backend.
func (m *Manager) BackendName() string {
	return m.backend.Name()
}

func (m *Manager) DeviceCount() int {
	return len(m.backend.Devices())
}

// Devices returns information about every device. Memory figures are read
// at call time.
func (m *Manager) Devices() []DeviceInfo {
	return m.backend.Devices()
}

func (m *Manager) DeviceInfo(id int) (DeviceInfo, error) {
	devices := m.backend.Devices()
	if id < 0 || id >= len(devices) {
		return DeviceInfo{}, fmt.Errorf("%w: %d of %d", ErrInvalidDevice, id, len(devices))
	}
	return devices[id], nil
}

// SetDevice selects the device later solver handles run on.
func (m *Manager) SetDevice(id int) error {
	if count := m.DeviceCount(); id < 0 || id >= count {
		return fmt.Errorf("%w: %d of %d", ErrInvalidDevice, id, count)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.current = id
	m.logger.Debug("device selected", zap.Int("device", id))
	return nil
}

// Device returns the selected device id.
func (m *Manager) Device() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}
