package device

// DeviceInfo describes a device the solver can run on.
type DeviceInfo struct {
	ID              int    `json:"id"`
	Name            string `json:"name"`
	TotalMemory     uint64 `json:"totalMemory"`     // in bytes
	AvailableMemory uint64 `json:"availableMemory"` // in bytes
	Backend         string `json:"backend"`
	BLAS            string `json:"blas,omitempty"`
	GoVersion       string `json:"goVersion"`
}

// Backend enumerates the devices of the library the solver forwards to.
type Backend interface {
	// Name is the solver backend, as reported by solver.Backend.
	Name() string

	// Devices lists the devices in id order. The list is never empty.
	Devices() []DeviceInfo
}
