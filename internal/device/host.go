package device

import (
	"fmt"
	"runtime"

	"github.com/pbnjay/memory"
)

// hostBackend runs on the CPU of the current process and exposes it as
// device 0.
type hostBackend struct {
	name string
	blas string
}

func (b hostBackend) Name() string {
	return b.name
}

func (b hostBackend) Devices() []DeviceInfo {
	return []DeviceInfo{{
		ID:              0,
		Name:            fmt.Sprintf("host (%s/%s, %d cpus)", runtime.GOOS, runtime.GOARCH, runtime.NumCPU()),
		TotalMemory:     memory.TotalMemory(),
		AvailableMemory: memory.FreeMemory(),
		Backend:         b.name,
		BLAS:            b.blas,
		GoVersion:       runtime.Version(),
	}}
}
