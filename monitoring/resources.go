package monitoring

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/process"
)

// Resources is a snapshot of what the current process uses.
type Resources struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

// SampleResources measures the CPU and resident memory of this process.
func SampleResources() (Resources, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return Resources{}, fmt.Errorf("monitoring: %w", err)
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return Resources{}, fmt.Errorf("monitoring: cpu: %w", err)
	}

	memoryInfo, err := p.MemoryInfo()
	if err != nil {
		return Resources{}, fmt.Errorf("monitoring: memory: %w", err)
	}

	return Resources{
		CPUPercent: cpuPercent,
		MemorySize: memoryInfo.RSS,
	}, nil
}
