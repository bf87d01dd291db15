package poller

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxker-go/oxker/internal/daemon"
)

func TestCPUPercentageFormula(t *testing.T) {
	sample := daemon.StatsSample{
		CPU:    daemon.CPUStats{TotalUsage: 2000, SystemCPUUsage: 10000, OnlineCPUs: 2},
		PreCPU: daemon.CPUStats{TotalUsage: 1000, SystemCPUUsage: 8000},
	}
	// cpu_delta=1000, system_delta=2000, online=2 -> (1000/2000)*2*100 = 100
	assert.Equal(t, 100.0, CPUPercentage(sample))
}

func TestCPUPercentageFallsBackToPercpuLen(t *testing.T) {
	sample := daemon.StatsSample{
		CPU:    daemon.CPUStats{TotalUsage: 2000, SystemCPUUsage: 10000, PercpuUsage: []uint64{1, 2, 3, 4}},
		PreCPU: daemon.CPUStats{TotalUsage: 1000, SystemCPUUsage: 8000},
	}
	assert.Equal(t, 200.0, CPUPercentage(sample))
}

func TestCPUPercentageZeroWhenDeltasNonPositive(t *testing.T) {
	sample := daemon.StatsSample{
		CPU:    daemon.CPUStats{TotalUsage: 1000, SystemCPUUsage: 8000},
		PreCPU: daemon.CPUStats{TotalUsage: 1000, SystemCPUUsage: 8000},
	}
	assert.Equal(t, 0.0, CPUPercentage(sample))
}

func TestMemoryPercentage(t *testing.T) {
	assert.Equal(t, 50.0, MemoryPercentage(daemon.StatsSample{Memory: daemon.MemoryStats{Usage: 50, Limit: 100}}))
	assert.Equal(t, 0.0, MemoryPercentage(daemon.StatsSample{Memory: daemon.MemoryStats{Usage: 50, Limit: 0}}))
}
