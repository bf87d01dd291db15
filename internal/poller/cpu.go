package poller

import "github.com/oxker-go/oxker/internal/daemon"

// CPUPercentage reproduces spec.md §4.2's formula bit for bit, grounded
// on the teacher's CalculateContainerCPUPercentage
// (pkg/commands/container_stats_test.go /
// pkg/commands/podman_test.go):
//
//	cpu_delta    = total_usage - precpu.total_usage
//	system_delta = system_cpu_usage - precpu.system_cpu_usage
//	online       = online_cpus, else len(percpu_usage)
//	percentage   = (cpu_delta / system_delta) * online * 100
//	             when both system fields are present, system_delta > 0
//	             and cpu_delta > 0; otherwise 0.
func CPUPercentage(s daemon.StatsSample) float64 {
	cpuDelta := float64(s.CPU.TotalUsage) - float64(s.PreCPU.TotalUsage)
	systemDelta := float64(s.CPU.SystemCPUUsage) - float64(s.PreCPU.SystemCPUUsage)

	online := float64(s.CPU.OnlineCPUs)
	if online == 0 {
		online = float64(len(s.CPU.PercpuUsage))
	}

	if systemDelta > 0 && cpuDelta > 0 {
		return (cpuDelta / systemDelta) * online * 100
	}
	return 0
}

// MemoryPercentage is the straightforward usage/limit*100, guarding
// against a zero limit.
func MemoryPercentage(s daemon.StatsSample) float64 {
	if s.Memory.Limit == 0 {
		return 0
	}
	return float64(s.Memory.Usage) / float64(s.Memory.Limit) * 100
}
