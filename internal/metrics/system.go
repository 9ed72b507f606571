package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

var (
	HostCPUPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "host_cpu_usage_percent",
		Help: "Host CPU usage sampled over one second",
	})

	HostMemoryPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "host_memory_used_percent",
		Help: "Host memory in use",
	})
)

// CPUUsage returns the host CPU usage as a percentage, or 0 on error.
func CPUUsage(ctx context.Context) float64 {
	percentage, err := cpu.PercentWithContext(ctx, time.Second, false)
	if err != nil {
		slog.Warn("failed to read CPU usage", "error", err)
		return 0
	}
	if len(percentage) > 0 {
		return percentage[0]
	}
	return 0
}

// MemoryUsage returns the used share of host memory as a percentage.
func MemoryUsage(ctx context.Context) float64 {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		slog.Warn("failed to read memory usage", "error", err)
		return 0
	}
	return vm.UsedPercent
}

// StartSystemCollector refreshes the host gauges every interval until ctx
// is cancelled.
func StartSystemCollector(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			HostCPUPercent.Set(CPUUsage(ctx))
			HostMemoryPercent.Set(MemoryUsage(ctx))
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			}
		}
	}()
}
