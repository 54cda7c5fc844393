// Package observability aggregates runtime counters and host metrics for the
// stats endpoint and the periodic stats log line.
package observability

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// Stats is a point-in-time snapshot of the service counters plus host load.
type Stats struct {
	SessionsCreated   uint64  `json:"sessions_created"`
	Joins             uint64  `json:"joins"`
	Messages          uint64  `json:"messages"`
	DeliveryFailures  uint64  `json:"delivery_failures"`
	SessionsReaped    uint64  `json:"sessions_reaped"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryUsedPercent float64 `json:"memory_used_percent"`
}

// Monitor holds cumulative atomic counters. Increments are lock-free so the
// broadcast path never blocks on telemetry.
type Monitor struct {
	log *slog.Logger

	sessionsCreated  uint64
	joins            uint64
	messages         uint64
	deliveryFailures uint64
	sessionsReaped   uint64
}

func NewMonitor(log *slog.Logger) *Monitor {
	return &Monitor{log: log}
}

func (m *Monitor) IncrSessionsCreated() {
	atomic.AddUint64(&m.sessionsCreated, 1)
}

func (m *Monitor) IncrJoins() {
	atomic.AddUint64(&m.joins, 1)
}

func (m *Monitor) IncrMessages() {
	atomic.AddUint64(&m.messages, 1)
}

func (m *Monitor) IncrDeliveryFailures() {
	atomic.AddUint64(&m.deliveryFailures, 1)
}

func (m *Monitor) AddReaped(n int) {
	atomic.AddUint64(&m.sessionsReaped, uint64(n))
}

// Snapshot reads the counters and samples host CPU and memory usage.
// Sampling failures degrade to zero values rather than failing the snapshot.
func (m *Monitor) Snapshot() Stats {
	stats := Stats{
		SessionsCreated:  atomic.LoadUint64(&m.sessionsCreated),
		Joins:            atomic.LoadUint64(&m.joins),
		Messages:         atomic.LoadUint64(&m.messages),
		DeliveryFailures: atomic.LoadUint64(&m.deliveryFailures),
		SessionsReaped:   atomic.LoadUint64(&m.sessionsReaped),
	}
	if percents, err := cpu.Percent(0, false); err == nil && len(percents) > 0 {
		stats.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		stats.MemoryUsedPercent = vm.UsedPercent
	}
	return stats
}

// Listen logs a stats line at every interval until the context is cancelled.
func (m *Monitor) Listen(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.log.Info("monitor stopped")
			return
		case <-ticker.C:
			stats := m.Snapshot()
			m.log.Info("stats",
				"sessions_created", stats.SessionsCreated,
				"joins", stats.Joins,
				"messages", stats.Messages,
				"delivery_failures", stats.DeliveryFailures,
				"sessions_reaped", stats.SessionsReaped,
				"cpu_percent", stats.CPUPercent,
				"mem_used_percent", stats.MemoryUsedPercent,
			)
		}
	}
}
