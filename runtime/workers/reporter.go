package workers

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/process"
)

// ProcessReporterWorker logs process health on a fixed interval so a
// long-lived room leaves a usable trace in the logs.
type ProcessReporterWorker struct {
	log      *slog.Logger
	interval time.Duration
}

func NewProcessReporterWorker(log *slog.Logger, interval time.Duration) *ProcessReporterWorker {
	return &ProcessReporterWorker{log: log, interval: interval}
}

// Run emits one report per tick with RAM, CPU and goroutine figures.
func (w *ProcessReporterWorker) Run(ctx context.Context) error {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			rss, cpu, err := selfStats(p)
			if err != nil {
				w.log.Error("Failed to collect self stats", "err", err)
				continue
			}
			w.log.Info("Process report",
				"ram_mb", rss/1024/1024,
				"cpu_percent", cpu,
				"goroutines", runtime.NumGoroutine(),
			)
		}
	}
}

// selfStats retrieves technical metrics (Memory and CPU) for the given process.
func selfStats(p *process.Process) (uint64, float64, error) {
	memInfo, err := p.MemoryInfo()
	if err != nil {
		return 0, 0, err
	}

	cpuPercent, err := p.CPUPercent()
	if err != nil {
		return 0, 0, err
	}
	return memInfo.RSS, cpuPercent, nil
}
