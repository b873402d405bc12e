// AngelaMos | 2026
// janitor.go

package server

import (
	"context"
	"log/slog"
	"time"
)

// Task is a periodic cleanup job. It returns the number of rows removed.
type Task struct {
	Name string
	Run  func(ctx context.Context) (int64, error)
}

// Janitor runs its tasks once at start and then on every tick until ctx is
// cancelled. A failing task is logged and retried on the next tick.
type Janitor struct {
	interval time.Duration
	tasks    []Task
	logger   *slog.Logger
}

func NewJanitor(interval time.Duration, logger *slog.Logger, tasks ...Task) *Janitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Janitor{interval: interval, tasks: tasks, logger: logger}
}

func (j *Janitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		j.sweep(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (j *Janitor) sweep(ctx context.Context) {
	for _, task := range j.tasks {
		if ctx.Err() != nil {
			return
		}

		n, err := task.Run(ctx)
		if err != nil {
			j.logger.Warn("cleanup task failed", "task", task.Name, "error", err)
			continue
		}
		if n > 0 {
			j.logger.Info("cleanup task removed rows", "task", task.Name, "rows", n)
		}
	}
}
