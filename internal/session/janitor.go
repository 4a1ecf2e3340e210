package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"
)

// Janitor periodically evicts idle sessions on a cron schedule.
type Janitor struct {
	manager *Manager
	robfig  *robfigcron.Cron
}

// NewJanitor schedules Manager.Sweep. spec is a standard five-field cron
// expression or a descriptor such as "@every 1m".
func NewJanitor(manager *Manager, spec string) (*Janitor, error) {
	j := &Janitor{manager: manager, robfig: robfigcron.New()}
	if _, err := j.robfig.AddFunc(spec, j.sweep); err != nil {
		return nil, fmt.Errorf("janitor schedule %q: %w", spec, err)
	}
	return j, nil
}

func (j *Janitor) sweep() {
	if n := j.manager.Sweep(time.Now()); n > 0 {
		slog.Info("Evicted idle sessions", "count", n, "live", j.manager.Len())
	}
}

// Run starts the schedule and blocks until ctx is cancelled.
func (j *Janitor) Run(ctx context.Context) error {
	j.robfig.Start()
	slog.Debug("Session janitor started")
	<-ctx.Done()
	<-j.robfig.Stop().Done()
	return nil
}
