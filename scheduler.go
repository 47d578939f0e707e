package valutatrade

import (
	"context"
	"sync"
	"time"

	"github.com/valutatrade/hub/audit"
)

// Scheduler runs the updater at a fixed interval until its context is
// cancelled. Each completed run is handed to the report callback, which is
// where persistence and rendering hook in.
type Scheduler struct {
	updater  *Updater
	interval time.Duration
	onReport func(RefreshReport)

	stop   context.CancelFunc
	doneWg sync.WaitGroup
}

// NewScheduler builds a Scheduler; onReport may be nil.
func NewScheduler(updater *Updater, interval time.Duration, onReport func(RefreshReport)) *Scheduler {
	return &Scheduler{updater: updater, interval: interval, onReport: onReport}
}

// Start launches the refresh loop. The first run happens immediately, then
// every interval. Start returns right away.
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.stop = context.WithCancel(ctx)
	s.doneWg.Add(1)
	go func() {
		defer s.doneWg.Done()
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		s.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.run(ctx)
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	if s.stop == nil {
		return
	}
	s.stop()
	s.doneWg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	report := s.updater.Refresh(ctx, "")
	audit.Get().Infow("refresh_run",
		"updated", report.Updated,
		"failed", report.Failed,
		"skipped", report.Skipped,
		"duration", report.Duration.String(),
	)
	if s.onReport != nil {
		s.onReport(report)
	}
}
