// internal/app/system/workers/absenteesweep.go
package workers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/openngo/fieldpunch/internal/app/system/sweeper"
	"github.com/openngo/fieldpunch/internal/app/system/timeouts"
)

// AbsenteeSweep is the background worker that runs the absentee sweep once a
// day at a fixed wall-clock time. It owns only the schedule; the work itself
// lives in sweeper.RunOnce so it can be driven manually and from tests.
type AbsenteeSweep struct {
	sweep  *sweeper.Sweeper
	log    *zap.Logger
	hour   int
	minute int
	loc    *time.Location
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewAbsenteeSweep creates the daily sweep worker firing at hour:minute in loc.
func NewAbsenteeSweep(sweep *sweeper.Sweeper, logger *zap.Logger, hour, minute int, loc *time.Location) *AbsenteeSweep {
	return &AbsenteeSweep{
		sweep:  sweep,
		log:    logger,
		hour:   hour,
		minute: minute,
		loc:    loc,
		stopCh: make(chan struct{}),
	}
}

// Start begins the background schedule loop.
func (w *AbsenteeSweep) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("absentee sweep worker started",
		zap.Int("hour", w.hour),
		zap.Int("minute", w.minute),
		zap.String("time_zone", w.loc.String()))
}

// Stop signals the worker to stop and waits for it to finish.
func (w *AbsenteeSweep) Stop() {
	close(w.stopCh)
	w.wg.Wait()
	w.log.Info("absentee sweep worker stopped")
}

func (w *AbsenteeSweep) run() {
	defer w.wg.Done()

	for {
		timer := time.NewTimer(UntilNextFire(time.Now(), w.hour, w.minute, w.loc))
		select {
		case <-w.stopCh:
			timer.Stop()
			return
		case <-timer.C:
			w.runOnce()
		}
	}
}

// runOnce invokes the sweep with a bounded context. Nothing — not even a
// panic from a driver edge case — may escape the scheduled task.
func (w *AbsenteeSweep) runOnce() {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error("absentee sweep panicked", zap.Any("panic", r))
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), timeouts.Batch())
	defer cancel()

	if _, err := w.sweep.RunOnce(ctx, time.Now()); err != nil {
		w.log.Error("absentee sweep run failed", zap.Error(err))
	}
}

// UntilNextFire returns the duration from now until the next hour:minute
// wall-clock occurrence in loc. If that time has already passed today, the
// next occurrence is tomorrow.
func UntilNextFire(now time.Time, hour, minute int, loc *time.Location) time.Duration {
	local := now.In(loc)
	next := time.Date(local.Year(), local.Month(), local.Day(), hour, minute, 0, 0, loc)
	if !next.After(local) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(local)
}
