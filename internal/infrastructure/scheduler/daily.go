// Package scheduler triggers recurring pipeline runs at a fixed local time.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"VideosCurator/internal/ports"
)

const clockLayout = "15:04"

// DailyScheduler fires the job once per day at a configured wall-clock time.
type DailyScheduler struct {
	at   string
	loc  *time.Location
	stop chan struct{}
}

var _ ports.Scheduler = (*DailyScheduler)(nil)

// NewDailyScheduler builds a scheduler firing at "HH:MM" in loc. A nil
// location falls back to the local zone.
func NewDailyScheduler(at string, loc *time.Location) *DailyScheduler {
	if loc == nil {
		loc = time.Local
	}
	return &DailyScheduler{at: at, loc: loc}
}

// Start launches the timer goroutine. Calling Start twice is a no-op.
func (d *DailyScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}
	if d.stop != nil {
		return nil
	}

	hour, minute, err := parseClock(d.at)
	if err != nil {
		return err
	}

	d.stop = make(chan struct{})
	go func() {
		timer := time.NewTimer(time.Until(nextOccurrence(time.Now().In(d.loc), hour, minute)))
		defer timer.Stop()
		for {
			select {
			case t := <-timer.C:
				job(t)
				timer.Reset(time.Until(nextOccurrence(time.Now().In(d.loc), hour, minute)))
			case <-ctx.Done():
				return
			case <-d.stop:
				return
			}
		}
	}()

	return nil
}

// Stop halts the timer goroutine.
func (d *DailyScheduler) Stop(ctx context.Context) error {
	if d.stop == nil {
		return nil
	}
	close(d.stop)
	d.stop = nil
	return nil
}

func parseClock(at string) (hour, minute int, err error) {
	clock, err := time.Parse(clockLayout, at)
	if err != nil {
		return 0, 0, fmt.Errorf("parse schedule time %q: %w", at, err)
	}
	return clock.Hour(), clock.Minute(), nil
}

// nextOccurrence returns the first hh:mm strictly after now, in now's zone.
func nextOccurrence(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
