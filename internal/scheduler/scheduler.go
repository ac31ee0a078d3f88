// Package scheduler drives the recurring import: one task, fixed interval,
// errors logged and swallowed so a bad run never ends the schedule.
package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task once right away, then on every interval tick until ctx is
// cancelled. Ticks that arrive while a run is still going are absorbed by
// the run lock downstream.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	run := func() {
		if err := task(ctx); err != nil {
			log.Printf("[%s] run failed: %v", name, err)
		}
	}
	run()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Printf("[%s] schedule stopped", name)
			return
		case <-ticker.C:
			run()
		}
	}
}
