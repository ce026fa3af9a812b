package scheduler

import (
	"context"
	"log"
	"time"
)

type Task func(ctx context.Context) error

// Every runs task now and then on every tick until ctx ends. The first
// run is synchronous so interval runs never overlap the initial one.
func Every(ctx context.Context, interval time.Duration, name string, task Task) {
	if err := task(ctx); err != nil {
		log.Printf("[sched:%s] error: %v", name, err)
	}

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := task(ctx); err != nil {
				log.Printf("[sched:%s] error: %v", name, err)
			}
		}
	}
}
