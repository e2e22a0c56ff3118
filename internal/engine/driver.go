package engine

import (
	"context"
	"time"
)

const (
	DefaultTickInterval = 200 * time.Millisecond
	rolloverInterval    = time.Minute
)

// Driver invokes the engine's periodic work. Correctness never depends on
// tick cadence: a throttled or suspended driver only delays detection of an
// already-elapsed phase.
type Driver struct {
	engine       *Engine
	tickInterval time.Duration
}

func NewDriver(e *Engine, tickInterval time.Duration) *Driver {
	if tickInterval <= 0 {
		tickInterval = DefaultTickInterval
	}
	return &Driver{engine: e, tickInterval: tickInterval}
}

// Run blocks until ctx is cancelled. The consuming view owns the context
// and cancels it on teardown, so no periodic work leaks.
func (d *Driver) Run(ctx context.Context) {
	tick := time.NewTicker(d.tickInterval)
	defer tick.Stop()

	rollover := time.NewTicker(rolloverInterval)
	defer rollover.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tick.C:
			d.engine.Tick()
		case <-rollover.C:
			d.engine.RolloverCheck()
		}
	}
}
