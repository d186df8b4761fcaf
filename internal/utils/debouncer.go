package utils

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type debouncedCall struct {
	ctx        context.Context
	fn         func(context.Context) error
	generation uint64
}

// Debouncer collapses bursts of Do calls into a single execution of the
// last scheduled function. Functions run on the goroutine calling Run.
type Debouncer struct {
	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	calls      chan debouncedCall
}

func NewDebouncer() *Debouncer {
	return &Debouncer{
		calls: make(chan debouncedCall, 1),
	}
}

func (d *Debouncer) Do(ctx context.Context, delay time.Duration, fn func(context.Context) error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.generation++
	call := debouncedCall{ctx: ctx, fn: fn, generation: d.generation}
	d.timer = time.AfterFunc(delay, func() {
		select {
		case d.calls <- call:
		case <-ctx.Done():
		}
	})
}

func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	// invalidates calls whose timer already fired but were not picked up yet
	d.generation++
}

func (d *Debouncer) current(generation uint64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation == generation
}

func (d *Debouncer) Run(ctx context.Context) error {
	for {
		select {
		case call := <-d.calls:
			if !d.current(call.generation) {
				logrus.Debug("Dropping stale debounced call")
				continue
			}
			if err := call.fn(call.ctx); err != nil {
				logrus.WithError(err).Error("Debounced function failed")
			}
		case <-ctx.Done():
			logrus.Debug("Debouncer context cancelled")
			return context.Cause(ctx)
		}
	}
}
