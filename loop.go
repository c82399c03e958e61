package paint

import (
	"context"
	"sync/atomic"
	"time"
)

// DefaultTickInterval is the default stroke correction period.
const DefaultTickInterval = 10 * time.Millisecond

// Loop serializes all access to an Engine on one goroutine: the one
// running Run. Host event handlers submit work with Do or Post, and the
// loop calls Engine.Tick on a fixed interval between submissions.
//
// Thread safety: Do and Post are safe for concurrent use. Run must be
// called at most once.
type Loop struct {
	engine   *Engine
	interval time.Duration

	// work carries submitted functions. It is unbuffered so a function is
	// either run by the loop or reported as not accepted, never stranded.
	work chan func(*Engine)

	// done is closed when Run returns.
	done chan struct{}

	started atomic.Bool
	ticks   atomic.Uint64
}

// NewLoop creates a loop for e. A non-positive interval disables ticking.
func NewLoop(e *Engine, interval time.Duration) *Loop {
	return &Loop{
		engine:   e,
		interval: interval,
		work:     make(chan func(*Engine)),
		done:     make(chan struct{}),
	}
}

// Run services submitted work and the tick timer until ctx is done. It
// returns ctx's error. A second call returns ErrLoopStopped immediately.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopStopped
	}
	defer close(l.done)

	var tick <-chan time.Time
	if l.interval > 0 {
		t := time.NewTicker(l.interval)
		defer t.Stop()
		tick = t.C
	}

	Logger().Debug("paint: loop started", "interval", l.interval)
	for {
		select {
		case <-ctx.Done():
			Logger().Debug("paint: loop stopped", "ticks", l.ticks.Load())
			return ctx.Err()
		case fn := <-l.work:
			fn(l.engine)
		case <-tick:
			if l.engine.Tick() {
				l.ticks.Add(1)
			}
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to return. It fails
// with ErrLoopStopped once Run has returned, or with ctx's error if ctx
// ends first; in the latter case fn may still run.
func (l *Loop) Do(ctx context.Context, fn func(*Engine)) error {
	finished := make(chan struct{})
	wrapped := func(e *Engine) {
		defer close(finished)
		fn(e)
	}
	select {
	case l.work <- wrapped:
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Post hands fn to the loop without waiting for it to run. It blocks
// until the loop accepts fn and fails with ErrLoopStopped once Run has
// returned.
func (l *Loop) Post(fn func(*Engine)) error {
	select {
	case l.work <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	}
}

// Ticks returns how many ticks found a stroke in progress.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}
