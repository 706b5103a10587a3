package layout

import (
	"time"

	"github.com/webforce/webforce/pkg/observability"
)

// Scheduler is the tick source for the paced simulation loop. Schedule
// arranges for fn to run once after d and returns a cancel function
// that withdraws the pending call. The real implementation is backed by
// time.AfterFunc; tests inject a manual scheduler to drive ticks
// deterministically.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) (cancel func())
}

type timerScheduler struct{}

func (timerScheduler) Schedule(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Run starts the paced loop targeting the configured frame period.
// Each tick measures the real elapsed time since the previous tick and
// clamps it to MaxStep, but the physics always advances by the nominal
// frame period: a late tick never grows the integration step, it only
// reschedules sooner. Calling Run while already running is a no-op.
func (e *Engine) Run() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.lastTick = time.Now()
	observability.Engine().OnRunStart()
	e.cancelTick = e.sched.Schedule(e.cfg.FramePeriod, e.tick)
}

// Stop halts the paced loop and withdraws any pending tick. The stop is
// cooperative: a tick already executing finishes its current step.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	if e.cancelTick != nil {
		e.cancelTick()
		e.cancelTick = nil
	}
	observability.Engine().OnRunStop()
}

// Running reports whether the paced loop is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

func (e *Engine) tick() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	// This tick consumes the pending schedule. A non-nil handle later
	// means the callback restarted the loop itself.
	e.cancelTick = nil

	now := time.Now()
	elapsed := now.Sub(e.lastTick)
	if elapsed > e.cfg.MaxStep {
		elapsed = e.cfg.MaxStep
	}
	e.lastTick = now

	// Fixed-step simulation decoupled from wall-clock jitter: the
	// measured elapsed time only influences the pacing below.
	e.sim.Step(e.cfg.FramePeriod.Seconds())

	cb := e.onStep
	sim := e.sim
	n := sim.Len()
	e.mu.Unlock()

	// The callback runs without the engine lock so it may call back
	// into the facade. The next tick is scheduled only after it
	// returns, so the callback always observes a quiescent simulation
	// and no second step can start while it reads particle state.
	if cb != nil {
		cb(sim)
	}
	observability.Engine().OnStep(n, elapsed)

	e.mu.Lock()
	if e.running && e.cancelTick == nil {
		// Overrun ticks reschedule immediately, on-time ticks wait out
		// the remaining slack.
		delay := e.cfg.FramePeriod - elapsed
		if delay < 0 {
			delay = 0
		}
		e.cancelTick = e.sched.Schedule(delay, e.tick)
	}
	e.mu.Unlock()
}
