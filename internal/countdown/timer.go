package countdown

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"
)

// DefaultTick is the tick granularity used when callers have no preference.
const DefaultTick = 10 * time.Millisecond

// ErrInvalidDuration is returned when a timer is built with a non-positive
// duration or tick, or without a scheduler.
var ErrInvalidDuration = errors.New("invalid countdown parameters")

// State is the lifecycle state of a Timer.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Timer counts a fixed duration down in tick-sized steps and fires its
// expiration callback once per completed run.
//
// A Timer is safe for concurrent use. The expiration callback is invoked
// without the timer lock held, after the timer has already returned to idle,
// so it may call Start again.
type Timer struct {
	mu        sync.Mutex
	sched     Scheduler
	duration  time.Duration
	tick      time.Duration
	active    bool
	remaining time.Duration
	onExpire  func()
	handle    Handle
	run       uint64
	closed    bool
}

// New creates an idle Timer. Duration and tick must both be positive.
func New(s Scheduler, duration, tick time.Duration) (*Timer, error) {
	if s == nil {
		return nil, fmt.Errorf("nil scheduler: %w", ErrInvalidDuration)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("duration %s: %w", duration, ErrInvalidDuration)
	}
	if tick <= 0 {
		return nil, fmt.Errorf("tick %s: %w", tick, ErrInvalidDuration)
	}
	return &Timer{
		sched:    s,
		duration: duration,
		tick:     tick,
	}, nil
}

// MustNew is like New but panics on invalid parameters.
func MustNew(s Scheduler, duration, tick time.Duration) *Timer {
	t, err := New(s, duration, tick)
	if err != nil {
		panic(err)
	}
	return t
}

// Start begins a new run, cancelling any run already in flight.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.closed {
		return
	}
	t.resetLocked()

	t.active = true
	t.remaining = t.duration
	run := t.run
	t.handle = t.sched.Every(t.tick, func() { t.step(run) })
}

// Reset stops the current run without firing the expiration callback.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
}

// OnExpire registers the expiration callback, replacing any previous one.
// The callback registered at the moment of expiration is the one invoked.
func (t *Timer) OnExpire(fn func()) {
	t.mu.Lock()
	t.onExpire = fn
	t.mu.Unlock()
}

// Close tears the timer down. No tick has any effect after Close returns and
// later Start calls are ignored.
func (t *Timer) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.resetLocked()
	t.closed = true
}

// Active reports whether a run is in progress.
func (t *Timer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// State returns StateRunning while a run is in progress, StateIdle otherwise.
func (t *Timer) State() State {
	if t.Active() {
		return StateRunning
	}
	return StateIdle
}

// Remaining returns the time left in the current run.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// Duration returns the fixed length of a run.
func (t *Timer) Duration() time.Duration { return t.duration }

// Tick returns the tick granularity.
func (t *Timer) Tick() time.Duration { return t.tick }

// Percent returns the remaining fraction of the run as a whole percentage in
// [0, 100]. It is 0 exactly when the timer is not active.
func (t *Timer) Percent() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return percent(t.remaining, t.duration, t.active)
}

func percent(remaining, duration time.Duration, active bool) int {
	if !active {
		return 0
	}
	p := int(math.Round(100 * float64(max(0, remaining)) / float64(duration)))
	return min(100, max(1, p))
}

// step applies one tick to the run identified by run.
func (t *Timer) step(run uint64) {
	t.mu.Lock()
	if !t.active || t.run != run {
		t.mu.Unlock()
		return
	}

	t.remaining = max(0, t.remaining-t.tick)
	if t.remaining > 0 {
		t.mu.Unlock()
		return
	}

	cb := t.onExpire
	t.resetLocked()
	t.mu.Unlock()

	if cb != nil {
		cb()
	}
}

func (t *Timer) resetLocked() {
	if t.handle != nil {
		t.handle.Cancel()
		t.handle = nil
	}
	t.active = false
	t.remaining = 0
	t.run++
}
