package sfx

import (
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	// ErrUnknownCue is reported when a cue name is not registered.
	ErrUnknownCue = errors.New("unknown cue")

	// ErrQueueFull is reported when a cue is dropped because the worker is
	// behind.
	ErrQueueFull = errors.New("queue full")
)

// Player plays one cue. Implementations may block while the device is busy;
// Effects keeps them off the caller's path.
type Player interface {
	Play(cue Cue) error
}

// NopPlayer discards every cue.
type NopPlayer struct{}

func (NopPlayer) Play(Cue) error { return nil }

// BellPlayer rings the terminal bell once per cue.
type BellPlayer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewBellPlayer returns a BellPlayer writing to w.
func NewBellPlayer(w io.Writer) *BellPlayer {
	return &BellPlayer{w: w}
}

func (b *BellPlayer) Play(cue Cue) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := io.WriteString(b.w, "\a"); err != nil {
		return fmt.Errorf("ring bell for %s: %w", cue.Name, err)
	}
	return nil
}

// DefaultQueueSize is the number of cues Effects buffers before dropping.
const DefaultQueueSize = 16

// ErrorFunc receives cue failures. It runs on the effects worker, or on the
// caller of Play when the queue is full.
type ErrorFunc func(name string, err error)

// Effects is the fire-and-forget front for a Player. Play never blocks and
// never returns an error. Cues are queued for a single worker goroutine and
// dropped when the queue is full; failures go to the registered ErrorFunc.
type Effects struct {
	player  Player
	onError ErrorFunc
	muted   bool

	queue chan request
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Option configures Effects.
type Option func(*Effects)

// WithErrorFunc sets the failure hook.
func WithErrorFunc(fn ErrorFunc) Option {
	return func(e *Effects) { e.onError = fn }
}

// WithMute drops every cue without reaching the player.
func WithMute(muted bool) Option {
	return func(e *Effects) { e.muted = muted }
}

// WithQueueSize overrides DefaultQueueSize.
func WithQueueSize(n int) Option {
	return func(e *Effects) {
		if n > 0 {
			e.queue = make(chan request, n)
		}
	}
}

// NewEffects starts the worker for p. Call Close to stop it.
func NewEffects(p Player, opts ...Option) *Effects {
	e := &Effects{
		player: p,
		queue:  make(chan request, DefaultQueueSize),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.player == nil {
		e.player = NopPlayer{}
	}
	go e.run()
	return e
}

// request is one queued cue. done, when set, receives the outcome.
type request struct {
	name string
	done func(error)
}

// Play queues the named cue. It reports whether the cue was accepted.
func (e *Effects) Play(name string) bool {
	return e.PlayReport(name, nil)
}

// PlayReport is like Play, and also hands the outcome to done: nil once the
// player has played the cue, or the failure. done runs on the worker, or on
// the caller when the queue is full. It is not called for muted or closed
// effects.
func (e *Effects) PlayReport(name string, done func(error)) bool {
	if e.muted {
		return false
	}

	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return false
	}

	select {
	case e.queue <- request{name: name, done: done}:
		return true
	default:
		e.fail(request{name: name, done: done}, ErrQueueFull)
		return false
	}
}

// Close stops accepting cues, waits for queued ones to play and stops the
// worker. It is safe to call more than once.
func (e *Effects) Close() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		<-e.done
		return
	}
	e.closed = true
	close(e.queue)
	e.mu.Unlock()
	<-e.done
}

func (e *Effects) run() {
	defer close(e.done)
	for req := range e.queue {
		if err := e.playOne(req.name); err != nil {
			e.fail(req, err)
		} else if req.done != nil {
			req.done(nil)
		}
	}
}

func (e *Effects) playOne(name string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("player panic: %v", r)
		}
	}()

	cue, ok := Lookup(name)
	if !ok {
		return ErrUnknownCue
	}
	return e.player.Play(cue)
}

func (e *Effects) fail(req request, err error) {
	if e.onError != nil {
		e.onError(req.name, err)
	}
	if req.done != nil {
		req.done(err)
	}
}
