package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/corewake/internal/countdown"
	"github.com/abhisek/corewake/internal/quest"
	"github.com/abhisek/corewake/internal/sfx"
	"github.com/abhisek/corewake/internal/store"
)

// ErrUnknownStep is returned when a script references an id missing from
// the catalog.
var ErrUnknownStep = errors.New("script id not in catalog")

// Options configures a Session.
type Options struct {
	// ID identifies the session in the event store. Generated when empty.
	ID string

	// Catalog resolves message ids. Defaults to quest.Default().
	Catalog *quest.Catalog

	// Script is the narrative to play. Defaults to DefaultScript().
	Script Script

	// Scheduler drives hint timers. Required.
	Scheduler countdown.Scheduler

	// Tick is the hint timer granularity. Defaults to countdown.DefaultTick.
	Tick time.Duration

	// Effects plays sound cues. Optional.
	Effects *sfx.Effects

	// Events persists session events. Optional.
	Events store.EventRepo

	// Diagnostics receives warnings. Defaults to os.Stderr.
	Diagnostics io.Writer
}

// Session plays a script: it reveals one step at a time into a quest log
// and arms a hint countdown for steps that have one.
type Session struct {
	id      string
	script  Script
	log     *quest.Log
	hints   map[int]*countdown.Timer
	effects *sfx.Effects
	events  store.EventRepo
	diag    io.Writer
	diagMu  sync.Mutex
	started time.Time

	mu     sync.Mutex
	pos    int // -1 before Begin, len(script) when finished
	closed bool
}

// New validates the script against the catalog and builds the hint timers.
func New(opts Options) (*Session, error) {
	if opts.Scheduler == nil {
		return nil, fmt.Errorf("session: %w", countdown.ErrInvalidDuration)
	}
	if opts.Catalog == nil {
		opts.Catalog = quest.Default()
	}
	if opts.Script == nil {
		opts.Script = DefaultScript()
	}
	if opts.Tick == 0 {
		opts.Tick = countdown.DefaultTick
	}
	if opts.Diagnostics == nil {
		opts.Diagnostics = os.Stderr
	}
	if opts.ID == "" {
		opts.ID = uuid.New().String()
	}

	s := &Session{
		id:      opts.ID,
		script:  opts.Script,
		log:     quest.NewLog(opts.Catalog),
		hints:   make(map[int]*countdown.Timer),
		effects: opts.Effects,
		events:  opts.Events,
		diag:    opts.Diagnostics,
		pos:     -1,
	}

	for i, step := range opts.Script {
		if !opts.Catalog.Contains(step.ID) {
			return nil, fmt.Errorf("step %d %q: %w", i, step.ID, ErrUnknownStep)
		}
		if step.Hint == nil {
			continue
		}
		if !opts.Catalog.Contains(step.Hint.ID) {
			return nil, fmt.Errorf("hint for step %q %q: %w", step.ID, step.Hint.ID, ErrUnknownStep)
		}

		timer, err := countdown.New(opts.Scheduler, step.Hint.After, opts.Tick)
		if err != nil {
			s.closeTimers()
			return nil, fmt.Errorf("hint timer for step %q: %w", step.ID, err)
		}
		index, hint := i, *step.Hint
		timer.OnExpire(func() { s.hintExpired(index, hint) })
		s.hints[i] = timer
	}
	return s, nil
}

// ID returns the session id.
func (s *Session) ID() string { return s.id }

// Log returns the session's quest log.
func (s *Session) Log() *quest.Log { return s.log }

// Begin records the session start and reveals the first step. Later calls
// do nothing.
func (s *Session) Begin() {
	s.begin()
}

// begin reports whether it entered the first step.
func (s *Session) begin() bool {
	s.mu.Lock()
	if s.pos >= 0 || s.closed {
		s.mu.Unlock()
		return false
	}
	s.started = time.Now()
	next, ok := s.enterLocked(0)
	s.mu.Unlock()

	s.record("session start", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{SessionID: s.id, Action: store.ActionStart})
	})
	if ok {
		s.afterEnter(next)
	}
	return ok
}

// Advance moves to the next step, cancelling the current step's hint. It
// returns false once the script is finished or the session is closed.
func (s *Session) Advance() bool {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return false
	}
	if s.pos < 0 {
		s.mu.Unlock()
		return s.begin()
	}
	if s.pos >= len(s.script) {
		s.mu.Unlock()
		return false
	}

	if t := s.hints[s.pos]; t != nil {
		t.Reset()
	}
	next, ok := s.enterLocked(s.pos + 1)
	s.mu.Unlock()

	if ok {
		s.afterEnter(next)
	}
	return ok
}

// stepEntry is a step just appended to the log, finished by afterEnter once
// the session lock is released.
type stepEntry struct {
	step  Step
	known bool
}

// enterLocked moves to step i, appends it to the log and arms its hint. It
// reports false when i is past the end of the script.
func (s *Session) enterLocked(i int) (stepEntry, bool) {
	s.pos = i
	if i >= len(s.script) {
		s.pos = len(s.script)
		return stepEntry{}, false
	}
	step := s.script[i]
	known := s.log.Reveal(step.ID)
	if t := s.hints[i]; t != nil {
		t.Start()
	}
	return stepEntry{step: step, known: known}, true
}

func (s *Session) afterEnter(e stepEntry) {
	cue := e.step.Cue
	if cue == "" {
		cue = sfx.Tap
	}
	s.revealed(e.step.ID, e.known, cue)

	if hint := e.step.Hint; hint != nil {
		s.record("hint timer start", func(ctx context.Context, repo store.EventRepo) error {
			return repo.AppendTimerEvent(ctx, store.TimerEventData{
				SessionID:  s.id,
				Timer:      hint.ID,
				Action:     store.TimerStart,
				DurationMs: hint.After.Milliseconds(),
			})
		})
	}
}

// Reveal shows id to the player. Unknown ids are accepted with a warning.
func (s *Session) Reveal(id string) {
	s.revealed(id, s.log.Reveal(id), sfx.Tap)
}

// revealed reports, persists and plays a line already appended to the log.
func (s *Session) revealed(id string, known bool, cue string) {
	if !known {
		s.warnf("revealed unknown quest message %q", id)
	}
	s.record("reveal", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendRevealEvent(ctx, store.RevealEventData{SessionID: s.id, MessageID: id, Known: known})
	})
	s.play(cue)
}

// play queues cue and persists its outcome once the player is done with it.
func (s *Session) play(cue string) {
	if s.effects == nil {
		return
	}
	s.effects.PlayReport(cue, func(err error) {
		data := store.CueEventData{SessionID: s.id, Cue: cue}
		if err != nil {
			data.Error = err.Error()
		}
		s.record("cue", func(ctx context.Context, repo store.EventRepo) error {
			return repo.AppendCueEvent(ctx, data)
		})
	})
}

func (s *Session) hintExpired(step int, hint Hint) {
	// Check and append under one lock: Advance may run on another goroutine.
	s.mu.Lock()
	if s.pos != step || s.closed {
		s.mu.Unlock()
		return
	}
	known := s.log.Reveal(hint.ID)
	s.mu.Unlock()

	s.record("hint timer expire", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendTimerEvent(ctx, store.TimerEventData{
			SessionID:  s.id,
			Timer:      hint.ID,
			Action:     store.TimerExpire,
			DurationMs: hint.After.Milliseconds(),
		})
	})
	s.revealed(hint.ID, known, sfx.Tap)
}

// Step returns the current step. It reports false before Begin and after
// the script is finished.
func (s *Session) Step() (Step, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pos < 0 || s.pos >= len(s.script) {
		return Step{}, false
	}
	return s.script[s.pos], true
}

// Finished reports whether every step has been revealed and passed.
func (s *Session) Finished() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos >= len(s.script)
}

// Position returns the current step index and the script length.
func (s *Session) Position() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pos, len(s.script)
}

// HintTimer returns the hint countdown of the current step, or nil.
func (s *Session) HintTimer() *countdown.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hints[s.pos]
}

// RestartHint restarts the current step's hint countdown from its full
// duration. It does nothing if the step has no hint.
func (s *Session) RestartHint() {
	if t := s.HintTimer(); t != nil {
		t.Start()
	}
}

// Close tears down every hint timer and records the session end. It is safe
// to call more than once.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	began := s.pos >= 0
	s.mu.Unlock()

	s.closeTimers()
	if !began {
		return
	}
	s.record("session end", func(ctx context.Context, repo store.EventRepo) error {
		return repo.AppendSessionEvent(ctx, store.SessionEventData{
			SessionID:  s.id,
			Action:     store.ActionEnd,
			Reveals:    s.log.Len(),
			DurationMs: time.Since(s.started).Milliseconds(),
		})
	})
}

func (s *Session) closeTimers() {
	for _, t := range s.hints {
		t.Close()
	}
}

// record persists one event. Failures are reported and never interrupt the
// session.
func (s *Session) record(what string, fn func(ctx context.Context, repo store.EventRepo) error) {
	if s.events == nil {
		return
	}
	if err := fn(context.Background(), s.events); err != nil {
		s.warnf("failed to record %s event: %v", what, err)
	}
}

// warnf writes one warning line. Cue outcomes arrive on the effects worker,
// so writes are serialized.
func (s *Session) warnf(format string, args ...any) {
	s.diagMu.Lock()
	defer s.diagMu.Unlock()
	fmt.Fprintf(s.diag, "warning: "+format+"\n", args...)
}
