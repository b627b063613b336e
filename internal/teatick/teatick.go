package teatick

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/corewake/internal/countdown"
)

// Msg is delivered to the Bubble Tea update loop when a scheduled tick
// falls due. Hand it to Scheduler.Deliver.
type Msg struct {
	id uint64
}

// Scheduler implements countdown.Scheduler on top of tea.Tick, so timer
// callbacks run inside the program's update loop.
//
// A Scheduler is not safe for concurrent use: call Every, Deliver, Flush and
// Cancel only from Update.
type Scheduler struct {
	seq     uint64
	live    map[uint64]*entry
	pending []tea.Cmd
}

type entry struct {
	sched    *Scheduler
	id       uint64
	interval time.Duration
	fn       func()
}

func (e *entry) Cancel() {
	delete(e.sched.live, e.id)
}

var _ countdown.Scheduler = (*Scheduler)(nil)

// New creates an empty Scheduler.
func New() *Scheduler {
	return &Scheduler{live: make(map[uint64]*entry)}
}

func (s *Scheduler) Every(interval time.Duration, fn func()) countdown.Handle {
	s.seq++
	e := &entry{sched: s, id: s.seq, interval: interval, fn: fn}
	s.live[e.id] = e
	s.arm(e)
	return e
}

// Deliver runs the callback for msg if its handle is still live and re-arms
// it. Ticks for cancelled handles are ignored.
func (s *Scheduler) Deliver(msg Msg) {
	e, ok := s.live[msg.id]
	if !ok {
		return
	}
	e.fn()
	if s.live[msg.id] == e {
		s.arm(e)
	}
}

// Flush returns the tick commands queued since the last Flush, or nil.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}

// Live returns the number of live handles.
func (s *Scheduler) Live() int {
	return len(s.live)
}

func (s *Scheduler) arm(e *entry) {
	id := e.id
	s.pending = append(s.pending, tea.Tick(e.interval, func(time.Time) tea.Msg {
		return Msg{id: id}
	}))
}
