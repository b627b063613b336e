package countdown

import (
	"sort"
	"sync"
	"time"
)

// Scheduler is the host's repeating-callback facility.
type Scheduler interface {
	// Every calls fn every interval until the returned handle is cancelled.
	Every(interval time.Duration, fn func()) Handle
}

// Handle identifies a scheduled callback.
type Handle interface {
	// Cancel stops future invocations. It must not block on a callback that
	// is currently running and is safe to call more than once.
	Cancel()
}

// ManualScheduler is a Scheduler driven by simulated time. Nothing fires
// until Advance is called.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     uint64
	entries map[uint64]*manualEntry
}

type manualEntry struct {
	sched    *ManualScheduler
	id       uint64
	interval time.Duration
	next     time.Duration
	fn       func()
}

func (e *manualEntry) Cancel() {
	e.sched.mu.Lock()
	delete(e.sched.entries, e.id)
	e.sched.mu.Unlock()
}

// NewManualScheduler returns a ManualScheduler at simulated time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{entries: make(map[uint64]*manualEntry)}
}

func (m *ManualScheduler) Every(interval time.Duration, fn func()) Handle {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	e := &manualEntry{
		sched:    m,
		id:       m.seq,
		interval: interval,
		next:     m.now + interval,
		fn:       fn,
	}
	m.entries[e.id] = e
	return e
}

// Advance moves simulated time forward by d, firing every callback that
// falls due in order of due time. Callbacks run without the scheduler lock.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	for {
		e := m.nextDueLocked(target)
		if e == nil {
			break
		}
		m.now = e.next
		e.next += e.interval
		fn := e.fn
		m.mu.Unlock()
		fn()
		m.mu.Lock()
	}
	m.now = target
	m.mu.Unlock()
}

// Now returns the simulated time elapsed since creation.
func (m *ManualScheduler) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of live scheduled callbacks.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *ManualScheduler) nextDueLocked(target time.Duration) *manualEntry {
	due := make([]*manualEntry, 0, len(m.entries))
	for _, e := range m.entries {
		if e.next <= target {
			due = append(due, e)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].next != due[j].next {
			return due[i].next < due[j].next
		}
		return due[i].id < due[j].id
	})
	return due[0]
}

// ClockScheduler is a Scheduler backed by wall-clock tickers. Each handle
// owns one goroutine.
type ClockScheduler struct {
	mu      sync.Mutex
	handles map[*clockHandle]struct{}
}

type clockHandle struct {
	sched *ClockScheduler
	stop  chan struct{}
	once  sync.Once
}

func (h *clockHandle) Cancel() {
	h.once.Do(func() {
		close(h.stop)
		h.sched.mu.Lock()
		delete(h.sched.handles, h)
		h.sched.mu.Unlock()
	})
}

// NewClockScheduler returns a ClockScheduler with no outstanding handles.
func NewClockScheduler() *ClockScheduler {
	return &ClockScheduler{handles: make(map[*clockHandle]struct{})}
}

func (c *ClockScheduler) Every(interval time.Duration, fn func()) Handle {
	h := &clockHandle{sched: c, stop: make(chan struct{})}
	c.mu.Lock()
	c.handles[h] = struct{}{}
	c.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				select {
				case <-h.stop:
					return
				default:
				}
				fn()
			}
		}
	}()
	return h
}

// Close cancels every outstanding handle.
func (c *ClockScheduler) Close() {
	c.mu.Lock()
	handles := make([]*clockHandle, 0, len(c.handles))
	for h := range c.handles {
		handles = append(handles, h)
	}
	c.mu.Unlock()

	for _, h := range handles {
		h.Cancel()
	}
}
