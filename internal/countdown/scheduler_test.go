package countdown

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_FiresInDueOrder(t *testing.T) {
	sched := NewManualScheduler()

	var got []string
	sched.Every(30*time.Millisecond, func() { got = append(got, "slow") })
	sched.Every(10*time.Millisecond, func() { got = append(got, "fast") })

	sched.Advance(30 * time.Millisecond)

	// Ties resolve by registration order.
	assert.Equal(t, []string{"fast", "fast", "slow", "fast"}, got)
	assert.Equal(t, 30*time.Millisecond, sched.Now())
}

func TestManualScheduler_CancelStopsCallback(t *testing.T) {
	sched := NewManualScheduler()

	calls := 0
	h := sched.Every(10*time.Millisecond, func() { calls++ })
	sched.Advance(25 * time.Millisecond)
	h.Cancel()
	h.Cancel()
	sched.Advance(100 * time.Millisecond)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 0, sched.Pending())
}

func TestManualScheduler_CallbackMayCancelItself(t *testing.T) {
	sched := NewManualScheduler()

	calls := 0
	var h Handle
	h = sched.Every(10*time.Millisecond, func() {
		calls++
		h.Cancel()
	})
	sched.Advance(time.Second)

	assert.Equal(t, 1, calls)
}

func TestManualScheduler_CallbackMaySchedule(t *testing.T) {
	sched := NewManualScheduler()

	inner := 0
	var outer Handle
	outer = sched.Every(10*time.Millisecond, func() {
		outer.Cancel()
		sched.Every(10*time.Millisecond, func() { inner++ })
	})
	sched.Advance(50 * time.Millisecond)

	// Registered at 10ms, fires at 20, 30, 40 and 50ms.
	assert.Equal(t, 4, inner)
}

func TestClockScheduler_CancelAndClose(t *testing.T) {
	sched := NewClockScheduler()

	var calls atomic.Int32
	h := sched.Every(time.Millisecond, func() { calls.Add(1) })
	assert.Eventually(t, func() bool { return calls.Load() > 0 }, 5*time.Second, time.Millisecond)
	h.Cancel()
	h.Cancel()

	sched.Every(time.Millisecond, func() {})
	sched.Every(time.Millisecond, func() {})
	sched.Close()

	sched.mu.Lock()
	defer sched.mu.Unlock()
	assert.Empty(t, sched.handles)
}
