package sfx

import (
	"bytes"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPlayer struct {
	mock.Mock
}

func (m *mockPlayer) Play(cue Cue) error {
	args := m.Called(cue)
	return args.Error(0)
}

type errorLog struct {
	mu   sync.Mutex
	errs map[string][]error
}

func (l *errorLog) record(name string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.errs == nil {
		l.errs = make(map[string][]error)
	}
	l.errs[name] = append(l.errs[name], err)
}

func (l *errorLog) get(name string) []error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.errs[name]
}

func TestLookup(t *testing.T) {
	tap, ok := Lookup(Tap)
	require.True(t, ok)
	assert.Equal(t, 2.0, tap.Rate)
	assert.Equal(t, 0.5, tap.Volume)
	assert.Equal(t, 330*time.Millisecond, tap.Offset)
	assert.False(t, tap.Looping())

	drone, ok := Lookup(Drone)
	require.True(t, ok)
	assert.True(t, drone.Looping())
	assert.Equal(t, time.Second, drone.Loop.From)
	assert.Equal(t, 9*time.Second, drone.Loop.To)

	_, ok = Lookup("kazoo")
	assert.False(t, ok)

	assert.Equal(t, []string{Drone, GlassCrack, Tap}, Names())
}

func TestEffects_PlaysQueuedCues(t *testing.T) {
	p := &mockPlayer{}
	p.On("Play", mock.MatchedBy(func(c Cue) bool { return c.Name == Tap })).Return(nil).Twice()
	p.On("Play", mock.MatchedBy(func(c Cue) bool { return c.Name == GlassCrack })).Return(nil).Once()

	e := NewEffects(p)
	assert.True(t, e.Play(Tap))
	assert.True(t, e.Play(GlassCrack))
	assert.True(t, e.Play(Tap))
	e.Close()

	p.AssertExpectations(t)
}

func TestEffects_FailuresNeverReachCaller(t *testing.T) {
	p := &mockPlayer{}
	p.On("Play", mock.MatchedBy(func(c Cue) bool { return c.Name == Tap })).Return(errors.New("device busy"))
	p.On("Play", mock.MatchedBy(func(c Cue) bool { return c.Name == GlassCrack })).Run(func(mock.Arguments) {
		panic("driver exploded")
	}).Return(nil)

	log := &errorLog{}
	e := NewEffects(p, WithErrorFunc(log.record))

	assert.True(t, e.Play(Tap))
	assert.True(t, e.Play(GlassCrack))
	assert.True(t, e.Play("kazoo"))
	e.Close()

	require.Len(t, log.get(Tap), 1)
	assert.EqualError(t, log.get(Tap)[0], "device busy")
	require.Len(t, log.get(GlassCrack), 1)
	assert.Contains(t, log.get(GlassCrack)[0].Error(), "driver exploded")
	require.Len(t, log.get("kazoo"), 1)
	assert.True(t, errors.Is(log.get("kazoo")[0], ErrUnknownCue))
}

// blockingPlayer holds the worker until release is closed.
type blockingPlayer struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (b *blockingPlayer) Play(Cue) error {
	b.once.Do(func() { close(b.started) })
	<-b.release
	return nil
}

func TestEffects_FullQueueDropsWithoutBlocking(t *testing.T) {
	p := &blockingPlayer{started: make(chan struct{}), release: make(chan struct{})}
	log := &errorLog{}
	e := NewEffects(p, WithQueueSize(1), WithErrorFunc(log.record))

	require.True(t, e.Play(Tap))
	<-p.started // worker is now stuck inside Play

	assert.True(t, e.Play(Tap), "one slot in the queue")

	done := make(chan bool)
	go func() { done <- e.Play(Tap) }()
	select {
	case accepted := <-done:
		assert.False(t, accepted)
	case <-time.After(5 * time.Second):
		t.Fatal("Play blocked on a full queue")
	}
	assert.Len(t, log.get(Tap), 1)

	close(p.release)
	e.Close()
}

func TestEffects_MutedAndClosed(t *testing.T) {
	p := &mockPlayer{}

	muted := NewEffects(p, WithMute(true))
	assert.False(t, muted.Play(Tap))
	muted.Close()

	e := NewEffects(p)
	e.Close()
	e.Close()
	assert.False(t, e.Play(Tap))

	p.AssertNotCalled(t, "Play", mock.Anything)
}

func TestBellPlayer(t *testing.T) {
	var buf bytes.Buffer
	e := NewEffects(NewBellPlayer(&buf))
	e.Play(Tap)
	e.Play(Drone)
	e.Close()

	assert.Equal(t, "\a\a", buf.String())
}

func TestEffects_PlayReportDeliversOutcome(t *testing.T) {
	p := &mockPlayer{}
	p.On("Play", mock.MatchedBy(func(c Cue) bool { return c.Name == Tap })).Return(nil).Once()
	p.On("Play", mock.MatchedBy(func(c Cue) bool { return c.Name == Drone })).Return(errors.New("no device")).Once()

	var (
		mu       sync.Mutex
		outcomes = map[string]error{}
	)
	report := func(name string) func(error) {
		return func(err error) {
			mu.Lock()
			defer mu.Unlock()
			outcomes[name] = err
		}
	}

	log := &errorLog{}
	e := NewEffects(p, WithErrorFunc(log.record))
	assert.True(t, e.PlayReport(Tap, report(Tap)))
	assert.True(t, e.PlayReport(Drone, report(Drone)))
	assert.True(t, e.PlayReport("kazoo", report("kazoo")))
	e.Close()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, outcomes, 3)
	assert.NoError(t, outcomes[Tap])
	assert.EqualError(t, outcomes[Drone], "no device")
	assert.ErrorIs(t, outcomes["kazoo"], ErrUnknownCue)
	assert.Len(t, log.get(Drone), 1, "ErrorFunc still sees failures")
	p.AssertExpectations(t)
}

func TestEffects_PlayReportFullQueue(t *testing.T) {
	p := &blockingPlayer{started: make(chan struct{}), release: make(chan struct{})}
	e := NewEffects(p, WithQueueSize(1))

	require.True(t, e.Play(Tap))
	<-p.started
	require.True(t, e.Play(Tap))

	var got error
	assert.False(t, e.PlayReport(Tap, func(err error) { got = err }))
	assert.ErrorIs(t, got, ErrQueueFull)

	close(p.release)
	e.Close()
}
