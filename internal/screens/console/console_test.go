package console

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/corewake/internal/countdown"
	"github.com/abhisek/corewake/internal/game"
	"github.com/abhisek/corewake/internal/router"
	"github.com/abhisek/corewake/internal/screens/history"
)

func newTestConsole(t *testing.T) (*ConsoleScreen, *game.Session, *countdown.ManualScheduler) {
	t.Helper()
	sched := countdown.NewManualScheduler()
	s, err := game.New(game.Options{
		Scheduler: sched,
		Script: game.Script{
			{ID: "pre-loading"},
			{ID: "fingerprint", Hint: &game.Hint{After: 100 * time.Millisecond, ID: "syncwaves-hint-1"}},
			{ID: "keypad-entry-complete"},
		},
	})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return New(s), s, sched
}

func press(code rune, text string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code, Text: text}
}

func TestView_Dormant(t *testing.T) {
	c, _, _ := newTestConsole(t)
	assert.Contains(t, c.View(80, 24), "Press Enter to wake it.")
}

func TestUpdate_EnterAndSpaceAdvance(t *testing.T) {
	c, s, _ := newTestConsole(t)

	c.Update(press(tea.KeyEnter, ""))
	assert.Equal(t, "pre-loading", s.Log().Current().ID)
	assert.Contains(t, c.View(80, 24), "Await further instructions.")

	c.Update(press(tea.KeySpace, " "))
	assert.Equal(t, "fingerprint", s.Log().Current().ID)
}

func TestUpdate_RestartHint(t *testing.T) {
	c, s, sched := newTestConsole(t)
	c.Update(press(tea.KeyEnter, ""))
	c.Update(press(tea.KeyEnter, ""))
	require.NotNil(t, s.HintTimer())
	assert.Len(t, c.KeyHints(), 4)

	sched.Advance(60 * time.Millisecond)
	assert.Equal(t, 40, s.HintTimer().Percent())

	c.Update(press('r', "r"))
	assert.Equal(t, 100, s.HintTimer().Percent())
	assert.Contains(t, c.View(80, 24), "Hint")

	sched.Advance(100 * time.Millisecond)
	assert.Equal(t, "syncwaves-hint-1", s.Log().Current().ID)
}

func TestUpdate_HistoryPushesLog(t *testing.T) {
	c, _, _ := newTestConsole(t)
	_, cmd := c.Update(press('h', "h"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.IsType(t, &history.HistoryScreen{}, msg.Screen)
}

func TestView_Finished(t *testing.T) {
	c, s, _ := newTestConsole(t)
	for !s.Finished() {
		c.Update(press(tea.KeyEnter, ""))
	}
	assert.Contains(t, c.View(80, 24), "Transmission complete.")

	_, cmd := c.Update(press('q', "q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
