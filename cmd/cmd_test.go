package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/corewake/internal/countdown"
	"github.com/abhisek/corewake/internal/game"
	"github.com/abhisek/corewake/internal/quest"
	"github.com/abhisek/corewake/internal/store"
)

func TestRunDemo_PrintsEveryStep(t *testing.T) {
	session, err := game.New(game.Options{
		Scheduler: countdown.NewManualScheduler(),
		Script: game.Script{
			{ID: "pre-activation"},
			{ID: "pre-loading"},
			{ID: "keypad-entry-complete"},
		},
	})
	require.NoError(t, err)
	defer session.Close()

	var out bytes.Buffer
	err = runDemo(context.Background(), session, time.Millisecond, false, time.Millisecond, &out)
	require.NoError(t, err)

	assert.Equal(t,
		"You're not supposed to be here. Activate- or face the consequences.\n"+
			"You're in. Await further instructions.\n"+
			"You've done well.\n",
		out.String())
	assert.True(t, session.Finished())
}

func TestRunDemo_WaitsForHints(t *testing.T) {
	sched := countdown.NewClockScheduler()
	defer sched.Close()

	session, err := game.New(game.Options{
		Scheduler: sched,
		Tick:      time.Millisecond,
		Script: game.Script{
			{ID: "fingerprint-success", Hint: &game.Hint{After: 20 * time.Millisecond, ID: "syncwaves-hint-1"}},
			{ID: "syncwaves-complete"},
		},
	})
	require.NoError(t, err)
	defer session.Close()

	var out bytes.Buffer
	err = runDemo(context.Background(), session, time.Millisecond, true, time.Millisecond, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{"fingerprint-success", "syncwaves-hint-1", "syncwaves-complete"}, session.Log().Revealed())
	assert.Contains(t, out.String(), "Match the red and blue waves")
}

func TestRunDemo_StopsOnCancel(t *testing.T) {
	session, err := game.New(game.Options{Scheduler: countdown.NewManualScheduler()})
	require.NoError(t, err)
	defer session.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	require.NoError(t, runDemo(ctx, session, time.Hour, false, time.Hour, &out))
	assert.Equal(t, 1, session.Log().Len())
}

func TestPrintSessions(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printSessions(&out, nil))
	assert.Equal(t, "No sessions recorded.\n", out.String())

	out.Reset()
	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, printSessions(&out, []store.SessionSummaryRecord{
		{SessionID: "s-1", StartedAt: start, EndedAt: start.Add(90 * time.Second), Reveals: 4},
		{SessionID: "s-2", StartedAt: start},
	}))
	assert.Contains(t, out.String(), "s-1")
	assert.Contains(t, out.String(), "1m30s")
	assert.Contains(t, out.String(), "s-2")
}

func TestPrintReveals_UnknownIDShown(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printReveals(&out, quest.Default(), []store.RevealEventRecord{
		{MessageID: "pre-loading", Timestamp: time.Now(), Known: true},
		{MessageID: "ghost", Timestamp: time.Now()},
	}))
	assert.Contains(t, out.String(), "Await further instructions.")
	assert.Contains(t, out.String(), "[ghost]")
}

func TestCatalogValidate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`[{"id":"a","text":"Alpha"}]`), 0o644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"id":"a"}]`), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs([]string{"catalog", "--validate", good})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "1 entries")

	rootCmd.SetArgs([]string{"catalog", "--validate", bad})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, quest.ErrInvalidCatalog)
}

func TestPrintCues(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printCues(&out))
	assert.Contains(t, out.String(), "glass_crack.mp3")
	assert.Contains(t, out.String(), "mystery-drone.mp3")
}
