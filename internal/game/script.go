package game

import (
	"time"

	"github.com/abhisek/corewake/internal/sfx"
)

// Hint is revealed when the player stays on a step for After.
type Hint struct {
	After time.Duration
	ID    string
}

// Step is one scripted reveal.
type Step struct {
	ID   string
	Cue  string // sound played on reveal; sfx.Tap when empty
	Hint *Hint
}

// Script is the ordered narrative of a session.
type Script []Step

// DefaultScript returns the built-in narrative.
func DefaultScript() Script {
	return Script{
		{ID: "pre-activation", Cue: sfx.Drone},
		{ID: "pre-loading"},
		{ID: "fingerprint"},
		{ID: "fingerprint-success", Hint: &Hint{After: 10 * time.Second, ID: "syncwaves-hint-1"}},
		{ID: "syncwaves-complete"},
		{ID: "pre-matching-dots"},
		{ID: "matching-dots-start", Hint: &Hint{After: 15 * time.Second, ID: "matching-dots-hint-1"}},
		{ID: "matching-dots-complete"},
		{ID: "sludge-start", Cue: sfx.GlassCrack},
		{ID: "sludge-end", Hint: &Hint{After: 20 * time.Second, ID: "keypad-entry-hint-1"}},
		{ID: "keypad-entry-complete"},
	}
}
