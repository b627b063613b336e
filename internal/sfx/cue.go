package sfx

import (
	"sort"
	"time"
)

// Cue names.
const (
	GlassCrack = "glass-crack"
	Tap        = "tap"
	Drone      = "drone"
)

// LoopWindow makes a cue jump back to From whenever playback passes To.
type LoopWindow struct {
	From time.Duration
	To   time.Duration
}

// Cue describes how one sound clip is played.
type Cue struct {
	Name   string
	File   string
	Rate   float64 // playback rate, 1 = normal
	Volume float64 // 0..1
	Offset time.Duration
	Loop   *LoopWindow
}

// Looping reports whether the cue repeats until stopped.
func (c Cue) Looping() bool {
	return c.Loop != nil
}

var cues = map[string]Cue{
	GlassCrack: {
		Name:   GlassCrack,
		File:   "glass_crack.mp3",
		Rate:   1.5,
		Volume: 1,
	},
	Tap: {
		Name:   Tap,
		File:   "tap.mp3",
		Rate:   2,
		Volume: 0.5,
		Offset: 330 * time.Millisecond,
	},
	Drone: {
		Name:   Drone,
		File:   "mystery-drone.mp3",
		Rate:   1,
		Volume: 0.2,
		Loop:   &LoopWindow{From: time.Second, To: 9 * time.Second},
	},
}

// Lookup returns the cue registered under name.
func Lookup(name string) (Cue, bool) {
	c, ok := cues[name]
	return c, ok
}

// Names returns every registered cue name, sorted.
func Names() []string {
	names := make([]string, 0, len(cues))
	for n := range cues {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
