package components

import (
	"strings"
	"testing"
)

func TestCountdownBarFilled(t *testing.T) {
	tests := []struct {
		percent int
		width   int
		want    int
	}{
		{0, 40, 0},
		{50, 40, 20},
		{100, 40, 40},
		{150, 40, 40},
		{-5, 40, 0},
		{1, 40, 0},
	}

	for _, tt := range tests {
		got := NewCountdownBar("", tt.percent, false, tt.width).Filled(tt.width)
		if got != tt.want {
			t.Errorf("Filled(%d%% of %d) = %d, want %d", tt.percent, tt.width, got, tt.want)
		}
	}
}

func TestCountdownBarView(t *testing.T) {
	view := NewCountdownBar("Hint", 42, true, 40).View()
	if !strings.Contains(view, "Hint") {
		t.Error("expected label in view")
	}
	if !strings.Contains(view, "42%") {
		t.Error("expected percent in view")
	}
}
