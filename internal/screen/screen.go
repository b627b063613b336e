package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/corewake/internal/ui/layout"
)

// Screen is one view of the terminal host.
type Screen interface {
	// Init returns an initial command when the screen is first shown.
	Init() tea.Cmd

	// Update handles messages and returns the updated screen and command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is implemented by screens that want custom footer hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}
