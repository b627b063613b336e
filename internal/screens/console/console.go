package console

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/corewake/internal/game"
	"github.com/abhisek/corewake/internal/router"
	"github.com/abhisek/corewake/internal/screen"
	"github.com/abhisek/corewake/internal/screens/history"
	"github.com/abhisek/corewake/internal/ui/components"
	"github.com/abhisek/corewake/internal/ui/layout"
	"github.com/abhisek/corewake/internal/ui/theme"
)

// trail is how many earlier lines are shown faded above the current one.
const trail = 3

type keyMap struct {
	Advance key.Binding
	Restart key.Binding
	History key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Advance: key.NewBinding(key.WithKeys("enter", "space"), key.WithHelp("Enter", "Continue")),
		Restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("R", "Restart hint")),
		History: key.NewBinding(key.WithKeys("h"), key.WithHelp("H", "Log")),
		Quit:    key.NewBinding(key.WithKeys("q"), key.WithHelp("Q", "Quit")),
	}
}

// ConsoleScreen shows the latest quest line and the countdown to the next
// hint.
type ConsoleScreen struct {
	session *game.Session
	keys    keyMap
}

var _ screen.Screen = (*ConsoleScreen)(nil)
var _ screen.KeyHintProvider = (*ConsoleScreen)(nil)

// New creates a console for session.
func New(session *game.Session) *ConsoleScreen {
	return &ConsoleScreen{session: session, keys: defaultKeys()}
}

func (s *ConsoleScreen) Init() tea.Cmd {
	return nil
}

func (s *ConsoleScreen) Title() string {
	return "Console"
}

func (s *ConsoleScreen) KeyHints() []layout.KeyHint {
	bindings := []key.Binding{s.keys.Advance, s.keys.History, s.keys.Quit}
	if s.session.HintTimer() != nil {
		bindings = []key.Binding{s.keys.Advance, s.keys.Restart, s.keys.History, s.keys.Quit}
	}
	hints := make([]layout.KeyHint, len(bindings))
	for i, b := range bindings {
		h := b.Help()
		hints[i] = layout.KeyHint{Key: h.Key, Description: h.Desc}
	}
	return hints
}

func (s *ConsoleScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(press, s.keys.Advance):
		s.session.Advance()
	case key.Matches(press, s.keys.Restart):
		s.session.RestartHint()
	case key.Matches(press, s.keys.History):
		log := s.session.Log()
		return s, func() tea.Msg {
			return router.PushScreenMsg{Screen: history.New(log)}
		}
	case key.Matches(press, s.keys.Quit):
		return s, tea.Quit
	}
	return s, nil
}

func (s *ConsoleScreen) View(width, height int) string {
	cardWidth := min(width-4, 72)
	inner := cardWidth - 6

	var lines []string

	entries := s.session.Log().History()
	switch {
	case len(entries) == 0:
		lines = append(lines, theme.Hint.Render("The core is dormant. Press Enter to wake it."))
	default:
		start := max(0, len(entries)-1-trail)
		for _, e := range entries[start : len(entries)-1] {
			if e.Text == "" {
				continue
			}
			lines = append(lines, theme.MessageFaded.Width(inner).Render(e.Text))
		}
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, theme.Message.Width(inner).Render(s.session.Log().Current().Text))
	}

	if t := s.session.HintTimer(); t != nil && t.Active() {
		bar := components.NewCountdownBar("Hint", t.Percent(), false, inner)
		lines = append(lines, "", bar.View())
	}

	if s.session.Finished() {
		lines = append(lines, "", theme.Hint.Render("Transmission complete. Press Q to leave."))
	}

	card := theme.Card.Width(cardWidth).Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
