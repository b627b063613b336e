package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/corewake/internal/quest"
	"github.com/abhisek/corewake/internal/router"
	"github.com/abhisek/corewake/internal/screen"
	"github.com/abhisek/corewake/internal/ui/layout"
	"github.com/abhisek/corewake/internal/ui/theme"
)

// HistoryScreen lists every quest line revealed so far, oldest first.
type HistoryScreen struct {
	log    *quest.Log
	offset int // lines scrolled up from the bottom
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a history view of log.
func New(log *quest.Log) *HistoryScreen {
	return &HistoryScreen{log: log}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return nil
}

func (s *HistoryScreen) Title() string {
	return "Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	press, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch press.String() {
	case "up", "k":
		if s.offset < s.log.Len()-1 {
			s.offset++
		}
	case "down", "j":
		if s.offset > 0 {
			s.offset--
		}
	case "h", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

// Lines renders one line per reveal. Reveals missing from the catalog show
// their id.
func (s *HistoryScreen) Lines() []string {
	entries := s.log.History()
	lines := make([]string, len(entries))
	for i, e := range entries {
		text := e.Text
		if text == "" {
			text = fmt.Sprintf("[%s]", e.ID)
		}
		lines[i] = fmt.Sprintf("%3d  %s", i+1, text)
	}
	return lines
}

func (s *HistoryScreen) View(width, height int) string {
	lines := s.Lines()
	if len(lines) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Nothing has been revealed yet."))
	}

	visible := max(1, height-2)
	end := len(lines) - min(s.offset, len(lines)-1)
	start := max(0, end-visible)

	var b strings.Builder
	for i, line := range lines[start:end] {
		style := theme.MessageFaded
		if start+i == len(lines)-1 {
			style = theme.Body
		}
		b.WriteString(style.Width(width - 4).Render(line))
		b.WriteString("\n")
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.TrimSuffix(b.String(), "\n"))
}
