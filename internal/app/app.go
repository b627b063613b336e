package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/corewake/internal/game"
	"github.com/abhisek/corewake/internal/router"
	"github.com/abhisek/corewake/internal/screen"
	"github.com/abhisek/corewake/internal/screens/console"
	"github.com/abhisek/corewake/internal/teatick"
	"github.com/abhisek/corewake/internal/ui/layout"
)

// Options holds dependencies for the app.
type Options struct {
	// Session is the game to host. It must be built on Ticks.
	Session *game.Session

	// Ticks schedules the session's hint timers inside the update loop.
	Ticks *teatick.Scheduler
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router  *router.Router
	session *game.Session
	ticks   *teatick.Scheduler
	width   int
	height  int
}

// newAppModel creates a new AppModel with the console screen.
func newAppModel(opts Options) AppModel {
	return AppModel{
		router:  router.New(console.New(opts.Session)),
		session: opts.Session,
		ticks:   opts.Ticks,
	}
}

func (m AppModel) Init() tea.Cmd {
	m.session.Begin()
	return m.ticks.Flush()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	// Timers started or restarted during this update need their first tick.
	return m, tea.Batch(cmd, m.ticks.Flush())
}

func (m *AppModel) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil

	case teatick.Msg:
		m.ticks.Deliver(msg)
		return nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return func() tea.Msg { return router.PopScreenMsg{} }
			}
			return nil
		}
	}

	return m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	pos, total := m.session.Position()
	header := layout.RenderHeader(active.Title(), pos+1, total, m.width)

	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if p, ok := active.(screen.KeyHintProvider); ok {
		hints = p.KeyHints()
	}
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and closes the session when it exits.
func Run(opts Options) error {
	defer opts.Session.Close()

	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
