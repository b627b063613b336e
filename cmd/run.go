package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/corewake/internal/app"
	"github.com/abhisek/corewake/internal/config"
	"github.com/abhisek/corewake/internal/countdown"
	"github.com/abhisek/corewake/internal/game"
	"github.com/abhisek/corewake/internal/sfx"
	"github.com/abhisek/corewake/internal/store"
	"github.com/abhisek/corewake/internal/teatick"
)

// runApp opens the store, builds the session, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	effects := newEffects(cfg)
	defer effects.Close()

	ticks := teatick.New()
	session, err := newSession(cfg, ticks, effects, st)
	if err != nil {
		return err
	}

	return app.Run(app.Options{Session: session, Ticks: ticks})
}

// newEffects plays cues on the terminal bell unless muted.
func newEffects(cfg config.Config) *sfx.Effects {
	return sfx.NewEffects(sfx.NewBellPlayer(os.Stderr),
		sfx.WithMute(cfg.Mute),
		sfx.WithErrorFunc(func(name string, err error) {
			fmt.Fprintf(os.Stderr, "warning: cue %s: %v\n", name, err)
		}),
	)
}

// newSession builds a session over the configured catalog.
func newSession(cfg config.Config, sched countdown.Scheduler, effects *sfx.Effects, st *store.Store) (*game.Session, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	session, err := game.New(game.Options{
		Catalog:   catalog,
		Scheduler: sched,
		Tick:      cfg.Tick,
		Effects:   effects,
		Events:    st.EventRepo(),
	})
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}
	return session, nil
}
