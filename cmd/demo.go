package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/corewake/internal/countdown"
	"github.com/abhisek/corewake/internal/game"
	"github.com/abhisek/corewake/internal/quest"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Play the script unattended, printing each line",
	RunE: func(cmd *cobra.Command, args []string) error {
		step, _ := cmd.Flags().GetDuration("step")
		if step <= 0 {
			return fmt.Errorf("--step %s: %w", step, countdown.ErrInvalidDuration)
		}
		waitHints, _ := cmd.Flags().GetBool("hints")

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

		sched := countdown.NewClockScheduler()
		defer sched.Close()

		session, err := newSession(cfg, sched, effects, st)
		if err != nil {
			return err
		}
		defer session.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		return runDemo(ctx, session, step, waitHints, cfg.Tick, cmd.OutOrStdout())
	},
}

func init() {
	demoCmd.Flags().Duration("step", 2*time.Second, "Delay between scripted steps")
	demoCmd.Flags().Bool("hints", false, "Stay on steps with a hint until the hint is revealed")
}

// runDemo advances session every step and prints reveals as they land in
// the log, including hints fired by the scheduler.
func runDemo(ctx context.Context, session *game.Session, step time.Duration, waitHints bool, poll time.Duration, w io.Writer) error {
	printer := &logPrinter{log: session.Log(), w: w}

	session.Begin()
	printer.flush()

	advance := time.NewTicker(step)
	defer advance.Stop()
	watch := time.NewTicker(poll)
	defer watch.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watch.C:
			printer.flush()
		case <-advance.C:
			if waitHints && hintPending(session) {
				continue
			}
			more := session.Advance()
			printer.flush()
			if !more {
				return nil
			}
		}
	}
}

// hintPending reports whether the current step has a hint that has not been
// revealed yet.
func hintPending(session *game.Session) bool {
	step, ok := session.Step()
	return ok && step.Hint != nil && session.Log().Current().ID != step.Hint.ID
}

// logPrinter writes log entries it has not written yet.
type logPrinter struct {
	log     *quest.Log
	w       io.Writer
	printed int
}

func (p *logPrinter) flush() {
	entries := p.log.History()
	for _, e := range entries[p.printed:] {
		if e.Text == "" {
			fmt.Fprintf(p.w, "[%s]\n", e.ID)
			continue
		}
		fmt.Fprintln(p.w, e.Text)
	}
	p.printed = len(entries)
}
