package cmd

import (
	"fmt"
	"io"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/corewake/internal/quest"
	"github.com/abhisek/corewake/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List past sessions, or the reveals of one session",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		repo := st.EventRepo()
		out := cmd.OutOrStdout()

		if len(args) == 1 {
			catalog, err := loadCatalog(cfg)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}
			reveals, err := repo.QueryReveals(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("query reveals: %w", err)
			}
			return printReveals(out, catalog, reveals)
		}

		sessions, err := repo.QuerySessionSummaries(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		return printSessions(out, sessions)
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of sessions to list")
}

func printSessions(w io.Writer, sessions []store.SessionSummaryRecord) error {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return nil
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("SESSION", "STARTED", "DURATION", "REVEALS")
	for _, s := range sessions {
		duration := "-"
		if !s.EndedAt.IsZero() {
			duration = s.EndedAt.Sub(s.StartedAt).Round(time.Second).String()
		}
		t.Row(s.SessionID, s.StartedAt.Local().Format(time.DateTime), duration, fmt.Sprint(s.Reveals))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func printReveals(w io.Writer, catalog *quest.Catalog, reveals []store.RevealEventRecord) error {
	if len(reveals) == 0 {
		fmt.Fprintln(w, "No reveals recorded for this session.")
		return nil
	}
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		Headers("AT", "MESSAGE")
	for _, r := range reveals {
		text := catalog.Text(r.MessageID)
		if text == "" {
			text = fmt.Sprintf("[%s]", r.MessageID)
		}
		t.Row(r.Timestamp.Local().Format(time.TimeOnly), text)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
