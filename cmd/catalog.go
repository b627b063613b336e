package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/corewake/internal/quest"
	"github.com/abhisek/corewake/internal/sfx"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the quest catalog, or validate a catalog file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if path, _ := cmd.Flags().GetString("validate"); path != "" {
			c, err := quest.LoadCatalogFile(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s: %d entries\n", path, c.Len())
			return nil
		}

		if cues, _ := cmd.Flags().GetBool("cues"); cues {
			return printCues(out)
		}

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		return printCatalog(out, c)
	},
}

func init() {
	catalogCmd.Flags().String("validate", "", "Validate a catalog JSON file and exit")
	catalogCmd.Flags().Bool("cues", false, "List sound cues instead of quest lines")
}

func printCatalog(w io.Writer, c *quest.Catalog) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "TEXT")
	for _, e := range c.Entries() {
		t.Row(e.ID, e.Text)
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}

func printCues(w io.Writer) error {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("CUE", "FILE", "RATE", "VOLUME", "LOOP")
	for _, name := range sfx.Names() {
		cue, _ := sfx.Lookup(name)
		t.Row(cue.Name, cue.File, fmt.Sprintf("%.2f", cue.Rate), fmt.Sprintf("%.2f", cue.Volume), fmt.Sprint(cue.Looping()))
	}
	_, err := fmt.Fprintln(w, t.Render())
	return err
}
