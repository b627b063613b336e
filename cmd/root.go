package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/corewake/internal/config"
	"github.com/abhisek/corewake/internal/quest"
	"github.com/abhisek/corewake/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "corewake",
	Short: "Wake the core",
	Long:  "Corewake is a terminal puzzle narrative: follow the console, and it will talk back.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides COREWAKE_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a quest catalog JSON file (overrides COREWAKE_CATALOG env var)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, err
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, or the default XDG
// path when none is set.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore opens the event store named by cfg.
func openStore(cfg config.Config) (*store.Store, error) {
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadCatalog returns the configured catalog, or the built-in one.
func loadCatalog(cfg config.Config) (*quest.Catalog, error) {
	if cfg.CatalogPath == "" {
		return quest.Default(), nil
	}
	return quest.LoadCatalogFile(cfg.CatalogPath)
}
