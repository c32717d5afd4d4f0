package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Stohl/tsp-skolan-sub000/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "tecken",
	Short:         "Sign language vocabulary practice",
	Long:          "tecken schedules practice sessions over a sign vocabulary and tracks what you have learned.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides TSP_DB env var)")
	rootCmd.PersistentFlags().String("catalog", "", "Catalog bundle directory (overrides catalog_dir)")
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file")

	rootCmd.AddCommand(practiceCmd)
	rootCmd.AddCommand(learnedCmd)
	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured db_path, then TSP_DB env var or the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
