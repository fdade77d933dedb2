package cmd

import (
	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "skillpulse",
	Short: "Developer quiz analytics and personalization",
	Long: "skillpulse tracks developers' quiz answers, keeps per-category skill statistics,\n" +
		"awards milestones, recommends what to practice next and computes team benchmarks.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SKILLPULSE_DB env var)")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log engine activity to stderr")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(milestonesCmd)
	rootCmd.AddCommand(aggregateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (SKILLPULSE_DB, possibly from .env), then the
// default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if configured != "" {
		return configured, store.EnsureDir(configured)
	}
	return store.DefaultDBPath()
}
