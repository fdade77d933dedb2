package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats <user>",
	Short: "Show per-category skill statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		st, err := rt.engine.Stats(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("stats for %s: %w", args[0], err)
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, st)
		}

		heading(out, fmt.Sprintf("Stats: %s  (%d answered, %d correct)",
			st.UserID, st.Totals.TotalAnswers, st.Totals.TotalCorrect))
		fmt.Fprintf(out, "%-12s  %-25s  %6s  %8s  %s\n", "Category", "Correct", "Total", "Avg diff", "Last answered")
		for _, s := range st.Categories {
			fmt.Fprintf(out, "%-12s  %s  %6d  %8.2f  %s\n",
				s.Category.DisplayName(),
				theme.Bar(s.CorrectRate, 20),
				s.TotalQuizzes,
				s.AverageDifficulty,
				formatTime(s.LastAnsweredAt))
		}
		return nil
	},
}
