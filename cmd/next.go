package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

var nextCmd = &cobra.Command{
	Use:   "next <user>",
	Short: "Pick the category and difficulty of the next quiz",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		pick, err := rt.engine.NextQuiz(ctx, args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		explain, _ := cmd.Flags().GetBool("explain")
		if wantJSON(cmd) && !explain {
			return printJSON(out, pick)
		}

		scores, err := rt.engine.Scores(ctx, args[0])
		if err != nil {
			return err
		}
		if wantJSON(cmd) {
			return printJSON(out, map[string]any{"pick": pick, "scores": scores})
		}

		fmt.Fprintln(out, theme.Card.Render(fmt.Sprintf("Next quiz: %s (%s)",
			theme.Label.Render(pick.Category.DisplayName()), pick.Difficulty)))
		if !explain {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-12s  %6s  %8s  %6s  %6s  %6s\n", "Category", "Score", "Weakness", "Focus", "Review", "Growth")
		for _, s := range scores {
			fmt.Fprintf(out, "%-12s  %6.2f  %8.2f  %6.2f  %6.2f  %6.2f\n",
				s.Category.DisplayName(), s.Total, s.Weakness, s.Focus, s.Review, s.Growth)
		}
		return nil
	},
}

func init() {
	nextCmd.Flags().Bool("explain", false, "Show the category score breakdown")
}
