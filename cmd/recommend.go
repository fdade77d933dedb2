package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <user>",
	Short: "Show weak areas, suggested focus and next steps",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		sum, err := rt.engine.Recommend(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, sum)
		}

		heading(out, "Recommendations: "+args[0])
		if len(sum.WeakAreas) > 0 {
			fmt.Fprintln(out, theme.Label.Render("Weak areas"))
			for _, w := range sum.WeakAreas {
				fmt.Fprintf(out, "  %-12s  %s  %s\n",
					w.Category.DisplayName(),
					theme.Bar(w.CorrectRate, 16),
					theme.Priority(string(w.Priority)).Render(string(w.Priority)))
			}
		}
		if len(sum.SuggestedFocus) > 0 {
			names := make([]string, len(sum.SuggestedFocus))
			for i, c := range sum.SuggestedFocus {
				names[i] = c.DisplayName()
			}
			fmt.Fprintf(out, "%s %s\n", theme.Label.Render("Focus on"), strings.Join(names, ", "))
		}
		for _, step := range sum.NextSteps {
			fmt.Fprintln(out, "  • "+theme.Body.Render(step))
		}
		return nil
	},
}
