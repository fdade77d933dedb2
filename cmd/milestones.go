package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

var milestonesCmd = &cobra.Command{
	Use:   "milestones <user>",
	Short: "List awarded milestones",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		ms, err := rt.engine.Milestones(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, ms)
		}
		if len(ms) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No milestones yet."))
			return nil
		}

		heading(out, "Milestones: "+args[0])
		for _, m := range ms {
			fmt.Fprintf(out, "%s  %s  %s\n",
				theme.Subtitle.Render(formatTime(m.AchievedAt)),
				theme.Award.Render("★"),
				m.Achievement)
		}
		return nil
	},
}
