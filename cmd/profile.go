package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/command"
	"github.com/skillpulse/skillpulse/internal/store"
	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update a developer profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show <user>",
	Short: "Show a profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.engine.Profile(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("profile %s: %w", args[0], err)
		}
		if wantJSON(cmd) {
			return printJSON(cmd.OutOrStdout(), p)
		}
		printProfile(cmd, p)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set <user> key=value...",
	Short: "Update profile fields",
	Long: "Update profile fields. Unspecified fields keep their value.\n\n" +
		"Keys:\n" +
		"  level=junior|mid|senior\n" +
		"  years=<n>\n" +
		"  focus=<category>[,<category>...]   (at most 5)\n" +
		"  goal=<text>\n" +
		"  assess=<category>:<1-5>[,...]",
	Args: cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		p, res, err := rt.engine.ApplyProfileCommand(cmd.Context(), args[0], args[1:])
		out := cmd.ErrOrStderr()
		for _, o := range res.Outcomes {
			switch o.Status {
			case command.Invalid:
				fmt.Fprintf(out, "%s %s=%s: %s\n", theme.Incorrect.Render("invalid"), o.Key, o.Value, o.Reason)
			case command.Unrecognized:
				fmt.Fprintf(out, "%s %s (ignored)\n", theme.Hint.Render("unknown key"), o.Key)
			}
		}
		if err != nil {
			return err
		}

		if wantJSON(cmd) {
			return printJSON(cmd.OutOrStdout(), p)
		}
		printProfile(cmd, p)
		return nil
	},
}

func printProfile(cmd *cobra.Command, p store.Profile) {
	out := cmd.OutOrStdout()
	heading(out, "Profile: "+p.UserID)

	focus := make([]string, len(p.FocusAreas))
	for i, c := range p.FocusAreas {
		focus[i] = c.DisplayName()
	}
	row := func(k, v string) {
		fmt.Fprintf(out, "%s %s\n", theme.Label.Render(fmt.Sprintf("%-16s", k)), v)
	}
	row("Level", string(p.Level))
	row("Experience", fmt.Sprintf("%.1f years", p.YearsOfExperience))
	row("Focus areas", strings.Join(focus, ", "))
	if p.Goal != "" {
		row("Goal", p.Goal)
	}
	for _, c := range category.All() {
		if v, ok := p.SelfAssessment[c]; ok {
			row("Self: "+c.DisplayName(), fmt.Sprintf("%d/5", v))
		}
	}
	row("Updated", formatTime(p.UpdatedAt))
}

func init() {
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
