package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/skillpulse/skillpulse/internal/category"
	"github.com/skillpulse/skillpulse/internal/store"
	"github.com/skillpulse/skillpulse/internal/ui/theme"
)

var aggregateCmd = &cobra.Command{
	Use:   "aggregate <YYYY-MM>",
	Short: "Compute team benchmarks for a month",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("level")
		cat, _ := cmd.Flags().GetString("category")
		show, _ := cmd.Flags().GetBool("show")

		key := store.AggregateKey{
			Period:   args[0],
			Level:    category.Level(level),
			Category: category.Category(cat),
		}

		rt, err := openRuntime(cmd, false)
		if err != nil {
			return err
		}
		defer rt.Close()

		var agg store.TeamAggregate
		if show {
			agg, err = rt.engine.TeamAggregate(cmd.Context(), key)
		} else {
			agg, err = rt.engine.Aggregate(cmd.Context(), key)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if wantJSON(cmd) {
			return printJSON(out, agg)
		}

		title := "Team " + agg.Key.Period
		if agg.Key.Level != "" {
			title += " / " + string(agg.Key.Level)
		}
		if agg.Key.Category != "" {
			title += " / " + agg.Key.Category.DisplayName()
		}
		heading(out, title)
		fmt.Fprintf(out, "%-14s %d\n", "Active users", agg.ActiveUsers)
		fmt.Fprintf(out, "%-14s %d\n", "Answers", agg.TotalQuizzes)
		fmt.Fprintf(out, "%-14s %s\n", "Average", theme.Bar(agg.AverageCorrectRate, 20))
		for _, p := range []struct {
			name string
			v    float64
		}{
			{"p25", agg.Percentile25},
			{"p50", agg.Percentile50},
			{"p75", agg.Percentile75},
			{"p90", agg.Percentile90},
		} {
			fmt.Fprintf(out, "%-14s %s\n", p.name, theme.Bar(p.v, 20))
		}
		return nil
	},
}

func init() {
	aggregateCmd.Flags().String("level", "", "Restrict to users at this experience level")
	aggregateCmd.Flags().String("category", "", "Restrict to one category")
	aggregateCmd.Flags().Bool("show", false, "Show the stored aggregate instead of recomputing")
}
